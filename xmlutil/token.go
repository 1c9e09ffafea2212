package xmlutil

import "fmt"

// Token is a lexical event: one of ElementStart, Attribute, ElementEnd or Text
type Token interface{ token() }

// EndKind is the kind of an ElementEnd event
type EndKind int

const (
	// EndOpen closes a start tag which has content: <name ...>
	EndOpen EndKind = iota
	// EndEmpty closes a self-closing tag: <name .../>
	EndEmpty
	// EndClose is an end tag: </name>
	EndClose
)

func (k EndKind) String() string {
	switch k {
	case EndOpen:
		return "open"
	case EndEmpty:
		return "empty"
	case EndClose:
		return "close"
	default:
		return fmt.Sprintf("EndKind(%d)", int(k))
	}
}

type ElementStart struct{ Name string }

type Attribute struct{ Key, Value string }

type ElementEnd struct {
	Kind EndKind
	Name string
}

type Text struct{ Text string }

func (ElementStart) token() {}
func (Attribute) token()    {}
func (ElementEnd) token()   {}
func (Text) token()         {}

func (t ElementStart) String() string { return "<" + t.Name }
func (t Attribute) String() string    { return fmt.Sprintf("%s=%q", t.Key, t.Value) }
func (t Text) String() string         { return fmt.Sprintf("text %q", t.Text) }

func (t ElementEnd) String() string {
	switch t.Kind {
	case EndEmpty:
		return "/>"
	case EndClose:
		return "</" + t.Name + ">"
	}
	return ">"
}
