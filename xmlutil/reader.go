package xmlutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/andaru/jbovlaste/dicterr"
	"github.com/pkg/errors"
)

// Reader is a cursor over the events of an in-memory XML document.
//
// The whole document is held so that self-closing start tags can be
// told apart from empty elements; encoding/xml reports both as a start
// and end element pair.
type Reader struct {
	data []byte
	d    *xml.Decoder

	queue []Token
	// selfClosed is set after a self-closing start tag, whose
	// synthesized end element must be dropped.
	selfClosed bool
}

// NewReader returns a Reader over data
func NewReader(data []byte) *Reader {
	return &Reader{data: data, d: xml.NewDecoder(bytes.NewReader(data))}
}

// Offset returns the input byte offset reached by the tokenizer
func (r *Reader) Offset() int64 { return r.d.InputOffset() }

// Peek returns the next event without consuming it. At the end of
// input it returns io.EOF.
func (r *Reader) Peek() (Token, error) {
	for len(r.queue) == 0 {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}
	return r.queue[0], nil
}

// Next consumes and returns the next event. At the end of input it
// returns io.EOF.
func (r *Reader) Next() (Token, error) {
	t, err := r.Peek()
	if err != nil {
		return nil, err
	}
	r.queue = r.queue[1:]
	return t, nil
}

// fill reads the next XML token, queueing zero or more events
func (r *Reader) fill() error {
	token, err := r.d.Token()
	if err == io.EOF {
		return io.EOF
	} else if err != nil {
		return errors.WithStack(dicterr.Malformed(dicterr.WithCause(err), dicterr.WithOffset(r.Offset())))
	}

	switch token := token.(type) {
	case xml.StartElement:
		name := token.Name.Local
		r.queue = append(r.queue, ElementStart{Name: name})
		for _, attr := range token.Attr {
			r.queue = append(r.queue, Attribute{Key: attrKey(attr.Name), Value: attr.Value})
		}
		if r.atSelfClose() {
			r.selfClosed = true
			r.queue = append(r.queue, ElementEnd{Kind: EndEmpty, Name: name})
		} else {
			r.queue = append(r.queue, ElementEnd{Kind: EndOpen, Name: name})
		}

	case xml.EndElement:
		if r.selfClosed {
			r.selfClosed = false
			return nil
		}
		r.queue = append(r.queue, ElementEnd{Kind: EndClose, Name: token.Name.Local})

	case xml.CharData:
		r.queue = append(r.queue, Text{Text: string(token)})

	case xml.Comment, xml.ProcInst, xml.Directive:
		// ignored
	}
	return nil
}

// atSelfClose reports whether the start tag just read ended with "/>"
func (r *Reader) atSelfClose() bool {
	off := r.Offset()
	return off >= 2 && off <= int64(len(r.data)) && r.data[off-2] == '/' && r.data[off-1] == '>'
}

func attrKey(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// ReadTillElementStart consumes events up to and including the start
// of element tag. Only whitespace may come before it.
func (r *Reader) ReadTillElementStart(tag string) error {
	for {
		t, err := r.Next()
		if err != nil {
			return r.eof(err, "want <"+tag+">")
		}
		switch t := t.(type) {
		case ElementStart:
			if t.Name == tag {
				return nil
			}
			return r.unexpected(t, "want <"+tag+">")
		case Text:
			if isSpace(t.Text) {
				continue
			}
		}
		return r.unexpected(t, "want <"+tag+">")
	}
}

// FindAttribute consumes the next event if it is an attribute,
// returning its key and value. ok is false once the start tag's
// attributes are exhausted.
func (r *Reader) FindAttribute() (key, value string, ok bool, err error) {
	t, err := r.Peek()
	if err != nil {
		return "", "", false, r.eof(err, "in start tag")
	}
	if attr, isAttr := t.(Attribute); isAttr {
		r.queue = r.queue[1:]
		return attr.Key, attr.Value, true, nil
	}
	return "", "", false, nil
}

// EndOfStart consumes the end of a start tag once its attributes have
// been read. empty is true if the element was self-closing.
func (r *Reader) EndOfStart() (empty bool, err error) {
	t, err := r.Next()
	if err != nil {
		return false, r.eof(err, "in start tag")
	}
	if end, ok := t.(ElementEnd); ok && end.Kind != EndClose {
		return end.Kind == EndEmpty, nil
	}
	return false, r.unexpected(t, "want end of start tag")
}

// FindElementStart looks for the next child element of parent. It
// returns the child's tag without consuming its start, or ok false
// after consuming parent's end tag. Whitespace between children is
// skipped; any other character data is an unknown field of parent.
func (r *Reader) FindElementStart(parent string) (tag string, ok bool, err error) {
	for {
		t, err := r.Peek()
		if err != nil {
			return "", false, r.eof(err, "in <"+parent+">")
		}
		switch t := t.(type) {
		case ElementStart:
			return t.Name, true, nil
		case ElementEnd:
			if t.Kind == EndClose && t.Name == parent {
				r.queue = r.queue[1:]
				return "", false, nil
			}
		case Text:
			if isSpace(t.Text) {
				r.queue = r.queue[1:]
				continue
			}
			return "", false, errors.WithStack(dicterr.UnknownField(parent, "#text",
				dicterr.WithOffset(r.Offset()),
				dicterr.WithMessage(fmt.Sprintf("unexpected character data %q", strings.TrimSpace(t.Text)))))
		}
		return "", false, r.unexpected(t, "in <"+parent+">")
	}
}

// ReadText consumes the element tag and returns its character data.
// The element may have neither attributes nor child elements.
func (r *Reader) ReadText(tag string) (string, error) {
	if err := r.ReadTillElementStart(tag); err != nil {
		return "", err
	}
	if key, _, ok, err := r.FindAttribute(); err != nil {
		return "", err
	} else if ok {
		return "", errors.WithStack(dicterr.UnknownField(tag, key, dicterr.WithOffset(r.Offset())))
	}
	if empty, err := r.EndOfStart(); err != nil || empty {
		return "", err
	}

	var text strings.Builder
	for {
		t, err := r.Next()
		if err != nil {
			return "", r.eof(err, "in <"+tag+">")
		}
		switch t := t.(type) {
		case Text:
			text.WriteString(t.Text)
		case ElementStart:
			return "", errors.WithStack(dicterr.UnknownField(tag, t.Name, dicterr.WithOffset(r.Offset())))
		case ElementEnd:
			if t.Kind == EndClose {
				return text.String(), nil
			}
			return "", r.unexpected(t, "in <"+tag+">")
		default:
			return "", r.unexpected(t, "in <"+tag+">")
		}
	}
}

func (r *Reader) eof(err error, where string) error {
	if err == io.EOF {
		return errors.WithStack(dicterr.Malformed(dicterr.WithOffset(r.Offset()),
			dicterr.WithCause(io.ErrUnexpectedEOF),
			dicterr.WithMessage("unexpected end of input "+where)))
	}
	return err
}

func (r *Reader) unexpected(t Token, want string) error {
	return errors.WithStack(dicterr.Malformed(dicterr.WithOffset(r.Offset()),
		dicterr.WithMessage(fmt.Sprintf("unexpected %v, %s", t, want))))
}

func isSpace(s string) bool { return strings.TrimSpace(s) == "" }
