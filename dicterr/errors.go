package dicterr

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Kind is the class of a dictionary read error
type Kind int

const (
	// KindMalformed is a tokenizer level failure: the input is not
	// well-formed XML or ends early.
	KindMalformed Kind = iota
	// KindUnknownField is an attribute or element not permitted by the schema
	KindUnknownField
	// KindMissingField is required content absent when its record closed
	KindMissingField
	// KindInvalidValue is text which failed type-specific parsing
	KindInvalidValue
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindUnknownField:
		return "unknown-field"
	case KindMissingField:
		return "missing-field"
	case KindInvalidValue:
		return "invalid-value"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "malformed":
		*k = KindMalformed
	case "unknown-field":
		*k = KindUnknownField
	case "missing-field":
		*k = KindMissingField
	case "invalid-value":
		*k = KindInvalidValue
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error is a dictionary read error.
//
// Name is the record the error was found in (e.g. "valsi") and Field
// the offending attribute or child element. Value holds the raw text
// for KindInvalidValue errors. Offset is the input byte offset the
// tokenizer had reached, when known.
type Error struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
	Offset  int64  `json:"offset,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Name != "" {
		s += " name:" + e.Name
	}
	if e.Field != "" {
		s += " field:" + e.Field
	}
	if e.Kind == KindInvalidValue {
		s += " value:" + strconv.Quote(e.Value)
	}
	if e.Offset > 0 {
		s += " offset:" + strconv.FormatInt(e.Offset, 10)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error { return e.Err }

func UnknownField(name, field string, opts ...Option) *Error {
	e := &Error{Kind: KindUnknownField, Name: name, Field: field}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MissingField(name, field string, opts ...Option) *Error {
	e := &Error{Kind: KindMissingField, Name: name, Field: field}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func InvalidValue(name, field, value string, opts ...Option) *Error {
	e := &Error{Kind: KindInvalidValue, Name: name, Field: field, Value: value}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Malformed returns a tokenizer error. The message of a WithCause
// error is used when no message is given.
func Malformed(opts ...Option) *Error {
	e := &Error{Kind: KindMalformed}
	for _, opt := range opts {
		opt(e)
	}
	if e.Message == "" && e.Err != nil {
		e.Message = e.Err.Error()
	}
	return e
}

// As returns the *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err's chain holds an *Error of kind k
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
