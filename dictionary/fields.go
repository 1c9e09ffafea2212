package dictionary

import (
	"strconv"

	"github.com/andaru/jbovlaste/dicterr"
	"github.com/andaru/jbovlaste/xmlutil"
	"github.com/pkg/errors"
)

// record declares the attributes and child elements of one element
// type. Fields are checked for presence in declaration order.
type record struct {
	name     string
	attrs    []field
	children []field
}

// field is a declared attribute or child element.
//
// Attributes and text children have set, called with the raw text.
// Set may be called more than once; repeatable fields append. Nested
// records have read instead, positioned at the child's start tag.
type field struct {
	name     string
	required bool
	set      func(string) error
	read     func(*xmlutil.Reader) error
}

func lookup(fields []field, name string) *field {
	for i := range fields {
		if fields[i].name == name {
			return &fields[i]
		}
	}
	return nil
}

// read consumes one element of the record, from its start tag to its
// end, calling each field's setter or reader as it is found.
func (rec record) read(r *xmlutil.Reader) error {
	if err := r.ReadTillElementStart(rec.name); err != nil {
		return err
	}

	seenAttr := make(map[string]bool, len(rec.attrs))
	for {
		key, value, ok, err := r.FindAttribute()
		if err != nil {
			return err
		} else if !ok {
			break
		}
		f := lookup(rec.attrs, key)
		if f == nil {
			return errors.WithStack(dicterr.UnknownField(rec.name, key, dicterr.WithOffset(r.Offset())))
		}
		if err := f.set(value); err != nil {
			return rec.invalid(r, key, value, err)
		}
		seenAttr[key] = true
	}

	empty, err := r.EndOfStart()
	if err != nil {
		return err
	}

	seenChild := make(map[string]bool, len(rec.children))
	for !empty {
		tag, ok, err := r.FindElementStart(rec.name)
		if err != nil {
			return err
		} else if !ok {
			break
		}
		f := lookup(rec.children, tag)
		if f == nil {
			return errors.WithStack(dicterr.UnknownField(rec.name, tag, dicterr.WithOffset(r.Offset())))
		}
		if f.read != nil {
			err = f.read(r)
		} else {
			var text string
			if text, err = r.ReadText(tag); err == nil {
				if perr := f.set(text); perr != nil {
					err = rec.invalid(r, tag, text, perr)
				}
			}
		}
		if err != nil {
			return err
		}
		seenChild[tag] = true
	}

	for _, f := range rec.attrs {
		if f.required && !seenAttr[f.name] {
			return errors.WithStack(dicterr.MissingField(rec.name, f.name, dicterr.WithOffset(r.Offset())))
		}
	}
	for _, f := range rec.children {
		if f.required && !seenChild[f.name] {
			return errors.WithStack(dicterr.MissingField(rec.name, f.name, dicterr.WithOffset(r.Offset())))
		}
	}
	return nil
}

func (rec record) invalid(r *xmlutil.Reader, field, value string, err error) error {
	return errors.WithStack(dicterr.InvalidValue(rec.name, field, value,
		dicterr.WithMessage(err.Error()), dicterr.WithOffset(r.Offset())))
}

// setters

func setString(p *string) func(string) error {
	return func(v string) error { *p = v; return nil }
}

func setOptString(p **string) func(string) error {
	return func(v string) error { *p = &v; return nil }
}

func appendString(p *[]string) func(string) error {
	return func(v string) error { *p = append(*p, v); return nil }
}

func setUint32(p *uint32) func(string) error {
	return func(v string) error {
		n, err := parseUint32(v)
		*p = n
		return err
	}
}

func setOptUint32(p **uint32) func(string) error {
	return func(v string) error {
		n, err := parseUint32(v)
		if err == nil {
			*p = &n
		}
		return err
	}
}

func setBool(p *bool) func(string) error {
	return func(v string) (err error) {
		*p, err = parseBool(v)
		return err
	}
}

func setWordType(p *WordType) func(string) error {
	return func(v string) (err error) {
		*p, err = ParseWordType(v)
		return err
	}
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if ne, ok := err.(*strconv.NumError); ok {
		return 0, errors.Errorf("want unsigned 32-bit integer: %v", ne.Err)
	}
	return uint32(n), err
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, errors.New("want boolean")
}
