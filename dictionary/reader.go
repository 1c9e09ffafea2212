package dictionary

import (
	"io"

	"github.com/andaru/jbovlaste/dicterr"
	"github.com/andaru/jbovlaste/xmlutil"
	"github.com/pkg/errors"
)

const (
	tagDictionary = "dictionary"
	tagDirection  = "direction"
	tagValsi      = "valsi"
	tagNlword     = "nlword"

	langLojban  = "lojban"
	langEnglish = "English"
)

// Parse reads a jbovlaste XML export. Errors are *dicterr.Error values
// (see dicterr.As); the first error aborts the parse.
//
// String fields of the result are copies and do not refer to data.
func Parse(data []byte) (*Dictionary, error) {
	return readDictionary(xmlutil.NewReader(data))
}

// ParseString is Parse for a string document
func ParseString(doc string) (*Dictionary, error) { return Parse([]byte(doc)) }

// Decode reads all of r and parses it
func Decode(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read export")
	}
	return Parse(data)
}

func readDictionary(r *xmlutil.Reader) (*Dictionary, error) {
	if err := r.ReadTillElementStart(tagDictionary); err != nil {
		return nil, err
	}
	if key, _, ok, err := r.FindAttribute(); err != nil {
		return nil, err
	} else if ok {
		return nil, errors.WithStack(dicterr.UnknownField(tagDictionary, key, dicterr.WithOffset(r.Offset())))
	}
	if empty, err := r.EndOfStart(); err != nil {
		return nil, err
	} else if empty {
		return nil, errors.WithStack(dicterr.MissingField(tagDictionary, tagDirection,
			dicterr.WithOffset(r.Offset()), dicterr.WithMessage("empty dictionary")))
	}

	var d Dictionary
	var haveValsi, haveNlword bool
	for {
		tag, ok, err := r.FindElementStart(tagDictionary)
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		if tag != tagDirection {
			return nil, errors.WithStack(dicterr.UnknownField(tagDictionary, tag, dicterr.WithOffset(r.Offset())))
		}

		entryTag, err := readDirectionStart(r)
		if err != nil {
			return nil, err
		}
		// a repeated direction replaces the earlier one
		switch entryTag {
		case tagValsi:
			if d.LojbanToEnglish, err = readEntries(r, tagValsi, readWord); err != nil {
				return nil, err
			}
			haveValsi = true
		case tagNlword:
			if d.EnglishToLojban, err = readEntries(r, tagNlword, readNlWord); err != nil {
				return nil, err
			}
			haveNlword = true
		}
	}

	if !haveValsi {
		return nil, errors.WithStack(dicterr.MissingField(tagDictionary, "lojban_to_english", dicterr.WithOffset(r.Offset())))
	}
	if !haveNlword {
		return nil, errors.WithStack(dicterr.MissingField(tagDictionary, "english_to_lojban", dicterr.WithOffset(r.Offset())))
	}
	return &d, nil
}

// readDirectionStart consumes a <direction> start tag, returning the
// tag of the entries its from/to pair holds.
func readDirectionStart(r *xmlutil.Reader) (entryTag string, err error) {
	if err = r.ReadTillElementStart(tagDirection); err != nil {
		return "", err
	}
	var from, to *string
	for {
		key, value, ok, err := r.FindAttribute()
		if err != nil {
			return "", err
		} else if !ok {
			break
		}
		switch key {
		case "from":
			from = &value
		case "to":
			to = &value
		default:
			return "", errors.WithStack(dicterr.UnknownField(tagDirection, key, dicterr.WithOffset(r.Offset())))
		}
	}

	switch {
	case from == nil:
		return "", errors.WithStack(dicterr.MissingField(tagDirection, "from", dicterr.WithOffset(r.Offset())))
	case to == nil:
		return "", errors.WithStack(dicterr.MissingField(tagDirection, "to", dicterr.WithOffset(r.Offset())))
	case *from == langLojban && *to == langEnglish:
		entryTag = tagValsi
	case *from == langEnglish && *to == langLojban:
		entryTag = tagNlword
	default:
		return "", errors.WithStack(dicterr.InvalidValue(tagDirection, "from/to", *from+"/"+*to,
			dicterr.WithOffset(r.Offset()), dicterr.WithMessage("unknown direction")))
	}

	if empty, err := r.EndOfStart(); err != nil {
		return "", err
	} else if empty {
		return "", errors.WithStack(dicterr.MissingField(tagDirection, entryTag,
			dicterr.WithOffset(r.Offset()), dicterr.WithMessage("empty direction")))
	}
	return entryTag, nil
}

// readEntries reads entryTag children until the enclosing direction
// closes. The result is never nil.
func readEntries[T any](r *xmlutil.Reader, entryTag string, read func(*xmlutil.Reader) (T, error)) ([]T, error) {
	entries := []T{}
	for {
		tag, ok, err := r.FindElementStart(tagDirection)
		if err != nil {
			return nil, err
		} else if !ok {
			return entries, nil
		}
		if tag != entryTag {
			return nil, errors.WithStack(dicterr.UnknownField(tagDirection, tag,
				dicterr.WithOffset(r.Offset()), dicterr.WithMessage("want <"+entryTag+">")))
		}
		entry, err := read(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

func readWord(r *xmlutil.Reader) (w Word, err error) {
	err = record{
		name: tagValsi,
		attrs: []field{
			{name: "word", required: true, set: setString(&w.Word)},
			{name: "type", required: true, set: setWordType(&w.Type)},
			{name: "unofficial", set: setBool(&w.Unofficial)},
		},
		children: []field{
			{name: "rafsi", set: appendString(&w.Rafsi)},
			{name: "selmaho", set: setOptString(&w.Selmaho)},
			{name: "user", required: true, read: func(r *xmlutil.Reader) (err error) {
				w.User, err = readUser(r)
				return err
			}},
			{name: "definition", required: true, set: setString(&w.Definition)},
			{name: "definitionid", required: true, set: setUint32(&w.DefinitionID)},
			{name: "notes", set: setOptString(&w.Notes)},
			{name: "glossword", read: func(r *xmlutil.Reader) error {
				g, err := readGlossWord(r)
				if err == nil {
					w.Glosses = append(w.Glosses, g)
				}
				return err
			}},
			{name: "keyword", read: func(r *xmlutil.Reader) error {
				k, err := readKeyword(r)
				if err == nil {
					w.Keywords = append(w.Keywords, k)
				}
				return err
			}},
		},
	}.read(r)
	return w, err
}

func readNlWord(r *xmlutil.Reader) (w NlWord, err error) {
	err = record{
		name: tagNlword,
		attrs: []field{
			{name: "word", required: true, set: setString(&w.Word)},
			{name: "sense", set: setOptString(&w.Sense)},
			{name: "place", set: setOptUint32(&w.Place)},
			{name: "valsi", required: true, set: setString(&w.Valsi)},
		},
	}.read(r)
	return w, err
}

func readUser(r *xmlutil.Reader) (u User, err error) {
	err = record{
		name: "user",
		children: []field{
			{name: "username", required: true, set: setString(&u.Username)},
			{name: "realname", set: setOptString(&u.Realname)},
		},
	}.read(r)
	return u, err
}

func readGlossWord(r *xmlutil.Reader) (g GlossWord, err error) {
	err = record{
		name: "glossword",
		attrs: []field{
			{name: "word", required: true, set: setString(&g.Word)},
			{name: "sense", set: setOptString(&g.Sense)},
		},
	}.read(r)
	return g, err
}

func readKeyword(r *xmlutil.Reader) (k Keyword, err error) {
	err = record{
		name: "keyword",
		attrs: []field{
			{name: "word", required: true, set: setString(&k.Word)},
			{name: "place", required: true, set: setUint32(&k.Place)},
			{name: "sense", set: setOptString(&k.Sense)},
		},
	}.read(r)
	return k, err
}
