package dictionary

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// WordType is the lexical class of a Word
type WordType int

const (
	BuLetteral WordType = iota
	Cmavo
	CmavoCompound
	Cmevla
	ExperimentalCmavo
	ExperimentalGismu
	Fuhivla
	Gismu
	Lujvo
	ObsoleteCmavo
	ObsoleteCmevla
	ObsoleteFuhivla
	ObsoleteZeiLujvo
	ZeiLujvo
)

// wordTypes maps each WordType to its export spelling and its JSON name
var wordTypes = [...]struct{ export, name string }{
	BuLetteral:        {"bu-letteral", "bu_letteral"},
	Cmavo:             {"cmavo", "cmavo"},
	CmavoCompound:     {"cmavo-compound", "cmavo_compound"},
	Cmevla:            {"cmevla", "cmevla"},
	ExperimentalCmavo: {"experimental cmavo", "experimental_cmavo"},
	ExperimentalGismu: {"experimental gismu", "experimental_gismu"},
	Fuhivla:           {"fu'ivla", "fuhivla"},
	Gismu:             {"gismu", "gismu"},
	Lujvo:             {"lujvo", "lujvo"},
	ObsoleteCmavo:     {"obsolete cmavo", "obsolete_cmavo"},
	ObsoleteCmevla:    {"obsolete cmevla", "obsolete_cmevla"},
	ObsoleteFuhivla:   {"obsolete fu'ivla", "obsolete_fuhivla"},
	ObsoleteZeiLujvo:  {"obsolete zei-lujvo", "obsolete_zei_lujvo"},
	ZeiLujvo:          {"zei-lujvo", "zei_lujvo"},
}

func (t WordType) valid() bool { return t >= 0 && int(t) < len(wordTypes) }

// String returns the word type as spelled in the export
func (t WordType) String() string {
	if !t.valid() {
		return fmt.Sprintf("WordType(%d)", int(t))
	}
	return wordTypes[t].export
}

// Name returns the snake-case name used in JSON output
func (t WordType) Name() string {
	if !t.valid() {
		return fmt.Sprintf("WordType(%d)", int(t))
	}
	return wordTypes[t].name
}

// ParseWordType parses the export spelling of a word type, e.g.
// "experimental gismu". The match is exact.
func ParseWordType(s string) (WordType, error) {
	for t, wt := range wordTypes {
		if wt.export == s {
			return WordType(t), nil
		}
	}
	return 0, errors.Errorf("invalid word type %q", s)
}

func (t WordType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, errors.Errorf("invalid word type %d", int(t))
	}
	return []byte(wordTypes[t].name), nil
}

func (t *WordType) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, wt := range wordTypes {
		if wt.name == string(b) {
			*t = WordType(i)
			return nil
		}
	}
	return errors.Errorf("invalid word type name %q", b)
}
