package dictionary

// Dictionary is a parsed jbovlaste export
type Dictionary struct {
	LojbanToEnglish []Word   `json:"lojban_to_english"`
	EnglishToLojban []NlWord `json:"english_to_lojban"`
}

// Word is a lojban headword entry, read from a <valsi> element.
type Word struct {
	Word       string   `json:"word"`
	Type       WordType `json:"type"`
	Unofficial bool     `json:"unofficial"`
	// Rafsi are the word's affix forms, in export order.
	Rafsi        []string    `json:"rafsi,omitempty"`
	Selmaho      *string     `json:"selmaho,omitempty"`
	User         User        `json:"user"`
	Definition   string      `json:"definition"`
	DefinitionID uint32      `json:"definition_id"`
	Notes        *string     `json:"notes,omitempty"`
	Glosses      []GlossWord `json:"glosses,omitempty"`
	Keywords     []Keyword   `json:"keywords,omitempty"`
}

// NlWord is an English headword entry, read from an <nlword> element.
// Valsi names the lojban Word it translates to; it is not checked
// against the other direction.
type NlWord struct {
	Word  string  `json:"word"`
	Sense *string `json:"sense,omitempty"`
	// Place is the argument place of Valsi the word fills.
	Place *uint32 `json:"place,omitempty"`
	Valsi string  `json:"valsi"`
}

// User is the jbovlaste user who contributed a definition
type User struct {
	Username string  `json:"username"`
	Realname *string `json:"realname,omitempty"`
}

type GlossWord struct {
	Word  string  `json:"word"`
	Sense *string `json:"sense,omitempty"`
}

type Keyword struct {
	Word  string  `json:"word"`
	Place uint32  `json:"place"`
	Sense *string `json:"sense,omitempty"`
}
