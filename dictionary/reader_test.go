package dictionary

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/andaru/jbovlaste/dicterr"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func u32p(n uint32) *uint32 { return &n }

func readFixture(t *testing.T) []byte {
	data, err := os.ReadFile("testdata/export.xml")
	require.NoError(t, err)
	return data
}

var (
	xpCountValsi  = xpath.MustCompile(`count(/dictionary/direction[@from='lojban'][@to='English']/valsi)`)
	xpCountNlword = xpath.MustCompile(`count(/dictionary/direction[@from='English'][@to='lojban']/nlword)`)
)

// TestParseAgainstDOM reads the fixture with an independent DOM parser
// and checks the streaming reader found the same entries in the same order.
func TestParseAgainstDOM(t *testing.T) {
	data := readFixture(t)
	d, err := Parse(data)
	require.NoError(t, err)

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	nav := xmlquery.CreateXPathNavigator(doc)

	check := assert.New(t)
	check.Len(d.LojbanToEnglish, int(xpCountValsi.Evaluate(nav).(float64)))
	check.Len(d.EnglishToLojban, int(xpCountNlword.Evaluate(nav).(float64)))

	for i, node := range xmlquery.Find(doc, "/dictionary/direction/valsi") {
		w := d.LojbanToEnglish[i]
		check.Equal(node.SelectAttr("word"), w.Word)
		check.Equal(node.SelectAttr("type"), w.Type.String())
		check.Equal(xmlquery.FindOne(node, "definition").InnerText(), w.Definition)
		var rafsi []string
		for _, r := range xmlquery.Find(node, "rafsi") {
			rafsi = append(rafsi, r.InnerText())
		}
		check.Equal(rafsi, w.Rafsi)
		check.Len(w.Glosses, len(xmlquery.Find(node, "glossword")))
		check.Len(w.Keywords, len(xmlquery.Find(node, "keyword")))
	}
	for i, node := range xmlquery.Find(doc, "/dictionary/direction/nlword") {
		check.Equal(node.SelectAttr("word"), d.EnglishToLojban[i].Word)
		check.Equal(node.SelectAttr("valsi"), d.EnglishToLojban[i].Valsi)
	}
}

func TestParseFixture(t *testing.T) {
	d, err := Parse(readFixture(t))
	require.NoError(t, err)

	check := assert.New(t)
	check.Equal(Word{
		Word:         "broda",
		Type:         Gismu,
		Rafsi:        []string{"bro"},
		User:         User{Username: "officialdata", Realname: strp("Official Data")},
		Definition:   "$x_{1}$ is a predicate variable; 1st assignable variable predicate (context determines place structure).",
		DefinitionID: 43,
		Notes:        strp("Cf. {brode}, {brodi}, {brodo}, {brodu}."),
		Glosses:      []GlossWord{{Word: "predicate variable", Sense: strp("1st")}},
		Keywords:     []Keyword{{Word: "predicate variable", Place: 1}},
	}, d.LojbanToEnglish[0])

	klama := d.LojbanToEnglish[1]
	check.Equal([]string{"kla", "kl'a"}, klama.Rafsi)
	check.Nil(klama.Selmaho)
	check.Nil(klama.Notes)
	check.Nil(klama.User.Realname)
	check.Equal([]GlossWord{{Word: "come"}, {Word: "go"}}, klama.Glosses)
	check.Equal([]Keyword{{Word: "comer", Place: 1}, {Word: "destination", Place: 2, Sense: strp("goal")}}, klama.Keywords)

	koha := d.LojbanToEnglish[2]
	check.Equal("ko'a", koha.Word)
	check.Equal(Cmavo, koha.Type)
	check.Equal(strp("KOhA1"), koha.Selmaho)
	check.Empty(koha.Rafsi)

	exp := d.LojbanToEnglish[3]
	check.Equal("ĉirlaĉu", exp.Word)
	check.Equal(ExperimentalGismu, exp.Type)
	check.True(exp.Unofficial)
	check.False(klama.Unofficial)
	check.Equal("$x_{1}$ is a “test” & example <ŝ>", exp.Definition)
	check.Equal(strp("Raw <markup> kept verbatim."), exp.Notes)
	check.Equal(strp("Jorge Llambías"), exp.User.Realname)

	check.Equal([]NlWord{
		{Word: "come", Valsi: "klama", Place: u32p(1)},
		{Word: "destination", Sense: strp("goal"), Valsi: "klama", Place: u32p(2)},
		{Word: "it", Valsi: "ko'a"},
	}, d.EnglishToLojban)
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := Parse(readFixture(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteJSON(&buf, ""))

	var got Dictionary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *d, got)
}

func TestWriteJSON(t *testing.T) {
	d, err := ParseString(`<dictionary>
<direction from="lojban" to="English">
  <valsi word="a" type="cmavo">
    <user><username>u</username></user>
    <definition>x &lt; y &amp; z</definition>
    <definitionid>1</definitionid>
  </valsi>
</direction>
<direction from="English" to="lojban"></direction>
</dictionary>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteJSON(&buf, ""))
	assert.Equal(t,
		`{"lojban_to_english":[{"word":"a","type":"cmavo","unofficial":false,"user":{"username":"u"},`+
			`"definition":"x < y & z","definition_id":1}],"english_to_lojban":[]}`+"\n",
		buf.String())

	buf.Reset()
	require.NoError(t, d.WriteJSON(&buf, "  "))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"lojban_to_english\": [\n"), buf.String())
}

func TestDecode(t *testing.T) {
	d, err := Decode(bytes.NewReader(readFixture(t)))
	require.NoError(t, err)
	assert.Len(t, d.LojbanToEnglish, 4)
}

// doc builds a dictionary document around the given direction bodies
func doc(valsi, nlword string) string {
	return `<dictionary><direction from="lojban" to="English">` + valsi +
		`</direction><direction from="English" to="lojban">` + nlword +
		`</direction></dictionary>`
}

const (
	userXML  = `<user><username>u</username></user>`
	validXML = `<valsi word="a" type="cmavo">` + userXML + `<definition>d</definition><definitionid>1</definitionid></valsi>`
)

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string

		kind  dicterr.Kind
		rec   string
		field string
		value string
	}{
		{
			name:  "unknown valsi attribute",
			input: doc(`<valsi foo="bar" word="a" type="cmavo"/>`, ""),
			kind:  dicterr.KindUnknownField, rec: "valsi", field: "foo",
		},
		{
			name:  "missing definitionid",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<definition>d</definition></valsi>`, ""),
			kind:  dicterr.KindMissingField, rec: "valsi", field: "definitionid",
		},
		{
			name:  "missing word attribute",
			input: doc(`<valsi type="cmavo">`+userXML+`<definition>d</definition><definitionid>1</definitionid></valsi>`, ""),
			kind:  dicterr.KindMissingField, rec: "valsi", field: "word",
		},
		{
			name:  "self-closing valsi lacks user",
			input: doc(`<valsi word="a" type="cmavo"/>`, ""),
			kind:  dicterr.KindMissingField, rec: "valsi", field: "user",
		},
		{
			name:  "invalid word type",
			input: doc(`<valsi word="a" type="not-a-type">`+userXML+`</valsi>`, ""),
			kind:  dicterr.KindInvalidValue, rec: "valsi", field: "type", value: "not-a-type",
		},
		{
			name:  "invalid definitionid",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<definition>d</definition><definitionid>x1</definitionid></valsi>`, ""),
			kind:  dicterr.KindInvalidValue, rec: "valsi", field: "definitionid", value: "x1",
		},
		{
			name:  "invalid unofficial",
			input: doc(`<valsi word="a" type="cmavo" unofficial="maybe"/>`, ""),
			kind:  dicterr.KindInvalidValue, rec: "valsi", field: "unofficial", value: "maybe",
		},
		{
			name:  "unknown valsi child",
			input: doc(`<valsi word="a" type="cmavo"><etymology>x</etymology></valsi>`, ""),
			kind:  dicterr.KindUnknownField, rec: "valsi", field: "etymology",
		},
		{
			name:  "attribute on flattened text",
			input: doc(`<valsi word="a" type="cmavo"><notes lang="en">x</notes></valsi>`, ""),
			kind:  dicterr.KindUnknownField, rec: "notes", field: "lang",
		},
		{
			name:  "user missing username",
			input: doc(`<valsi word="a" type="cmavo"><user><realname>r</realname></user></valsi>`, ""),
			kind:  dicterr.KindMissingField, rec: "user", field: "username",
		},
		{
			name:  "keyword missing place",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<keyword word="k"/></valsi>`, ""),
			kind:  dicterr.KindMissingField, rec: "keyword", field: "place",
		},
		{
			name:  "keyword negative place",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<keyword word="k" place="-1"/></valsi>`, ""),
			kind:  dicterr.KindInvalidValue, rec: "keyword", field: "place", value: "-1",
		},
		{
			name:  "glossword unknown attribute",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<glossword word="g" place="1"/></valsi>`, ""),
			kind:  dicterr.KindUnknownField, rec: "glossword", field: "place",
		},
		{
			name:  "nlword missing valsi",
			input: doc(validXML, `<nlword word="w"/>`),
			kind:  dicterr.KindMissingField, rec: "nlword", field: "valsi",
		},
		{
			name:  "nlword place overflow",
			input: doc(validXML, `<nlword word="w" valsi="a" place="4294967296"/>`),
			kind:  dicterr.KindInvalidValue, rec: "nlword", field: "place", value: "4294967296",
		},
		{
			name:  "nlword child element",
			input: doc(validXML, `<nlword word="w" valsi="a"><x/></nlword>`),
			kind:  dicterr.KindUnknownField, rec: "nlword", field: "x",
		},
		{
			name:  "wrong entry in direction",
			input: doc(`<nlword word="w" valsi="a"/>`, ""),
			kind:  dicterr.KindUnknownField, rec: "direction", field: "nlword",
		},
		{
			name:  "english to english",
			input: `<dictionary><direction from="English" to="English"><nlword word="w" valsi="a"/></direction></dictionary>`,
			kind:  dicterr.KindInvalidValue, rec: "direction", field: "from/to", value: "English/English",
		},
		{
			name:  "direction missing to",
			input: `<dictionary><direction from="English"></direction></dictionary>`,
			kind:  dicterr.KindMissingField, rec: "direction", field: "to",
		},
		{
			name:  "direction unknown attribute",
			input: `<dictionary><direction from="English" to="lojban" lang="x"></direction></dictionary>`,
			kind:  dicterr.KindUnknownField, rec: "direction", field: "lang",
		},
		{
			name:  "self-closing direction",
			input: `<dictionary><direction from="English" to="lojban"/></dictionary>`,
			kind:  dicterr.KindMissingField, rec: "direction", field: "nlword",
		},
		{
			name:  "empty dictionary",
			input: `<dictionary/>`,
			kind:  dicterr.KindMissingField, rec: "dictionary", field: "direction",
		},
		{
			name:  "dictionary attribute",
			input: `<dictionary version="1"></dictionary>`,
			kind:  dicterr.KindUnknownField, rec: "dictionary", field: "version",
		},
		{
			name:  "dictionary unknown child",
			input: `<dictionary><meta/></dictionary>`,
			kind:  dicterr.KindUnknownField, rec: "dictionary", field: "meta",
		},
		{
			name:  "no directions",
			input: `<dictionary></dictionary>`,
			kind:  dicterr.KindMissingField, rec: "dictionary", field: "lojban_to_english",
		},
		{
			name:  "only lojban to english",
			input: `<dictionary><direction from="lojban" to="English">` + validXML + `</direction></dictionary>`,
			kind:  dicterr.KindMissingField, rec: "dictionary", field: "english_to_lojban",
		},
		{
			name:  "only english to lojban",
			input: `<dictionary><direction from="English" to="lojban"></direction></dictionary>`,
			kind:  dicterr.KindMissingField, rec: "dictionary", field: "lojban_to_english",
		},
		{
			name:  "wrong root",
			input: `<html><body/></html>`,
			kind:  dicterr.KindMalformed,
		},
		{
			name:  "truncated",
			input: `<dictionary><direction from="lojban" to="English">` + validXML,
			kind:  dicterr.KindMalformed,
		},
		{
			name:  "mismatched tags",
			input: doc(`<valsi word="a" type="cmavo">`+userXML+`<definition>d</notes></valsi>`, ""),
			kind:  dicterr.KindMalformed,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseString(tc.input)
			check := assert.New(t)
			check.Nil(d)
			e, ok := dicterr.As(err)
			if !check.True(ok, "want *dicterr.Error, got %v", err) {
				return
			}
			check.Equal(tc.kind, e.Kind, "%v", e)
			check.Equal(tc.rec, e.Name, "%v", e)
			check.Equal(tc.field, e.Field, "%v", e)
			check.Equal(tc.value, e.Value, "%v", e)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	for _, tc := range []struct {
		attr string
		want bool
	}{
		{attr: "", want: false},
		{attr: ` unofficial="true"`, want: true},
		{attr: ` unofficial="false"`, want: false},
		{attr: ` unofficial="1"`, want: true},
	} {
		t.Run(tc.attr, func(t *testing.T) {
			d, err := ParseString(doc(`<valsi word="a" type="cmavo"`+tc.attr+`>`+userXML+
				`<definition>d</definition><definitionid>1</definitionid></valsi>`, ""))
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.LojbanToEnglish[0].Unofficial)
		})
	}
}

func TestParseRepeatedDirection(t *testing.T) {
	d, err := ParseString(`<dictionary>
<direction from="English" to="lojban"><nlword word="first" valsi="a"/></direction>
<direction from="lojban" to="English">` + validXML + `</direction>
<direction from="English" to="lojban"><nlword word="second" valsi="a"/><nlword word="third" valsi="a"/></direction>
</dictionary>`)
	require.NoError(t, err)

	check := assert.New(t)
	check.Len(d.LojbanToEnglish, 1)
	if check.Len(d.EnglishToLojban, 2) {
		check.Equal("second", d.EnglishToLojban[0].Word)
		check.Equal("third", d.EnglishToLojban[1].Word)
	}
}

func TestParseEmptyDirections(t *testing.T) {
	d, err := ParseString(doc("", ""))
	require.NoError(t, err)

	check := assert.New(t)
	check.NotNil(d.LojbanToEnglish)
	check.Empty(d.LojbanToEnglish)
	check.NotNil(d.EnglishToLojban)
	check.Empty(d.EnglishToLojban)
}
