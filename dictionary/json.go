package dictionary

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// WriteJSON writes d to w as a single JSON object followed by a
// newline. Strings are written verbatim (no HTML escaping). A non-empty
// indent pretty-prints the output.
func (d *Dictionary) WriteJSON(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return errors.Wrap(enc.Encode(d), "encode dictionary")
}
