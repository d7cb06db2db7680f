package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/chronicle/internal/timeline"
)

// JSONWriter outputs the full document as indented JSON. Diff text is kept
// verbatim: <, > and & are not rewritten to \u escapes.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, doc *timeline.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
