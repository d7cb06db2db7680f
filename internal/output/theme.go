package output

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// palette holds the colours the HTML page needs, taken from a chroma style.
type palette struct {
	Name       string
	Background string
	Foreground string
	Added      string
	Removed    string
	Hunk       string
	Header     string
	Muted      string
}

// paletteFor resolves a chroma style by name. Unknown names use chroma's
// fallback style.
func paletteFor(name string) palette {
	style := styles.Get(name)
	bg := style.Get(chroma.Background)

	return palette{
		Name:       style.Name,
		Background: colourOr(bg.Background, "#ffffff"),
		Foreground: colourOr(bg.Colour, "#24292e"),
		Added:      colourOr(style.Get(chroma.GenericInserted).Colour, "#22863a"),
		Removed:    colourOr(style.Get(chroma.GenericDeleted).Colour, "#b31d28"),
		Hunk:       colourOr(style.Get(chroma.GenericSubheading).Colour, "#6f42c1"),
		Header:     colourOr(style.Get(chroma.GenericHeading).Colour, "#005cc5"),
		Muted:      colourOr(style.Get(chroma.Comment).Colour, "#6a737d"),
	}
}

func colourOr(c chroma.Colour, fallback string) string {
	if c.IsSet() {
		return c.String()
	}
	return fallback
}

// CSS renders the palette as custom properties. The values come from chroma's
// style registry, never from repository content.
func (p palette) CSS() template.CSS {
	return template.CSS(fmt.Sprintf(
		":root{--bg:%s;--fg:%s;--add:%s;--del:%s;--hunk:%s;--file:%s;--muted:%s}",
		p.Background, p.Foreground, p.Added, p.Removed, p.Hunk, p.Header, p.Muted))
}

// ThemeNames lists the available chroma styles.
func ThemeNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Language names the programming language of a file, or "" when unknown.
func Language(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
