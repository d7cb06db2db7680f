package output

import (
	"strings"
	"time"
)

// LineKind classifies a diff line for styling.
type LineKind string

const (
	LineContext LineKind = "ctx"
	LineHunk    LineKind = "hunk"
	LineHeader  LineKind = "file"
	LineAdd     LineKind = "add"
	LineDel     LineKind = "del"
)

// DiffLine is one line of a diff together with its kind. Text is the line
// exactly as it appears in the diff.
type DiffLine struct {
	Kind LineKind
	Text string
}

// ClassifyLine returns the kind of a single unified-diff line. File headers
// are checked before single-character prefixes since "+++" and "---" would
// otherwise read as added and removed lines.
func ClassifyLine(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "@@"):
		return LineHunk
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return LineHeader
	case strings.HasPrefix(line, "+"):
		return LineAdd
	case strings.HasPrefix(line, "-"):
		return LineDel
	default:
		return LineContext
	}
}

// SplitDiff annotates every line of diff. Joining the Text fields with "\n"
// reproduces diff exactly.
func SplitDiff(diff string) []DiffLine {
	if diff == "" {
		return nil
	}
	raw := strings.Split(diff, "\n")
	lines := make([]DiffLine, len(raw))
	for i, l := range raw {
		lines[i] = DiffLine{Kind: ClassifyLine(l), Text: l}
	}
	return lines
}

// DisplayDate reduces an RFC 3339 timestamp to its UTC calendar date. Input
// that does not parse is returned unchanged.
func DisplayDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format("2006-01-02")
}
