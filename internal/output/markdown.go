package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/dshills/chronicle/internal/timeline"
)

// MarkdownWriter outputs the timeline as a markdown document with one
// section per commit and each diff in a fenced block.
type MarkdownWriter struct {
	Options Options
}

func (m *MarkdownWriter) Write(w io.Writer, doc *timeline.Document) error {
	ew := &errWriter{w: w}
	repoURL := fmt.Sprintf("%s/%s/%s", m.Options.webURL(), doc.Owner, doc.Repo)

	title := m.Options.Title
	if title == "" {
		title = doc.FullName()
	}
	ew.printf("# %s\n\n", mdText(title))
	ew.printf("[%s](%s) · branch `%s` · %s · generated %s\n\n",
		doc.FullName(), repoURL, doc.Branch,
		english.Plural(len(doc.Records), "commit", ""),
		doc.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))

	for i, r := range doc.Records {
		ew.printf("## %d. %s\n\n", i+1, mdText(r.Title()))
		ew.printf("[`%s`](%s/commit/%s) · %s", r.ShortSHA(), repoURL, r.SHA, DisplayDate(r.Date))
		if r.Author != "" {
			ew.printf(" · %s", mdText(r.Author))
		}
		ew.println("\n")

		if body := r.Body(); body != "" {
			ew.printf("%s\n\n", mdText(body))
		}

		for _, f := range r.Files {
			name := f.Filename
			if f.PreviousFilename != "" {
				name = f.PreviousFilename + " → " + f.Filename
			}
			ew.printf("- `%s` %s (+%d −%d)\n", name, f.Status, f.Additions, f.Deletions)
		}
		if len(r.Files) > 0 {
			ew.println("")
		}

		if r.Diff != "" {
			fence := diffFence(r.Diff)
			ew.printf("%sdiff\n%s\n%s\n\n", fence, r.Diff, fence)
		}
	}
	return ew.err
}

// mdText escapes the characters markdown renderers would treat as raw HTML.
func mdText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// diffFence returns a backtick fence longer than any backtick run in diff.
func diffFence(diff string) string {
	longest, run := 0, 0
	for _, c := range diff {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
