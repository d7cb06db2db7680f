package output

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Masterminds/sprig"

	"github.com/dshills/chronicle/internal/timeline"
)

//go:embed templates/timeline.html.tmpl
var timelineSource string

var timelineTemplate = template.Must(
	template.New("timeline").
		Funcs(sprig.FuncMap()).
		Funcs(template.FuncMap{
			"displayDate": DisplayDate,
			"language":    Language,
		}).
		Parse(timelineSource),
)

// HTMLWriter renders a self-contained HTML page.
type HTMLWriter struct {
	Options Options
}

type htmlPage struct {
	Title       string
	FullName    string
	RepoURL     string
	Branch      string
	GeneratedAt time.Time
	Palette     palette
	Commits     []htmlCommit
}

type htmlCommit struct {
	Number    int
	SHA       string
	Short     string
	URL       string
	Date      string
	Author    string
	Title     string
	Body      string
	Files     []timeline.FileChange
	Additions int
	Deletions int
	Lines     []DiffLine
}

func (h *HTMLWriter) Write(w io.Writer, doc *timeline.Document) error {
	repoURL := fmt.Sprintf("%s/%s/%s", h.Options.webURL(), doc.Owner, doc.Repo)

	page := htmlPage{
		Title:       h.Options.Title,
		FullName:    doc.FullName(),
		RepoURL:     repoURL,
		Branch:      doc.Branch,
		GeneratedAt: doc.GeneratedAt,
		Palette:     paletteFor(h.Options.Theme),
		Commits:     make([]htmlCommit, len(doc.Records)),
	}
	for i, r := range doc.Records {
		c := htmlCommit{
			Number: i + 1,
			SHA:    r.SHA,
			Short:  r.ShortSHA(),
			URL:    repoURL + "/commit/" + r.SHA,
			Date:   r.Date,
			Author: r.Author,
			Title:  r.Title(),
			Body:   r.Body(),
			Files:  r.Files,
			Lines:  SplitDiff(r.Diff),
		}
		for _, f := range r.Files {
			c.Additions += f.Additions
			c.Deletions += f.Deletions
		}
		page.Commits[i] = c
	}

	return timelineTemplate.Execute(w, page)
}
