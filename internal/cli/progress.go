package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"

	"github.com/dshills/chronicle/internal/timeline"
)

var (
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	failure = color.New(color.FgRed, color.Bold)
)

// progress reports pipeline status on stderr. Stdout is kept clean for
// "--out -".
type progress struct {
	w      io.Writer
	cached int
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) start(owner, repo, branch string, authenticated bool) {
	fmt.Fprintf(p.w, "Reading %s/%s@%s\n", owner, repo, branch)
	if !authenticated {
		warn.Fprintln(p.w, "GITHUB_TOKEN is not set; unauthenticated requests are limited to 60 per hour")
	}
}

func (p *progress) page(page, total int) {
	faint.Fprintf(p.w, "  listed page %d (%s commits)\n", page, humanize.Comma(int64(total)))
}

func (p *progress) listed(total int) {
	fmt.Fprintf(p.w, "Fetching %s commit %s\n", humanize.Comma(int64(total)), english.PluralWord(total, "detail", ""))
}

func (p *progress) detail(done, total int, sha string, cached bool) {
	suffix := ""
	if cached {
		p.cached++
		suffix = " (cached)"
	}
	faint.Fprintf(p.w, "  [%d/%d] %s%s\n", done, total, timeline.ShortSHA(sha), suffix)
}

func (p *progress) wrote(commits, size int, path string) {
	dest := path
	if path == "-" {
		dest = "stdout"
	}
	success.Fprintf(p.w, "Wrote %s %s (%s) to %s\n",
		humanize.Comma(int64(commits)), english.PluralWord(commits, "commit", ""),
		humanize.Bytes(uint64(size)), dest)
	if p.cached > 0 {
		faint.Fprintf(p.w, "  %s served from cache\n", humanize.Comma(int64(p.cached)))
	}
}

// printError writes the single failure line.
func printError(err error) {
	failure.Fprintf(os.Stderr, "Error: %v\n", err)
}
