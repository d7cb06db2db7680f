package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/chronicle/internal/timeline"
)

// Writer writes a document in a specific format.
type Writer interface {
	Write(w io.Writer, doc *timeline.Document) error
}

// Options tune the presentation of a document.
type Options struct {
	// Title replaces the default "owner/repo" page title.
	Title string
	// Theme names a chroma style used for colours.
	Theme string
	// WebURL is the web root that commit links point at.
	WebURL string
}

func (o Options) webURL() string {
	if o.WebURL == "" {
		return "https://github.com"
	}
	return strings.TrimRight(o.WebURL, "/")
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "html", "":
		return &HTMLWriter{Options: opts}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension used for a format.
func Extension(format string) string {
	switch format {
	case "json":
		return "json"
	case "markdown", "md":
		return "md"
	default:
		return "html"
	}
}

// DefaultOutPath derives an output file name from the repository and branch.
func DefaultOutPath(repo, branch, format string) string {
	safe := strings.NewReplacer("/", "-", `\`, "-", " ", "-", ":", "-").Replace(branch)
	return fmt.Sprintf("%s-%s-timeline.%s", repo, safe, Extension(format))
}

// WriteDocument renders the document and writes it to outPath, or to stdout
// when outPath is "-". The document is rendered in memory first and the file
// is replaced atomically, so a failure never leaves a partial file behind.
// It returns the number of bytes written.
func WriteDocument(doc *timeline.Document, format, outPath string, opts Options) (int, error) {
	writer, err := GetWriter(format, opts)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, doc); err != nil {
		return 0, fmt.Errorf("rendering %s: %w", format, err)
	}

	if outPath == "-" {
		return os.Stdout.Write(buf.Bytes())
	}
	if err := writeFileAtomic(outPath, buf.Bytes()); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("moving output file into place: %w", err)
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
