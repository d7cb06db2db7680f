package timeline

import (
	"strings"
	"time"
)

// ShortSHALen is the number of identifier characters shown in compact views.
const ShortSHALen = 7

// Status is the kind of change a commit made to a file.
type Status string

// File change statuses reported by the commit detail endpoint.
const (
	StatusAdded     Status = "added"
	StatusModified  Status = "modified"
	StatusRemoved   Status = "removed"
	StatusRenamed   Status = "renamed"
	StatusCopied    Status = "copied"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// CommitSummary is one entry of the commit list endpoint.
type CommitSummary struct {
	SHA     string `json:"sha"`
	Date    string `json:"date"`
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
}

// FileChange is a single file touched by a commit. Patch is empty for binary
// files and rename-only changes.
type FileChange struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previousFilename,omitempty"`
	Status           Status `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"patch,omitempty"`
}

// HasPatch reports whether the change carries textual diff content.
func (f FileChange) HasPatch() bool {
	return f.Patch != ""
}

// CommitDetail is the full view of one commit as returned by the detail
// endpoint.
type CommitDetail struct {
	SHA     string       `json:"sha"`
	Date    string       `json:"date"`
	Message string       `json:"message"`
	Author  string       `json:"author,omitempty"`
	Files   []FileChange `json:"files"`
}

// CommitRecord is a commit ready for rendering.
type CommitRecord struct {
	SHA     string       `json:"sha"`
	Date    string       `json:"date"`
	Message string       `json:"message"`
	Author  string       `json:"author,omitempty"`
	Diff    string       `json:"diff"`
	Files   []FileChange `json:"files,omitempty"`
}

// ShortSHA returns the compact display form of the record's identifier.
func (r CommitRecord) ShortSHA() string {
	return ShortSHA(r.SHA)
}

// Title returns the first line of the commit message.
func (r CommitRecord) Title() string {
	return Title(r.Message)
}

// Body returns the commit message without its title line.
func (r CommitRecord) Body() string {
	return Body(r.Message)
}

// Document is a complete timeline of a branch, oldest commit first.
type Document struct {
	Owner       string         `json:"owner"`
	Repo        string         `json:"repo"`
	Branch      string         `json:"branch"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Records     []CommitRecord `json:"records"`
}

// FullName returns "owner/repo".
func (d *Document) FullName() string {
	return d.Owner + "/" + d.Repo
}

// ShortSHA returns the first ShortSHALen characters of sha, or sha itself when
// it is shorter.
func ShortSHA(sha string) string {
	if len(sha) <= ShortSHALen {
		return sha
	}
	return sha[:ShortSHALen]
}

// Title returns the first line of a commit message.
func Title(message string) string {
	title, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(title, "\r ")
}

// Body returns everything after the first line of a commit message, with
// surrounding blank lines removed.
func Body(message string) string {
	_, body, found := strings.Cut(message, "\n")
	if !found {
		return ""
	}
	return strings.Trim(body, "\r\n")
}

// Reverse returns a reversed copy of s.
func Reverse[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
