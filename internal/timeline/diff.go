package timeline

import (
	"fmt"
	"strings"
)

// FileHeader returns the synthetic unified-diff header for a file.
func FileHeader(filename string) string {
	return "--- a/" + filename + "\n+++ b/" + filename
}

// Placeholder is the text that stands in for a missing patch.
func Placeholder(status Status) string {
	return fmt.Sprintf("# (%s) No textual diff available.", status)
}

// BuildDiff concatenates per-file diff blocks in input order, separated by a
// blank line. Each block is the file header followed by the patch, or by a
// status placeholder when the change has no patch.
func BuildDiff(files []FileChange) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		body := f.Patch
		if !f.HasPatch() {
			body = Placeholder(f.Status)
		}
		blocks = append(blocks, FileHeader(f.Filename)+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}
