// Package output renders timeline documents.
//
// Three formats are supported:
//   - html: a single self-contained page with collapsible, copyable diffs (default)
//   - json: the full document as indented JSON
//   - markdown: one section per commit with fenced diff blocks
//
// Use [GetWriter] to obtain a [Writer] for a format string, or
// [WriteDocument] to render straight to a file. Rendering never touches the
// network, and for a given document the output is byte-for-byte stable apart
// from the generation timestamp.
package output
