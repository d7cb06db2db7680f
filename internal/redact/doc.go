// Package redact scrubs likely credentials out of patch text before it is
// published in a timeline document.
//
// Detection is heuristic: [Secrets] replaces matches of common key, token and
// private-key shapes with a placeholder, and [Patch] can drop a file's whole
// patch when its path matches a glob policy such as "**/.env".
package redact
