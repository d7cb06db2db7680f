// Package cache provides an optional on-disk cache for commit details.
//
// Commit details are addressed by an immutable SHA, so entries never go stale
// on their own; a TTL can still be configured to bound disk use. Entries are
// JSON files named by the SHA-256 of their key. The default directory is
// $XDG_CACHE_HOME/chronicle (or the OS-appropriate equivalent).
package cache
