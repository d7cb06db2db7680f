// Package timeline defines the in-memory model of a repository history
// document: commit summaries from the list endpoint, per-commit file changes,
// the normalized commit records, and the document that holds them in
// oldest-first order.
//
// [BuildDiff] turns a commit's file changes into a single synthetic unified
// diff. It is pure: the same input always yields the same bytes.
package timeline
