// Package history assembles a branch's full commit timeline.
//
// [Fetcher.Fetch] lists the branch's commits, reverses them to oldest-first,
// then fetches each commit's detail one at a time and turns its file changes
// into a synthetic unified diff. The first error aborts the run; callers never
// see a partial timeline.
package history
