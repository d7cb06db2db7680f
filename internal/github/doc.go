// Package github provides a minimal GitHub REST API client for reading a
// branch's commit history.
//
// The client lists commits page by page, following the cursor carried in the
// Link response header, and fetches per-commit detail including file patches.
// All requests share one rate limiter so that consecutive calls are spaced by
// a fixed courtesy interval. Non-success responses are classified into
// [NotFoundError], [RateLimitError], [EmptyRepositoryError] and
// [UpstreamError].
//
// The API token is passed in through [Options]; the package never reads the
// environment.
package github
