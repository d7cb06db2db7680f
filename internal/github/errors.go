package github

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// InvalidArgumentError reports a malformed repository specification.
type InvalidArgumentError struct {
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s", e.Value, e.Reason)
}

// NotFoundError reports that a repository, branch or commit does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// EmptyRepositoryError reports a repository without any commits.
type EmptyRepositoryError struct {
	Resource string
}

func (e *EmptyRepositoryError) Error() string {
	return e.Resource + " has no commits"
}

// RateLimitError reports an exhausted API quota.
type RateLimitError struct {
	// Limit is the quota size from X-RateLimit-Limit, zero when absent.
	Limit int
	// Reset is when the quota refills. Zero when the response gave no reset.
	Reset time.Time
	// RetryAfter is set for secondary rate limits that carry Retry-After.
	RetryAfter time.Duration
}

// Wait estimates how long to wait before the quota is available again. It
// never returns a negative duration. ok is false when no estimate exists.
func (e *RateLimitError) Wait(now time.Time) (d time.Duration, ok bool) {
	switch {
	case e.RetryAfter > 0:
		return e.RetryAfter, true
	case !e.Reset.IsZero():
		d = e.Reset.Sub(now).Round(time.Second)
		if d < 0 {
			d = 0
		}
		return d, true
	default:
		return 0, false
	}
}

func (e *RateLimitError) Error() string {
	msg := "GitHub API rate limit exceeded"
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit %d requests/hour)", e.Limit)
	}
	wait, ok := e.Wait(time.Now())
	if !ok {
		return msg + "; reset time unknown, set GITHUB_TOKEN for a higher limit"
	}
	msg += fmt.Sprintf("; retry in about %s", wait)
	if !e.Reset.IsZero() {
		msg += fmt.Sprintf(" (resets at %s)", e.Reset.UTC().Format(time.RFC3339))
	}
	return msg
}

// UpstreamError reports any other non-success response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// checkResponse maps a non-2xx response to a typed error. resource names the
// thing being requested for NotFoundError messages.
func checkResponse(resp *response, resource string) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	if code == http.StatusNotFound {
		return &NotFoundError{Resource: resource}
	}
	if code == http.StatusForbidden || code == http.StatusTooManyRequests {
		if rl := rateLimitFromHeader(resp.Header, code == http.StatusTooManyRequests); rl != nil {
			return rl
		}
	}
	return &UpstreamError{StatusCode: code, Body: string(resp.Body)}
}

// rateLimitFromHeader returns a RateLimitError when the headers describe an
// exhausted quota or a secondary limit. force is set for 429 responses, which
// are always rate limits even without headers.
func rateLimitFromHeader(h http.Header, force bool) *RateLimitError {
	rl := &RateLimitError{}
	if n, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		rl.Limit = n
	}

	if h.Get("X-RateLimit-Remaining") == "0" {
		if epoch, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
			rl.Reset = time.Unix(epoch, 0)
		}
		return rl
	}
	if secs, err := strconv.Atoi(h.Get("Retry-After")); err == nil && secs >= 0 {
		rl.RetryAfter = time.Duration(secs) * time.Second
		return rl
	}
	if force {
		return rl
	}
	return nil
}
