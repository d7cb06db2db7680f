package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIURL    = "https://api.github.com"
	defaultUserAgent = "chronicle"
	apiVersion       = "2022-11-28"

	// DefaultTimeout bounds a single request when Options.HTTPClient is nil.
	DefaultTimeout = 30 * time.Second
	// DefaultInterval is the recommended spacing between API requests.
	DefaultInterval = 150 * time.Millisecond
	// PageSize is the number of commits requested per list page.
	PageSize = 100
)

// Options configures a Client.
type Options struct {
	// APIURL is the REST API root. Defaults to https://api.github.com.
	APIURL string
	// Token is sent as a bearer credential when non-empty.
	Token string
	// HTTPClient overrides the transport. When nil a client with Timeout is used.
	HTTPClient *http.Client
	// Timeout applies to the default HTTP client only.
	Timeout time.Duration
	// Interval is the minimum spacing between requests. Zero disables spacing.
	Interval time.Duration
	// UserAgent defaults to "chronicle".
	UserAgent string
	// OnPage is called after each commit list page with the page number and
	// the number of commits collected so far.
	OnPage func(page, total int)
}

// Client provides access to the GitHub REST API.
type Client struct {
	token     string
	apiURL    string
	userAgent string
	httpCli   *http.Client
	limiter   *rate.Limiter
	onPage    func(page, total int)
}

// NewClient creates a new GitHub client.
func NewClient(opts Options) *Client {
	apiURL := strings.TrimRight(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	httpCli := opts.HTTPClient
	if httpCli == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpCli = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		token:     opts.Token,
		apiURL:    apiURL,
		userAgent: userAgent,
		httpCli:   httpCli,
		limiter:   rate.NewLimiter(limit, 1),
		onPage:    opts.OnPage,
	}
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// get waits for the limiter, performs a GET and reads the whole body.
func (c *Client) get(ctx context.Context, rawURL string) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// sameOrigin reports whether raw has the scheme and host of the API root.
// The token is only ever sent there.
func (c *Client) sameOrigin(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	base, err := url.Parse(c.apiURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}
