package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dshills/chronicle/internal/timeline"
)

// ErrNoMorePages is returned by CommitPager.Next once the last page was read.
var ErrNoMorePages = errors.New("github: no more pages")

type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
	Files []apiFile `json:"files"`
}

type apiFile struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previous_filename"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"patch"`
}

func (c apiCommit) summary() timeline.CommitSummary {
	return timeline.CommitSummary{
		SHA:     c.SHA,
		Date:    c.Commit.Author.Date,
		Message: c.Commit.Message,
		Author:  c.Commit.Author.Name,
	}
}

// CommitPager walks the pages of a branch's commit list. Each call to Next
// fetches the page under the current cursor and advances the cursor to the
// page's "next" link; the pager is exhausted once a page has no such link.
type CommitPager struct {
	client   *Client
	resource string
	next     string
	page     int
}

// CommitPager returns a pager positioned at the first page of the branch's
// commit list, newest commit first.
func (c *Client) CommitPager(owner, repo, branch string) *CommitPager {
	q := url.Values{}
	q.Set("sha", branch)
	q.Set("per_page", strconv.Itoa(PageSize))
	first := fmt.Sprintf("%s/repos/%s/%s/commits?%s",
		c.apiURL, url.PathEscape(owner), url.PathEscape(repo), q.Encode())

	return &CommitPager{
		client:   c,
		resource: fmt.Sprintf("repository %s/%s or branch %q", owner, repo, branch),
		next:     first,
	}
}

// More reports whether another page is available.
func (p *CommitPager) More() bool {
	return p.next != ""
}

// Page returns the number of pages read so far.
func (p *CommitPager) Page() int {
	return p.page
}

// Next fetches the page under the cursor.
func (p *CommitPager) Next(ctx context.Context) ([]timeline.CommitSummary, error) {
	if !p.More() {
		return nil, ErrNoMorePages
	}

	resp, err := p.client.get(ctx, p.next)
	if err != nil {
		return nil, fmt.Errorf("fetching commit list: %w", err)
	}
	if resp.StatusCode == http.StatusConflict {
		return nil, &EmptyRepositoryError{Resource: p.resource}
	}
	if err := checkResponse(resp, p.resource); err != nil {
		return nil, err
	}

	var commits []apiCommit
	if err := json.Unmarshal(resp.Body, &commits); err != nil {
		return nil, fmt.Errorf("parsing commit list: %w", err)
	}

	items := make([]timeline.CommitSummary, len(commits))
	for i, c := range commits {
		items[i] = c.summary()
	}

	next := ParseLinkHeader(resp.Header.Get("Link"))["next"]
	if next != "" && !p.client.sameOrigin(next) {
		return nil, fmt.Errorf("commit list cursor %q is outside %s", next, p.client.apiURL)
	}
	p.page++
	p.next = next
	return items, nil
}

// ListCommits returns every commit on the branch in the API's order, newest
// first.
func (c *Client) ListCommits(ctx context.Context, owner, repo, branch string) ([]timeline.CommitSummary, error) {
	pager := c.CommitPager(owner, repo, branch)

	var all []timeline.CommitSummary
	for pager.More() {
		items, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if c.onPage != nil {
			c.onPage(pager.Page(), len(all))
		}
	}
	return all, nil
}

// FetchDetail fetches one commit including its changed files and patches.
func (c *Client) FetchDetail(ctx context.Context, owner, repo, sha string) (timeline.CommitDetail, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/commits/%s",
		c.apiURL, url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(sha))

	resp, err := c.get(ctx, u)
	if err != nil {
		return timeline.CommitDetail{}, fmt.Errorf("fetching commit %s: %w", timeline.ShortSHA(sha), err)
	}
	if err := checkResponse(resp, fmt.Sprintf("commit %s in %s/%s", sha, owner, repo)); err != nil {
		return timeline.CommitDetail{}, err
	}

	var ac apiCommit
	if err := json.Unmarshal(resp.Body, &ac); err != nil {
		return timeline.CommitDetail{}, fmt.Errorf("parsing commit %s: %w", timeline.ShortSHA(sha), err)
	}

	files := make([]timeline.FileChange, len(ac.Files))
	for i, f := range ac.Files {
		files[i] = timeline.FileChange{
			Filename:         f.Filename,
			PreviousFilename: f.PreviousFilename,
			Status:           timeline.Status(f.Status),
			Additions:        f.Additions,
			Deletions:        f.Deletions,
			Patch:            f.Patch,
		}
	}

	s := ac.summary()
	if s.SHA == "" {
		s.SHA = sha
	}
	return timeline.CommitDetail{
		SHA:     s.SHA,
		Date:    s.Date,
		Message: s.Message,
		Author:  s.Author,
		Files:   files,
	}, nil
}
