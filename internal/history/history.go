package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/chronicle/internal/github"
	"github.com/dshills/chronicle/internal/redact"
	"github.com/dshills/chronicle/internal/timeline"
)

// Source is the remote the fetcher reads from. *github.Client implements it.
type Source interface {
	ListCommits(ctx context.Context, owner, repo, branch string) ([]timeline.CommitSummary, error)
	FetchDetail(ctx context.Context, owner, repo, sha string) (timeline.CommitDetail, error)
}

// DetailCache stores serialized commit details by key. *cache.Cache
// implements it.
type DetailCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte) error
}

// RedactPolicy controls patch scrubbing. The zero value disables it.
type RedactPolicy struct {
	Secrets bool
	Paths   []string
}

func (p RedactPolicy) enabled() bool {
	return p.Secrets || len(p.Paths) > 0
}

// EmptyHistoryError reports a branch without commits, which usually means the
// branch name is wrong.
type EmptyHistoryError struct {
	Owner, Repo, Branch string
}

func (e *EmptyHistoryError) Error() string {
	return fmt.Sprintf("no commits found on branch %q of %s/%s (check the branch name)", e.Branch, e.Owner, e.Repo)
}

// Fetcher builds commit records from a Source.
type Fetcher struct {
	Source Source
	// Cache is optional.
	Cache DetailCache
	// Redact is applied to patches before the diff is built.
	Redact RedactPolicy
	// OnList is called once the commit list is complete.
	OnList func(total int)
	// OnProgress is called after each commit detail is resolved.
	OnProgress func(done, total int, sha string, cached bool)
}

// Fetch returns every commit on the branch, oldest first, with its diff.
func (f *Fetcher) Fetch(ctx context.Context, owner, repo, branch string) ([]timeline.CommitRecord, error) {
	summaries, err := f.Source.ListCommits(ctx, owner, repo, branch)
	if err != nil {
		var empty *github.EmptyRepositoryError
		if errors.As(err, &empty) {
			return nil, &EmptyHistoryError{Owner: owner, Repo: repo, Branch: branch}
		}
		return nil, fmt.Errorf("listing commits: %w", err)
	}
	if len(summaries) == 0 {
		return nil, &EmptyHistoryError{Owner: owner, Repo: repo, Branch: branch}
	}
	if f.OnList != nil {
		f.OnList(len(summaries))
	}

	ordered := timeline.Reverse(summaries)
	records := make([]timeline.CommitRecord, 0, len(ordered))
	for i, s := range ordered {
		detail, cached, err := f.detail(ctx, owner, repo, s.SHA)
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", timeline.ShortSHA(s.SHA), err)
		}
		records = append(records, f.record(s, detail))
		if f.OnProgress != nil {
			f.OnProgress(i+1, len(ordered), s.SHA, cached)
		}
	}
	return records, nil
}

// detail resolves one commit through the cache, falling back to the source.
func (f *Fetcher) detail(ctx context.Context, owner, repo, sha string) (timeline.CommitDetail, bool, error) {
	key := CacheKey(owner, repo, sha)
	if f.Cache != nil {
		if data, ok := f.Cache.Get(key); ok {
			var d timeline.CommitDetail
			if err := json.Unmarshal(data, &d); err == nil && d.SHA == sha {
				return d, true, nil
			}
		}
	}

	d, err := f.Source.FetchDetail(ctx, owner, repo, sha)
	if err != nil {
		return timeline.CommitDetail{}, false, err
	}

	if f.Cache != nil {
		if data, err := json.Marshal(d); err == nil {
			// A failed cache write only costs a refetch next run.
			_ = f.Cache.Put(key, data)
		}
	}
	return d, false, nil
}

// record merges a summary with its detail. Detail fields win; the summary
// fills in anything the detail left empty.
func (f *Fetcher) record(s timeline.CommitSummary, d timeline.CommitDetail) timeline.CommitRecord {
	r := timeline.CommitRecord{
		SHA:     s.SHA,
		Date:    firstNonEmpty(d.Date, s.Date),
		Message: firstNonEmpty(d.Message, s.Message),
		Author:  firstNonEmpty(d.Author, s.Author),
		Files:   d.Files,
	}
	if f.Redact.enabled() {
		r.Files = redactFiles(d.Files, f.Redact)
	}
	r.Diff = timeline.BuildDiff(r.Files)
	return r
}

func redactFiles(files []timeline.FileChange, p RedactPolicy) []timeline.FileChange {
	out := make([]timeline.FileChange, len(files))
	for i, fc := range files {
		out[i] = fc
		if fc.HasPatch() {
			out[i].Patch = redact.Patch(fc.Patch, fc.Filename, p.Secrets, p.Paths)
		}
	}
	return out
}

// CacheKey identifies a commit detail in the cache.
func CacheKey(owner, repo, sha string) string {
	return fmt.Sprintf("commit:%s/%s@%s", owner, repo, sha)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
