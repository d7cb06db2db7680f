package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/chronicle/internal/cache"
	"github.com/dshills/chronicle/internal/config"
	"github.com/dshills/chronicle/internal/github"
	"github.com/dshills/chronicle/internal/history"
	"github.com/dshills/chronicle/internal/output"
	"github.com/dshills/chronicle/internal/timeline"
)

// Timeline flags. Negative interval and timeout mean "not set".
var (
	flagBranch   string
	flagOut      string
	flagFormat   string
	flagTheme    string
	flagTitle    string
	flagRedact   bool
	flagCache    bool
	flagInterval int
	flagTimeout  int
)

func addTimelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagBranch, "branch", "b", "", "Branch to read (default from config, \"main\")")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file path, \"-\" for stdout (default <repo>-<branch>-timeline.<ext>)")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format (html, json, markdown)")
	cmd.Flags().StringVar(&flagTheme, "theme", "", "Colour theme for HTML output (see 'chronicle themes')")
	cmd.Flags().StringVar(&flagTitle, "title", "", "Document title (default owner/repo)")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Scrub likely secrets from patches")
	cmd.Flags().BoolVar(&flagCache, "cache", false, "Cache commit details on disk between runs")
	cmd.Flags().IntVar(&flagInterval, "interval", -1, "Minimum milliseconds between API requests")
	cmd.Flags().IntVar(&flagTimeout, "timeout", -1, "Per-request timeout in seconds")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagBranch != "" {
		m["branch"] = flagBranch
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagTheme != "" {
		m["theme"] = flagTheme
	}
	if flagTitle != "" {
		m["title"] = flagTitle
	}
	if flagRedact {
		m["redactSecrets"] = "true"
	}
	if flagCache {
		m["cache"] = "true"
	}
	if flagInterval >= 0 {
		m["intervalMs"] = strconv.Itoa(flagInterval)
	}
	if flagTimeout >= 0 {
		m["timeoutSeconds"] = strconv.Itoa(flagTimeout)
	}
	return m
}

// resolveRepo takes the repository from the argument, or from the origin
// remote of the current directory when no argument is given.
func resolveRepo(args []string) (owner, repo string, err error) {
	if len(args) > 0 {
		return github.ParseRepoSpec(args[0])
	}
	owner, repo, err = github.DetectRepo("")
	if err != nil {
		return "", "", fmt.Errorf("no repository given: %w", err)
	}
	return owner, repo, nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	owner, repo, err := resolveRepo(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := newProgress(os.Stderr)

	client := github.NewClient(github.Options{
		APIURL:   cfg.APIURL,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout(),
		Interval: cfg.Interval(),
		OnPage:   p.page,
	})

	fetcher := &history.Fetcher{
		Source:     client,
		OnList:     p.listed,
		OnProgress: p.detail,
		Redact: history.RedactPolicy{
			Secrets: cfg.Privacy.RedactSecrets,
			Paths:   cfg.Privacy.RedactPaths,
		},
	}
	if cfg.Cache.Enabled {
		c, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		fetcher.Cache = c
	}

	p.start(owner, repo, cfg.Branch, cfg.Token != "")
	records, err := fetcher.Fetch(ctx, owner, repo, cfg.Branch)
	if err != nil {
		return err
	}

	doc := &timeline.Document{
		Owner:       owner,
		Repo:        repo,
		Branch:      cfg.Branch,
		GeneratedAt: time.Now().UTC(),
		Records:     records,
	}

	outPath := flagOut
	if outPath == "" {
		outPath = output.DefaultOutPath(repo, cfg.Branch, cfg.Format)
	}
	n, err := output.WriteDocument(doc, cfg.Format, outPath, output.Options{
		Title:  cfg.Title,
		Theme:  cfg.Theme,
		WebURL: cfg.WebURL,
	})
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	p.wrote(len(records), n, outPath)
	return nil
}
