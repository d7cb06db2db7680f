package cli

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/chronicle/internal/github"
)

// resetFlags resets all package-level flag variables to their defaults.
func resetFlags() {
	flagBranch = ""
	flagOut = ""
	flagFormat = ""
	flagTheme = ""
	flagTitle = ""
	flagRedact = false
	flagCache = false
	flagInterval = -1
	flagTimeout = -1
}

// isolate points config and environment at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"CHRONICLE_BRANCH", "CHRONICLE_FORMAT", "CHRONICLE_THEME", "CHRONICLE_INTERVAL_MS", "CHRONICLE_TIMEOUT", "GITHUB_API_URL", "GITHUB_TOKEN"} {
		t.Setenv(k, "")
	}
	resetFlags()
	return dir
}

func TestBuildOverrides_NoFlags(t *testing.T) {
	resetFlags()
	if m := buildOverrides(); len(m) != 0 {
		t.Errorf("buildOverrides() with no flags = %v, want empty map", m)
	}
}

func TestBuildOverrides_AllFlags(t *testing.T) {
	resetFlags()
	flagBranch = "dev"
	flagFormat = "json"
	flagTheme = "monokai"
	flagTitle = "History"
	flagRedact = true
	flagCache = true
	flagInterval = 0
	flagTimeout = 10

	want := map[string]string{
		"branch":         "dev",
		"format":         "json",
		"theme":          "monokai",
		"title":          "History",
		"redactSecrets":  "true",
		"cache":          "true",
		"intervalMs":     "0",
		"timeoutSeconds": "10",
	}
	if diff := cmp.Diff(want, buildOverrides()); diff != "" {
		t.Errorf("buildOverrides() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRepo(t *testing.T) {
	tests := []struct {
		arg         string
		owner, repo string
		wantErr     bool
	}{
		{"acme/widgets", "acme", "widgets", false},
		{"https://github.com/acme/widgets.git", "acme", "widgets", false},
		{"not a repo", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			owner, repo, err := resolveRepo([]string{tt.arg})
			if tt.wantErr {
				var inv *github.InvalidArgumentError
				if !errors.As(err, &inv) {
					t.Fatalf("expected InvalidArgumentError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.owner || repo != tt.repo {
				t.Errorf("got %s/%s, want %s/%s", owner, repo, tt.owner, tt.repo)
			}
		})
	}
}

// fakeGitHub serves a two-commit branch, newest first.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/commits", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sha") != "main" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		fmt.Fprint(w, `[
			{"sha":"aaaa1111aaaa","commit":{"author":{"name":"Grace","date":"2023-05-02T00:00:00Z"},"message":"Add logo"}},
			{"sha":"bbbb2222bbbb","commit":{"author":{"name":"Ada","date":"2023-05-01T00:00:00Z"},"message":"Initial commit"}}
		]`)
	})
	mux.HandleFunc("/repos/acme/widgets/commits/aaaa1111aaaa", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"aaaa1111aaaa","commit":{"author":{"name":"Grace","date":"2023-05-02T00:00:00Z"},"message":"Add logo"},
			"files":[{"filename":"logo.png","status":"added","additions":0,"deletions":0}]}`)
	})
	mux.HandleFunc("/repos/acme/widgets/commits/bbbb2222bbbb", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"bbbb2222bbbb","commit":{"author":{"name":"Ada","date":"2023-05-01T00:00:00Z"},"message":"Initial commit"},
			"files":[{"filename":"main.go","status":"added","additions":1,"deletions":0,"patch":"@@ -0,0 +1 @@\n+package main"}]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestExecute_WritesTimeline(t *testing.T) {
	dir := isolate(t)
	server := fakeGitHub(t)
	t.Setenv("GITHUB_API_URL", server.URL)

	out := filepath.Join(dir, "timeline.md")
	code := execute([]string{"acme/widgets", "--format", "markdown", "--interval", "0", "--out", out})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	first, second := strings.Index(s, "Initial commit"), strings.Index(s, "Add logo")
	if first < 0 || second < 0 || first > second {
		t.Errorf("commits missing or out of order:\n%s", s)
	}
	if !strings.Contains(s, "# (added) No textual diff available.") {
		t.Error("binary file placeholder missing")
	}
}

func TestExecute_WithCache(t *testing.T) {
	dir := isolate(t)
	server := fakeGitHub(t)
	t.Setenv("GITHUB_API_URL", server.URL)

	out := filepath.Join(dir, "timeline.json")
	args := []string{"acme/widgets", "--format", "json", "--interval", "0", "--cache", "--out", out}
	if code := execute(args); code != ExitSuccess {
		t.Fatalf("first run exit code = %d", code)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "cache", "chronicle"))
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("cache entries = %d, want 2", len(entries))
	}
}

func TestExecute_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad repo", []string{"not a repo"}},
		{"unknown branch", []string{"acme/widgets", "--branch", "nope", "--interval", "0"}},
		{"bad format", []string{"acme/widgets", "--format", "pdf"}},
		{"too many args", []string{"a/b", "c/d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			server := fakeGitHub(t)
			t.Setenv("GITHUB_API_URL", server.URL)

			out := filepath.Join(dir, "out.html")
			args := append(tt.args, "--out", out)
			if code := execute(args); code != ExitFailure {
				t.Errorf("exit code = %d, want %d", code, ExitFailure)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Error("no output file should be written on failure")
			}
		})
	}
}

func TestExecute_SuccessAfterFailure(t *testing.T) {
	isolate(t)
	if code := execute([]string{"not a repo"}); code != ExitFailure {
		t.Fatalf("exit code = %d, want %d", code, ExitFailure)
	}
	resetFlags()
	if code := execute([]string{"version"}); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
}
