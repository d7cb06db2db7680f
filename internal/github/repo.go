package github

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var (
	httpsRemoteRe = regexp.MustCompile(`^https?://[^/]+/([^/\s]+)/([^/\s]+?)/?$`)
	sshRemoteRe   = regexp.MustCompile(`^[^@\s]+@[^:\s]+:([^/\s]+)/([^/\s]+?)/?$`)
	shortSpecRe   = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)

	ownerRe = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)
	repoRe  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ParseRepoSpec extracts owner and repo from "owner/repo", an HTTPS remote URL
// or an SSH remote URL. A trailing ".git" is ignored.
func ParseRepoSpec(spec string) (owner, repo string, err error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return "", "", &InvalidArgumentError{Value: spec, Reason: "expected owner/repo"}
	}

	var m []string
	for _, re := range []*regexp.Regexp{httpsRemoteRe, sshRemoteRe, shortSpecRe} {
		if m = re.FindStringSubmatch(s); m != nil {
			break
		}
	}
	if m == nil {
		return "", "", &InvalidArgumentError{Value: spec, Reason: "expected owner/repo"}
	}

	owner = m[1]
	repo = strings.TrimSuffix(m[2], ".git")
	if !ownerRe.MatchString(owner) {
		return "", "", &InvalidArgumentError{Value: spec, Reason: fmt.Sprintf("bad owner name %q", owner)}
	}
	if !repoRe.MatchString(repo) || repo == "." || repo == ".." {
		return "", "", &InvalidArgumentError{Value: spec, Reason: fmt.Sprintf("bad repository name %q", repo)}
	}
	return owner, repo, nil
}

// DetectRepo parses owner/repo from the origin remote of the git checkout in
// dir. An empty dir means the current directory.
func DetectRepo(dir string) (owner, repo string, err error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRepoSpec(strings.TrimSpace(string(out)))
}
