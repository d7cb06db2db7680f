package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

var secretPatterns = []*regexp.Regexp{
	// key/secret assignments with a long value
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret|client[_-]?secret)\s*[:=]\s*["']?[A-Za-z0-9/+=_-]{20,}["']?`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["'][^"']{8,}["']`),
	// AWS
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}["']?`),
	// bearer tokens and JWTs
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// PEM private keys
	regexp.MustCompile(`-----BEGIN\s+(?:[A-Z]+\s+)?PRIVATE KEY-----`),
	// vendor token prefixes
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
}

// Secrets replaces detected secrets in text with Placeholder. Line structure
// is preserved so diff prefixes stay intact.
func Secrets(text string) string {
	for _, pat := range secretPatterns {
		text = pat.ReplaceAllString(text, Placeholder)
	}
	return text
}

// MatchPath reports whether path matches any of the glob patterns. A "**/"
// prefix matches the base name at any depth.
func MatchPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		if base, found := strings.CutPrefix(pattern, "**/"); found {
			if ok, err := filepath.Match(base, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// Patch redacts a file's patch. When filename matches one of paths the whole
// patch is replaced; otherwise, if secrets is set, individual secrets are.
func Patch(patch, filename string, secrets bool, paths []string) string {
	if MatchPath(filename, paths) {
		return "@@ " + Placeholder + " @@\n " + Placeholder + " (patch withheld by path policy)"
	}
	if secrets {
		return Secrets(patch)
	}
	return patch
}
