// Package identify classifies free-text identifiers into Linear issues,
// GitHub pull requests, or custom branch names.
//
// Pure string and regex work, no I/O. Callers route on the returned Kind:
// Linear issues look like DOC-123 (2-4 letters, dash, digits), PRs are
// plain numbers, PR-123 style references, or full GitHub pull URLs, and
// everything else is treated as a custom branch name.
package identify

import (
	"regexp"
	"strings"
)

// Kind is the detected identifier type.
type Kind string

const (
	KindLinear Kind = "linear"
	KindPR     Kind = "pr"
	KindCustom Kind = "custom"
)

var (
	linearRe   = regexp.MustCompile(`(?i)^[A-Z]{2,4}-\d+$`)
	prRe       = regexp.MustCompile(`(?i)^(\d+|PR-\d+|https://github\.com/.*/pull/\d+)$`)
	digitRunRe = regexp.MustCompile(`\d+`)
)

// IsLinearIssue reports whether s matches the Linear issue pattern
// (e.g. DOC-123, ENG-456), case-insensitively. PR-123 is excluded:
// that prefix is reserved for pull request references.
func IsLinearIssue(s string) bool {
	if strings.HasPrefix(strings.ToUpper(s), "PR-") {
		return false
	}
	return linearRe.MatchString(s)
}

// IsPRNumber reports whether s is a GitHub PR reference: a plain number,
// a PR-123 / pr-456 style prefix, or a full GitHub pull request URL.
func IsPRNumber(s string) bool {
	return prRe.MatchString(s)
}

// ExtractPRNumber returns the first digit run in s, covering all accepted
// PR forms ("123", "PR-123", "https://github.com/o/r/pull/123").
// Returns the empty string if s contains no digits.
func ExtractPRNumber(s string) string {
	return digitRunRe.FindString(s)
}

// NormalizeLinearID lowercases an issue ID and replaces slashes with
// dashes, producing a stable, filesystem-safe prefix. Idempotent.
func NormalizeLinearID(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "/", "-")
}

// Detect classifies an identifier. Linear wins over PR; anything that is
// neither is a custom branch name.
func Detect(s string) Kind {
	if IsLinearIssue(s) {
		return KindLinear
	}
	if IsPRNumber(s) {
		return KindPR
	}
	return KindCustom
}
