package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonComparableRegex  = regexp.MustCompile(`[^a-z0-9\s-]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes free text for comparison: lowercase, runs of
// whitespace collapsed to single spaces, and every character removed that is
// not alphanumeric, whitespace, or a hyphen. Total: any input yields a
// (possibly empty) string.
func Normalize(text string) string {
	result := strings.ToLower(text)
	result = nonComparableRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// TextuallyEquivalent reports whether two texts name the same thing. Exact
// equality of the normalized forms wins; otherwise the forms are compared
// with spaces and hyphens squashed, so "JR-BP560S" and "JR BP560S" agree
// regardless of how a storefront spaces or hyphenates model numbers.
func TextuallyEquivalent(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)
	if na == nb {
		return true
	}
	return squash(na) == squash(nb)
}

var squasher = strings.NewReplacer(" ", "", "-", "")

func squash(s string) string {
	return squasher.Replace(s)
}
