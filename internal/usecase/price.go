package usecase

import (
	"strconv"
	"strings"
)

// ParsePrice converts a raw scraped price string into a numeric amount.
// It folds Arabic-Indic digits to their Latin equivalents, strips currency
// symbols and any other non-numeric characters, then disambiguates
// separators: when both "," and "." are present the comma is a thousands
// separator and is dropped; a lone comma is taken as the decimal point.
//
// The lone-comma rule is locale-ambiguous: a thousands-only price like
// "12,500" parses as 12.5. Known limitation, kept deliberately so stored
// history stays comparable across versions.
//
// The boolean is false when no number could be derived. Callers must treat
// a missing price as "exclude this offer", never as zero.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		// Arabic-Indic digits U+0660..U+0669
		if r >= '٠' && r <= '٩' {
			return '0' + (r - '٠')
		}
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)

	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
