package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// defaultSpecPatterns match hardware specification fragments inside a single
// normalized token: storage/memory sizes, GPU models, CPU model codes, CPU
// generation markers and memory-technology generations.
var defaultSpecPatterns = []string{
	`\d+gb`,
	`\d+tb`,
	`rtx\s*\d+`,
	`gtx\s*\d+`,
	`i\d-\d+`,
	`\d+th`,
	`ddr\d`,
}

// SpecExtractor pulls canonical specification tokens out of normalized text.
// The pattern set is an open registry: new patterns can be added at any time
// without touching the scoring components that consume the tokens.
type SpecExtractor struct {
	patterns []*regexp.Regexp
}

// NewSpecExtractor creates an extractor with the default pattern registry.
func NewSpecExtractor() *SpecExtractor {
	e := &SpecExtractor{}
	for _, p := range defaultSpecPatterns {
		e.patterns = append(e.patterns, regexp.MustCompile(p))
	}
	return e
}

// Register adds a pattern to the registry.
func (e *SpecExtractor) Register(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.patterns = append(e.patterns, re)
	return nil
}

// Extract returns the specification tokens found in normalized,
// whitespace-separated text. Set semantics: duplicates collapsed, output
// sorted so repeated calls are deterministic.
func (e *SpecExtractor) Extract(normalizedText string) []string {
	seen := make(map[string]bool)
	for _, word := range strings.Fields(normalizedText) {
		for _, re := range e.patterns {
			if re.MatchString(word) {
				seen[word] = true
				break
			}
		}
	}

	specs := make([]string, 0, len(seen))
	for s := range seen {
		specs = append(specs, s)
	}
	sort.Strings(specs)
	return specs
}

// contains reports whether a spec token is present in a token set.
func contains(specs []string, spec string) bool {
	for _, s := range specs {
		if s == spec {
			return true
		}
	}
	return false
}
