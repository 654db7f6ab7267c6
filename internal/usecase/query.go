package usecase

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

// QueryPreprocessor cleans user queries before they reach the source
// adapters and derives reformulation hints for fruitless searches.
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// modelNumberPattern matches hyphenated model codes like "jr-bp560s" or
// "i7-1260p"; these are the strongest search keys a query can contain.
var modelNumberPattern = regexp.MustCompile(`\b[a-z0-9]+-[a-z0-9]+\b`)

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
	}
}

// PrepareQuery trims and whitespace-collapses a raw user query into the
// form sent to every storefront.
func (p *QueryPreprocessor) PrepareQuery(query string) string {
	cleaned := multipleSpacesRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	if p.enableDebugLogging && cleaned != query {
		log.Printf("[QUERY] Input: %q -> Output: %q", query, cleaned)
	}
	return cleaned
}

// ModelNumbers returns the hyphenated model codes found in a query, in
// order of appearance.
func (p *QueryPreprocessor) ModelNumbers(query string) []string {
	return modelNumberPattern.FindAllString(strings.ToLower(query), -1)
}

// Reformulations suggests narrower search variations for a query that
// matched nothing: the bare model number if one is present, and a shortened
// form of long queries.
func (p *QueryPreprocessor) Reformulations(query string) []string {
	var suggestions []string

	if models := p.ModelNumbers(query); len(models) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("model number only: %s", models[0]))
	}

	words := strings.Fields(query)
	if len(words) > 3 {
		suggestions = append(suggestions, fmt.Sprintf("shorter name: %s", strings.Join(words[:3], " ")))
	}

	suggestions = append(suggestions, "fewer, more basic terms")
	return suggestions
}
