package usecase

import (
	"log"
	"strings"
)

// defaultRelevanceThreshold is the minimum fraction of query terms that must
// appear in an offer name for the offer to pass the relevance gate. A tuned
// heuristic, not a derived value; override via MatchConfig.
const defaultRelevanceThreshold = 0.4

// defaultCriticalPhrases maps a multi-word phrase that may appear in a query
// to the words that must all literally appear in an offer name before the
// fractional check even runs. Guards high-ambiguity brand lines where plain
// keyword overlap accepts accessories and lookalikes.
var defaultCriticalPhrases = map[string][]string{
	"lenovo legion": {"lenovo", "legion", "laptop"},
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	RelevanceThreshold float64
	CriticalPhrases    map[string][]string
	EnableDebugLogging bool
}

// MatchingService decides whether a scraped listing refers to the product
// being searched for, and scores how closely it matches.
type MatchingService struct {
	relevanceThreshold float64
	criticalPhrases    map[string][]string
	specs              *SpecExtractor
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	threshold := config.RelevanceThreshold
	if threshold <= 0 {
		threshold = defaultRelevanceThreshold
	}

	phrases := config.CriticalPhrases
	if phrases == nil {
		phrases = defaultCriticalPhrases
	}

	return &MatchingService{
		relevanceThreshold: threshold,
		criticalPhrases:    phrases,
		specs:              NewSpecExtractor(),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// IsRelevant is the boolean accept/reject gate applied before an offer is
// eligible for ranking. If the whole query contains a known critical phrase,
// every required word of that phrase must appear in the offer name or the
// offer is rejected outright. Otherwise the offer passes when at least the
// configured fraction of query terms appear as substrings of its name.
// Never fails: ill-formed input degrades to "not relevant".
func (s *MatchingService) IsRelevant(offerName string, queryTerms []string) bool {
	if offerName == "" || len(queryTerms) == 0 {
		return false
	}

	name := strings.ToLower(offerName)
	query := strings.ToLower(strings.Join(queryTerms, " "))

	for phrase, required := range s.criticalPhrases {
		if !strings.Contains(query, phrase) {
			continue
		}
		for _, word := range required {
			if !strings.Contains(name, word) {
				if s.enableDebugLogging {
					log.Printf("[MATCH] Rejected %q: critical word %q missing", offerName, word)
				}
				return false
			}
		}
	}

	matches := 0
	for _, term := range queryTerms {
		if strings.Contains(name, strings.ToLower(term)) {
			matches++
		}
	}
	fraction := float64(matches) / float64(len(queryTerms))

	if s.enableDebugLogging {
		log.Printf("[MATCH] %q: %d/%d query terms present (%.2f)", offerName, matches, len(queryTerms), fraction)
	}

	return fraction >= s.relevanceThreshold
}

// MatchScore computes a fine-grained relevance signal in [0,1]: the fraction
// of the query's specification tokens that also appear in the offer name.
// Useful for breaking ties among offers that all passed the relevance gate.
func (s *MatchingService) MatchScore(offerName, query string) float64 {
	if offerName == "" || query == "" {
		return 0
	}

	querySpecs := s.specs.Extract(Normalize(query))
	offerSpecs := s.specs.Extract(Normalize(offerName))

	matched := 0
	for _, spec := range querySpecs {
		if contains(offerSpecs, spec) {
			matched++
		}
	}

	total := len(querySpecs)
	if total == 0 {
		total = 1
	}
	return float64(matched) / float64(total)
}

// ParseCriticalPhrases decodes "phrase:word1,word2" entries from flat
// configuration into the phrase table used by the relevance gate.
// Malformed entries are skipped.
func ParseCriticalPhrases(entries []string) map[string][]string {
	phrases := make(map[string][]string)
	for _, entry := range entries {
		phrase, words, ok := strings.Cut(entry, ":")
		phrase = strings.TrimSpace(strings.ToLower(phrase))
		if !ok || phrase == "" {
			continue
		}
		var required []string
		for _, w := range strings.Split(words, ",") {
			if w = strings.TrimSpace(strings.ToLower(w)); w != "" {
				required = append(required, w)
			}
		}
		if len(required) > 0 {
			phrases[phrase] = required
		}
	}
	if len(phrases) == 0 {
		return nil
	}
	return phrases
}
