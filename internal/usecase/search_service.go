package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dealscout/backend/internal/domain"
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	RelevanceThreshold float64
	CriticalPhrases    map[string][]string
	EnableDebugLogging bool
}

// SearchRequest is one product search. PaidPrice is what the user already
// paid, if anything; zero means not provided.
type SearchRequest struct {
	Query     string  `json:"query" binding:"required"`
	PaidPrice float64 `json:"paidPrice,omitempty"`
}

// SearchResult is the plain-data answer to one search: the full ranked
// offer list plus the derived best-deal views. Savings is only set when the
// user supplied a paid price higher than the best offer. Suggestions is only
// set when nothing matched.
type SearchResult struct {
	Offers        []domain.Offer          `json:"offers"`
	Best          *domain.Offer           `json:"best,omitempty"`
	BestPerSource map[string]domain.Offer `json:"bestPerSource,omitempty"`
	Savings       float64                 `json:"savings,omitempty"`
	Suggestions   []string                `json:"suggestions,omitempty"`
}

// SearchService drives one query through the pipeline: each registered
// source adapter in sequence, raw listings through the price parser and the
// relevance gate, survivors ranked, results persisted to the ledger.
type SearchService struct {
	adapters           []domain.SourceAdapter
	ledger             domain.Ledger
	matcher            *MatchingService
	preprocessor       *QueryPreprocessor
	enableDebugLogging bool
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	adapters []domain.SourceAdapter,
	ledger domain.Ledger,
	config SearchConfig,
) *SearchService {
	matcher := NewMatchingService(MatchConfig{
		RelevanceThreshold: config.RelevanceThreshold,
		CriticalPhrases:    config.CriticalPhrases,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	return &SearchService{
		adapters:           adapters,
		ledger:             ledger,
		matcher:            matcher,
		preprocessor:       NewQueryPreprocessor(config.EnableDebugLogging),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search runs one product search across all registered sources.
// A failing source contributes an empty list and the search continues; an
// empty result is a normal outcome answered with reformulation hints. When
// the ledger cannot be written the in-memory result is still returned,
// together with an error wrapping domain.ErrStoreUnavailable so the caller
// can decide whether partial persistence matters to it.
func (s *SearchService) Search(ctx context.Context, request *SearchRequest) (*SearchResult, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	query := s.preprocessor.PrepareQuery(request.Query)
	terms := strings.Fields(strings.ToLower(query))

	offersBySource := make(map[string][]domain.Offer)
	for _, adapter := range s.adapters {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		listings, err := adapter.FetchListings(ctx, query)
		if err != nil {
			// Partial-failure tolerance: one broken storefront must never
			// abort the whole comparison.
			log.Printf("[SEARCH] %s failed, continuing without it: %v", adapter.Name(), err)
			continue
		}

		offersBySource[adapter.Name()] = s.collectOffers(adapter.Name(), listings, terms)
	}

	ranked := Rank(offersBySource)
	if len(ranked) == 0 {
		return &SearchResult{
			Offers:      []domain.Offer{},
			Suggestions: s.preprocessor.Reformulations(query),
		}, nil
	}

	result := &SearchResult{
		Offers:        ranked,
		BestPerSource: BestPerSource(ranked),
	}

	best, _ := BestOverall(ranked)
	result.Best = &best

	if request.PaidPrice > best.Price {
		result.Savings = request.PaidPrice - best.Price
	}

	if err := s.persist(ctx, ranked, best); err != nil {
		return result, err
	}
	return result, nil
}

// collectOffers turns one source's raw listings into offers: listings with
// an unparseable price or failing the relevance gate are excluded.
func (s *SearchService) collectOffers(source string, listings []domain.Listing, terms []string) []domain.Offer {
	var offers []domain.Offer
	for _, listing := range listings {
		price, ok := ParsePrice(listing.RawPrice)
		if !ok {
			if s.enableDebugLogging {
				log.Printf("[SEARCH] %s: unparseable price %q for %q", source, listing.RawPrice, listing.RawName)
			}
			continue
		}
		if !s.matcher.IsRelevant(listing.RawName, terms) {
			continue
		}
		offers = append(offers, domain.Offer{
			ProductName: listing.RawName,
			Price:       price,
			Source:      source,
			URL:         listing.URL,
			ObservedAt:  time.Now().UTC(),
		})
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %s: %d of %d listings kept", source, len(offers), len(listings))
	}
	return offers
}

// persist records every ranked offer in the observation log and pushes the
// best one through the ledger's compare-and-update.
func (s *SearchService) persist(ctx context.Context, ranked []domain.Offer, best domain.Offer) error {
	for _, offer := range ranked {
		if err := s.ledger.RecordObservation(ctx, offer); err != nil {
			return fmt.Errorf("recording observation: %w", err)
		}
	}

	updated, err := s.ledger.RecordIfBetter(ctx, best)
	if err != nil {
		return fmt.Errorf("recording best price: %w", err)
	}
	if updated && s.enableDebugLogging {
		log.Printf("[SEARCH] New best price for %q: %.2f at %s", best.ProductName, best.Price, best.Source)
	}
	return nil
}
