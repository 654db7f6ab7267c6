package usecase

import (
	"sort"

	"github.com/dealscout/backend/internal/domain"
)

// Rank collects per-source offer lists into one list sorted ascending by
// price. Every offer handed in must already carry a parsed price and have
// passed the relevance gate. Ties are broken by source name, then by the
// offer's arrival order within its source, so output is deterministic and
// reproducible across runs.
//
// Within one source, offers whose names are textually equivalent are the
// same physical listing; only the cheapest survives. The same product on two
// different storefronts is two genuinely distinct purchase options and both
// are kept.
func Rank(offersBySource map[string][]domain.Offer) []domain.Offer {
	sources := make([]string, 0, len(offersBySource))
	for source := range offersBySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var ranked []domain.Offer
	for _, source := range sources {
		ranked = append(ranked, dedupeSource(offersBySource[source])...)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})

	return ranked
}

// dedupeSource keeps, for each set of textually equivalent names within one
// source, the cheapest offer, preserving first-arrival positions.
func dedupeSource(offers []domain.Offer) []domain.Offer {
	var kept []domain.Offer
	for _, offer := range offers {
		replaced := false
		for i, existing := range kept {
			if TextuallyEquivalent(existing.ProductName, offer.ProductName) {
				if offer.Price < existing.Price {
					kept[i] = offer
				}
				replaced = true
				break
			}
		}
		if !replaced {
			kept = append(kept, offer)
		}
	}
	return kept
}

// BestOverall returns the cheapest ranked offer. The boolean is false when
// the ranked list is empty, which is a normal outcome, not a failure.
func BestOverall(ranked []domain.Offer) (domain.Offer, bool) {
	if len(ranked) == 0 {
		return domain.Offer{}, false
	}
	return ranked[0], true
}

// BestPerSource returns the minimum-price offer for every distinct source
// present in the ranked list.
func BestPerSource(ranked []domain.Offer) map[string]domain.Offer {
	best := make(map[string]domain.Offer)
	for _, offer := range ranked {
		if existing, ok := best[offer.Source]; !ok || offer.Price < existing.Price {
			best[offer.Source] = offer
		}
	}
	return best
}
