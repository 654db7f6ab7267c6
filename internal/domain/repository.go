package domain

import "context"

// SourceAdapter is the boundary to one storefront. FetchListings runs one
// search and returns whatever raw listings it could extract; a failing
// source returns an error and the caller proceeds with the other sources.
type SourceAdapter interface {
	Name() string
	FetchListings(ctx context.Context, query string) ([]Listing, error)
}

// Ledger is the persistence boundary for price history. It keeps two views
// over the same store: an append-style log of raw observations (one row per
// product/source pair) and a single best-price record per product name.
type Ledger interface {
	// RecordObservation upserts one observed offer into the raw log.
	RecordObservation(ctx context.Context, offer Offer) error

	// RecordIfBetter replaces the best-price record for the offer's name
	// only when no record exists or the stored price is strictly greater.
	// Reports whether the record was updated.
	RecordIfBetter(ctx context.Context, offer Offer) (bool, error)

	// BestPrice returns the best-price record for a name, or ErrNoOffers.
	BestPrice(ctx context.Context, name string) (*BestPriceRecord, error)

	// Summary aggregates MIN and AVG price per product name over the full
	// observation log, most recently first-seen products first.
	Summary(ctx context.Context) ([]ProductSummary, error)

	// Clear irreversibly deletes all persisted history. Confirmation is the
	// caller's responsibility.
	Clear(ctx context.Context) error
}
