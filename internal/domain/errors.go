package domain

import "errors"

var (
	// ErrInvalidQuery is returned when the search query is empty or malformed
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrNoOffers is returned when no record exists for a product name
	ErrNoOffers = errors.New("no offers recorded for product")

	// ErrStoreUnavailable is returned when the price ledger's backing store
	// cannot be reached or written
	ErrStoreUnavailable = errors.New("price store unavailable")

	// ErrSourceUnavailable is returned when a storefront cannot be fetched;
	// the search pipeline treats the source's contribution as empty
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
