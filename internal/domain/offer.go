package domain

import "time"

// Listing is a raw scraped item as emitted by a source adapter,
// before price parsing and relevance filtering.
type Listing struct {
	RawName  string
	RawPrice string
	URL      string
}

// Offer is a priced listing that passed the relevance gate.
// Immutable after creation; the price is in the storefront's local currency.
type Offer struct {
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Source      string    `json:"source"` // e.g. "Amazon Egypt"
	URL         string    `json:"url"`
	ObservedAt  time.Time `json:"observedAt"`
}

// BestPriceRecord is the durable record of the lowest price ever observed
// for a product name. At most one record per name; its price only decreases.
type BestPriceRecord struct {
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Source     string    `json:"source"`
	URL        string    `json:"url"`
	ObservedAt time.Time `json:"observedAt"`
}

// ProductSummary aggregates the full observation history for one product name.
type ProductSummary struct {
	Name     string  `json:"name"`
	MinPrice float64 `json:"minPrice"`
	AvgPrice float64 `json:"avgPrice"`
}
