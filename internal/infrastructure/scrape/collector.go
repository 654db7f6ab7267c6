// Package scrape implements the storefront source adapters. Each adapter
// runs one search against its storefront and emits raw (name, price, url)
// listings; everything that requires judgement about those listings lives
// in the usecase layer.
package scrape

import (
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/dealscout/backend/internal/domain"
)

// Config holds the shared fetch settings for all storefront adapters.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
	MaxItems  int

	// Limiter is shared across all adapters so sequential source fetches
	// stay polite regardless of how many storefronts are registered.
	Limiter *rate.Limiter

	Debug bool
}

// NewLimiter builds the shared politeness limiter from the configured
// per-request delay: one request per delay interval, small burst for the
// redirects a storefront search tends to involve.
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		delay = time.Second
	}
	return rate.NewLimiter(rate.Every(delay), 3)
}

func (c Config) newCollector() *colly.Collector {
	collector := colly.NewCollector(
		colly.UserAgent(c.UserAgent),
	)
	collector.SetRequestTimeout(c.Timeout)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       c.Delay,
		RandomDelay: c.Delay,
	})
	return collector
}

// Registry holds the storefront adapters enabled for searching. Sources are
// selected by explicit registration, never by name comparison downstream.
type Registry struct {
	adapters []domain.SourceAdapter
}

// Register adds an adapter. Registration order is the order sources are
// queried in.
func (r *Registry) Register(a domain.SourceAdapter) {
	r.adapters = append(r.adapters, a)
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []domain.SourceAdapter {
	return r.adapters
}
