package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/dealscout/backend/internal/domain"
)

// AmazonAdapter searches Amazon Egypt.
type AmazonAdapter struct {
	cfg     Config
	baseURL string
}

// NewAmazon creates the Amazon Egypt adapter.
func NewAmazon(cfg Config) *AmazonAdapter {
	return &AmazonAdapter{cfg: cfg, baseURL: "https://www.amazon.eg"}
}

func (a *AmazonAdapter) Name() string { return "Amazon Egypt" }

// FetchListings runs one search and extracts raw listings from the result
// grid. Listings missing a name, price or product link are skipped; judging
// price validity and relevance is the caller's job.
func (a *AmazonAdapter) FetchListings(ctx context.Context, query string) ([]domain.Listing, error) {
	if err := a.cfg.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var listings []domain.Listing
	collector := a.cfg.newCollector()

	collector.OnHTML("div.s-result-item", func(e *colly.HTMLElement) {
		if len(listings) >= a.cfg.MaxItems {
			return
		}
		if strings.Contains(e.Attr("class"), "AdHolder") {
			return
		}

		name := firstChildText(e, "h2 span.a-text-normal", ".a-size-medium.a-text-normal", ".a-size-base-plus")
		price := firstChildText(e, "span.a-price span.a-offscreen", "span.a-price .a-price-whole", ".a-price")
		href := e.ChildAttr(`a.a-link-normal[href*="/dp/"]`, "href")
		if name == "" || price == "" || href == "" {
			return
		}

		listings = append(listings, domain.Listing{
			RawName:  name,
			RawPrice: price,
			URL:      e.Request.AbsoluteURL(href),
		})
	})

	searchURL := fmt.Sprintf("%s/s?k=%s&language=en", a.baseURL, url.QueryEscape(query))
	if a.cfg.Debug {
		log.Printf("[SCRAPE] %s: visiting %s", a.Name(), searchURL)
	}

	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, a.Name(), err)
	}
	collector.Wait()

	return listings, nil
}

// firstChildText returns the first non-empty child text among the selectors.
// Storefront markup drifts; trying several known selectors keeps an adapter
// working across layout variants.
func firstChildText(e *colly.HTMLElement, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(e.ChildText(sel)); text != "" {
			return text
		}
	}
	return ""
}
