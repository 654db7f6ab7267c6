package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/gocolly/colly/v2"

	"github.com/dealscout/backend/internal/domain"
)

// NoonAdapter searches Noon Egypt.
type NoonAdapter struct {
	cfg     Config
	baseURL string
}

// NewNoon creates the Noon Egypt adapter.
func NewNoon(cfg Config) *NoonAdapter {
	return &NoonAdapter{cfg: cfg, baseURL: "https://www.noon.com"}
}

func (n *NoonAdapter) Name() string { return "Noon Egypt" }

// FetchListings runs one search against the Noon product grid.
func (n *NoonAdapter) FetchListings(ctx context.Context, query string) ([]domain.Listing, error) {
	if err := n.cfg.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var listings []domain.Listing
	collector := n.cfg.newCollector()

	collector.OnHTML(`div[data-qa="product-item"], div.productContainer`, func(e *colly.HTMLElement) {
		if len(listings) >= n.cfg.MaxItems {
			return
		}

		name := firstChildText(e, `div[data-qa="product-name"]`, "div.name")
		price := firstChildText(e, `div[data-qa="price-box"] strong`, "span.price")
		href := e.ChildAttr(`a[href*="/egypt-en/"]`, "href")
		if name == "" || price == "" || href == "" {
			return
		}

		listings = append(listings, domain.Listing{
			RawName:  name,
			RawPrice: price,
			URL:      e.Request.AbsoluteURL(href),
		})
	})

	searchURL := fmt.Sprintf("%s/egypt-en/search?q=%s", n.baseURL, url.QueryEscape(query))
	if n.cfg.Debug {
		log.Printf("[SCRAPE] %s: visiting %s", n.Name(), searchURL)
	}

	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, n.Name(), err)
	}
	collector.Wait()

	return listings, nil
}
