package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/gocolly/colly/v2"

	"github.com/dealscout/backend/internal/domain"
)

// CarrefourAdapter searches Carrefour Egypt.
type CarrefourAdapter struct {
	cfg     Config
	baseURL string
}

// NewCarrefour creates the Carrefour Egypt adapter.
func NewCarrefour(cfg Config) *CarrefourAdapter {
	return &CarrefourAdapter{cfg: cfg, baseURL: "https://www.carrefouregypt.com"}
}

func (c *CarrefourAdapter) Name() string { return "Carrefour Egypt" }

// FetchListings runs one search against the Carrefour product grid.
func (c *CarrefourAdapter) FetchListings(ctx context.Context, query string) ([]domain.Listing, error) {
	if err := c.cfg.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var listings []domain.Listing
	collector := c.cfg.newCollector()

	collector.OnHTML("div.product-item, div.product_grid_item", func(e *colly.HTMLElement) {
		if len(listings) >= c.cfg.MaxItems {
			return
		}

		name := firstChildText(e, ".product-name", ".name")
		price := firstChildText(e, ".price", ".product-price")
		href := e.ChildAttr(`a[href*="/p/"]`, "href")
		if name == "" || price == "" || href == "" {
			return
		}

		listings = append(listings, domain.Listing{
			RawName:  name,
			RawPrice: price,
			URL:      e.Request.AbsoluteURL(href),
		})
	})

	searchURL := fmt.Sprintf("%s/mafegy/en/search?q=%s", c.baseURL, url.QueryEscape(query))
	if c.cfg.Debug {
		log.Printf("[SCRAPE] %s: visiting %s", c.Name(), searchURL)
	}

	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, c.Name(), err)
	}
	collector.Wait()

	return listings, nil
}
