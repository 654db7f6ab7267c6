package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/time/rate"
)

func testConfig() Config {
	return Config{
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
		MaxItems:  30,
		Limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

const amazonResultsHTML = `<html><body>
<div class="s-result-item">
  <h2><a class="a-link-normal" href="/Some-Product/dp/B0TEST1234"><span class="a-text-normal">Joyroom JR-BP560S Stylus Pen</span></a></h2>
  <span class="a-price"><span class="a-offscreen">450.00 EGP</span></span>
</div>
<div class="s-result-item AdHolder">
  <h2><a class="a-link-normal" href="/Ad/dp/B0SPONSORD"><span class="a-text-normal">Sponsored Thing</span></a></h2>
  <span class="a-price"><span class="a-offscreen">1.00 EGP</span></span>
</div>
<div class="s-result-item">
  <h2><span class="a-text-normal">No price or link here</span></h2>
</div>
</body></html>`

func TestAmazonAdapter_FetchListings(t *testing.T) {
	server := serveHTML(t, amazonResultsHTML)

	adapter := NewAmazon(testConfig())
	adapter.baseURL = server.URL

	listings, err := adapter.FetchListings(context.Background(), "joyroom stylus")
	require.NoError(t, err)
	require.Len(t, listings, 1, "ad and incomplete items must be skipped")

	assert.Equal(t, "Joyroom JR-BP560S Stylus Pen", listings[0].RawName)
	assert.Equal(t, "450.00 EGP", listings[0].RawPrice)
	assert.Contains(t, listings[0].URL, "/dp/B0TEST1234")
}

const noonResultsHTML = `<html><body>
<div data-qa="product-item">
  <a href="/egypt-en/some-product/p/"><div data-qa="product-name">Joyroom Stylus</div></a>
  <div data-qa="price-box"><strong>399 EGP</strong></div>
</div>
</body></html>`

func TestNoonAdapter_FetchListings(t *testing.T) {
	server := serveHTML(t, noonResultsHTML)

	adapter := NewNoon(testConfig())
	adapter.baseURL = server.URL

	listings, err := adapter.FetchListings(context.Background(), "joyroom stylus")
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, "Joyroom Stylus", listings[0].RawName)
	assert.Equal(t, "399 EGP", listings[0].RawPrice)
}

const carrefourResultsHTML = `<html><body>
<div class="product-item">
  <a href="/mafegy/en/p/12345"><span class="product-name">Joyroom Stylus Pen</span></a>
  <span class="price">420 EGP</span>
</div>
</body></html>`

func TestCarrefourAdapter_FetchListings(t *testing.T) {
	server := serveHTML(t, carrefourResultsHTML)

	adapter := NewCarrefour(testConfig())
	adapter.baseURL = server.URL

	listings, err := adapter.FetchListings(context.Background(), "joyroom stylus")
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, "Joyroom Stylus Pen", listings[0].RawName)
	assert.Equal(t, "420 EGP", listings[0].RawPrice)
}

func TestFetchListings_MaxItems(t *testing.T) {
	html := "<html><body>"
	for i := 0; i < 10; i++ {
		html += `<div class="product-item">
			<a href="/mafegy/en/p/1"><span class="product-name">Item</span></a>
			<span class="price">100 EGP</span></div>`
	}
	html += "</body></html>"
	server := serveHTML(t, html)

	cfg := testConfig()
	cfg.MaxItems = 3
	adapter := NewCarrefour(cfg)
	adapter.baseURL = server.URL

	listings, err := adapter.FetchListings(context.Background(), "item")
	require.NoError(t, err)
	assert.Len(t, listings, 3)
}

func TestFetchListings_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // immediately; connections will be refused

	adapter := NewAmazon(testConfig())
	adapter.baseURL = server.URL

	_, err := adapter.FetchListings(context.Background(), "anything")
	assert.Error(t, err, "an unreachable storefront must report, not panic")
}

func TestFetchListings_ContextCancelled(t *testing.T) {
	adapter := NewAmazon(Config{
		UserAgent: "test-agent",
		Timeout:   time.Second,
		MaxItems:  5,
		Limiter:   rate.NewLimiter(rate.Every(time.Hour), 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := adapter.FetchListings(ctx, "anything")
	assert.Error(t, err, "a cancelled context must stop the fetch at the limiter")
}

func TestRegistry(t *testing.T) {
	registry := &Registry{}
	registry.Register(NewAmazon(testConfig()))
	registry.Register(NewNoon(testConfig()))

	adapters := registry.Adapters()
	require.Len(t, adapters, 2)
	assert.Equal(t, "Amazon Egypt", adapters[0].Name(), "query order follows registration order")
	assert.Equal(t, "Noon Egypt", adapters[1].Name())
}
