package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dealscout/backend/config"
	httpDelivery "github.com/dealscout/backend/internal/delivery/http"
	"github.com/dealscout/backend/internal/infrastructure/scrape"
	"github.com/dealscout/backend/internal/infrastructure/store"
	"github.com/dealscout/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DealScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store: %s", cfg.Store.Path)

	// Initialize infrastructure dependencies
	ledger, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open price store: %v", err)
	}
	defer ledger.Close()

	scrapeCfg := scrape.Config{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   cfg.Scrape.Timeout,
		Delay:     cfg.Scrape.Delay,
		MaxItems:  cfg.Scrape.MaxItems,
		Limiter:   scrape.NewLimiter(cfg.Scrape.Delay),
		Debug:     cfg.Server.Environment == "development",
	}

	// Storefronts are enabled by explicit registration; query order is
	// registration order.
	registry := &scrape.Registry{}
	registry.Register(scrape.NewAmazon(scrapeCfg))
	registry.Register(scrape.NewNoon(scrapeCfg))
	registry.Register(scrape.NewCarrefour(scrapeCfg))

	for _, adapter := range registry.Adapters() {
		log.Printf("Registered source: %s", adapter.Name())
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		registry.Adapters(),
		ledger,
		usecase.SearchConfig{
			RelevanceThreshold: cfg.Matching.RelevanceThreshold,
			CriticalPhrases:    usecase.ParseCriticalPhrases(cfg.Matching.CriticalPhrases),
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: threshold=%.2f, critical_phrases=%d, debug=%v",
		cfg.Matching.RelevanceThreshold,
		len(cfg.Matching.CriticalPhrases),
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, ledger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
