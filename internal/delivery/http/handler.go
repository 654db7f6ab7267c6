package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/usecase"
)

// Searcher runs one product search across all registered sources.
type Searcher interface {
	Search(ctx context.Context, request *usecase.SearchRequest) (*usecase.SearchResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search Searcher
	ledger domain.Ledger
}

// NewHandler creates a new HTTP handler
func NewHandler(search Searcher, ledger domain.Ledger) *Handler {
	return &Handler{
		search: search,
		ledger: ledger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dealscout-backend",
		"version": "1.0.0",
	})
}

// SearchOffers handles product search requests
func (h *Handler) SearchOffers(c *gin.Context) {
	var request usecase.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.search.Search(c.Request.Context(), &request)
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrStoreUnavailable):
		// Results exist, only persistence failed; return them with a warning
		// so the client can still act on the comparison.
		c.JSON(http.StatusOK, gin.H{
			"result":  result,
			"warning": "price history could not be saved",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	if len(result.Offers) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"result":      result,
			"message":     "no matching products found",
			"suggestions": result.Suggestions,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// PriceHistory returns the MIN/AVG summary of the full observation history
func (h *Handler) PriceHistory(c *gin.Context) {
	summaries, err := h.ledger.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrStoreUnavailable.Error()})
		return
	}
	if summaries == nil {
		summaries = []domain.ProductSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"history": summaries})
}

// ClearHistory irreversibly deletes all persisted history. The ledger does
// not enforce confirmation, so this boundary does.
func (h *Handler) ClearHistory(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required: pass confirm=true"})
		return
	}

	if err := h.ledger.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrStoreUnavailable.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
