package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pricepeek/backend/internal/domain"
	"github.com/pricepeek/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisonService *usecase.ComparisonService
}

// NewHandler creates a new HTTP handler
func NewHandler(comparisonService *usecase.ComparisonService) *Handler {
	return &Handler{comparisonService: comparisonService}
}

// compareResponse is the JSON shape for all comparison endpoints.
type compareResponse struct {
	Count    int                    `json:"count"`
	Rows     []domain.ComparisonRow `json:"rows"`
	Cheapest *cheapestSummary       `json:"cheapest,omitempty"`
}

// cheapestSummary highlights the overall best deal, mirroring the
// storefront's stat card. Prices are formatted for display here; the rows
// themselves keep full precision.
type cheapestSummary struct {
	Name    string `json:"name"`
	Store   string `json:"store"`
	Price   string `json:"price"`
	Savings string `json:"savings,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricepeek-backend",
		"version": "1.0.0",
	})
}

// CompareSearch handles GET /api/v1/compare?q=<term>
func (h *Handler) CompareSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	rows, err := h.comparisonService.CompareSearch(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCompareResponse(rows))
}

// CompareSKU handles GET /api/v1/compare/sku/:sku
func (h *Handler) CompareSKU(c *gin.Context) {
	rows, err := h.comparisonService.CompareSKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCompareResponse(rows))
}

// CompareBatch handles GET /api/v1/compare/batch?skus=a,b,c
func (h *Handler) CompareBatch(c *gin.Context) {
	var skus []string
	for _, sku := range strings.Split(c.Query("skus"), ",") {
		if sku = strings.TrimSpace(sku); sku != "" {
			skus = append(skus, sku)
		}
	}
	if len(skus) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'skus' is required"})
		return
	}

	rows, err := h.comparisonService.CompareSKUs(c.Request.Context(), skus)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCompareResponse(rows))
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoComparableOffers), errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// buildCompareResponse wraps rows with the count and best-deal summary.
func buildCompareResponse(rows []domain.ComparisonRow) compareResponse {
	resp := compareResponse{
		Count: len(rows),
		Rows:  rows,
	}
	if len(rows) == 0 {
		return resp
	}

	// Rows arrive sorted cheapest first, so the summary comes from the head.
	top := rows[0]
	if top.Best == nil {
		return resp
	}

	summary := &cheapestSummary{
		Name:  top.Product.Name,
		Store: usecase.StoreLabel(top.Best.Store),
		Price: domain.FormatMoney(top.Best.Price, top.Currency),
	}
	if top.Savings != nil {
		summary.Savings = domain.FormatMoney(*top.Savings, top.Currency)
	}
	resp.Cheapest = summary
	return resp
}
