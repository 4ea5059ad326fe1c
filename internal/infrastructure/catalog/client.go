package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pricepeek/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the upstream catalog REST API that
// serves scraped products and price observations.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The catalog shares infrastructure with the storefront; stay polite.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// exponentialBackoff returns the wait duration before retry attempt n.
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PricePeek/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// getJSON fetches a URL with rate limiting and up to three attempts,
// retrying transient failures with exponential backoff. A 404 maps to
// ErrProductNotFound and is never retried.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if !sleepCtx(ctx, exponentialBackoff(attempt)) {
				return ctx.Err()
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if !sleepCtx(ctx, exponentialBackoff(attempt)) {
				return ctx.Err()
			}
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

// sleepCtx waits for d or until the context is done; returns false on cancel.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// SearchProducts searches the catalog by free-text term. An empty result is
// a valid outcome, not an error.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if c.debug {
		log.Printf("[CATALOG] SearchProducts called with query: %q", query)
	}

	params := url.Values{}
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s/products?%s", c.baseURL, params.Encode())

	var wires []wireProduct
	if err := c.getJSON(ctx, reqURL, &wires); err != nil {
		return nil, err
	}

	if c.debug {
		log.Printf("[CATALOG] Found %d products for query: %q", len(wires), query)
	}
	return mapProducts(wires), nil
}

// GetProduct retrieves a single catalog product by SKU.
func (c *Client) GetProduct(ctx context.Context, sku string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(sku))

	var wire wireProduct
	if err := c.getJSON(ctx, reqURL, &wire); err != nil {
		return nil, err
	}

	product := mapProduct(wire)
	return &product, nil
}

// GetProductPrices retrieves the latest per-retailer price observations for
// a catalog product.
func (c *Client) GetProductPrices(ctx context.Context, sku string) ([]domain.RawOffer, error) {
	reqURL := fmt.Sprintf("%s/products/%s/prices", c.baseURL, url.PathEscape(sku))

	var raw json.RawMessage
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, err
	}

	offers := mapOffers(raw)
	if c.debug {
		log.Printf("[CATALOG] Found %d offers for SKU: %q", len(offers), sku)
	}
	return offers, nil
}
