package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxPages bounds ListAllProducts against a backend that never reports a last page
const maxPages = 200

// Client reads product listings from the storefront REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a storefront HTTP client
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// GetProductsPage fetches one page of GET /api/products and returns the raw body
func (c *Client) GetProductsPage(ctx context.Context, page int) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("storefront client not configured: base URL required")
	}
	u, err := url.Parse(c.baseURL + "/api/products")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Storefront products request failed", zap.Error(err), zap.Int("page", page))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("storefront returned %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// ListAllProducts walks every page of the product listing
func (c *Client) ListAllProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	for page := 1; page <= maxPages; page++ {
		body, err := c.GetProductsPage(ctx, page)
		if err != nil {
			return nil, err
		}
		resp, err := ParseProductsPage(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse products page %d: %w", page, err)
		}
		all = append(all, resp.Products()...)
		if !resp.HasNextPage() {
			return all, nil
		}
	}
	c.logger.Warn("Storefront listing truncated", zap.Int("max_pages", maxPages))
	return all, nil
}

// ProductsResponse is the storefront envelope: { data: { data: [...], paging fields } }
type ProductsResponse struct {
	Data ProductsPage `json:"data"`
}

type ProductsPage struct {
	Data        []map[string]interface{} `json:"data"`
	CurrentPage int                      `json:"current_page"`
	LastPage    int                      `json:"last_page"`
	PerPage     int                      `json:"per_page"`
	Total       int                      `json:"total"`
}

// Product is the subset of a storefront product the catalog cares about
type Product struct {
	Slug  string
	Title string
}

// ParseProductsPage parses raw JSON into the paginated envelope
func ParseProductsPage(raw []byte) (*ProductsResponse, error) {
	var out ProductsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HasNextPage reports whether another page follows this one
func (r *ProductsResponse) HasNextPage() bool {
	return r.Data.CurrentPage > 0 && r.Data.CurrentPage < r.Data.LastPage
}

// Products extracts slug and title from each product node; nodes without a slug are dropped
func (r *ProductsResponse) Products() []Product {
	out := make([]Product, 0, len(r.Data.Data))
	for _, node := range r.Data.Data {
		slug := getStr(node, "slug")
		if slug == "" {
			continue
		}
		title := getStr(node, "name")
		if title == "" {
			title = getStr(node, "title")
		}
		out = append(out, Product{Slug: slug, Title: title})
	}
	return out
}

func getStr(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
