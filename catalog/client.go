// Package catalog fetches products and categories from the remote catalog
// service, or from a static local seed file.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phanto-shop/storefront/models"
)

// Filter narrows a product listing.
type Filter struct {
	Category string
}

// Source is what the presentation layer consumes; it is satisfied by the
// remote Client and by StaticSource.
type Source interface {
	ListProducts(ctx context.Context, filter Filter) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// RemoteError reports a failed catalog request: either a non-success HTTP
// status or a transport failure. Requests are not retried.
type RemoteError struct {
	Status int
	URL    string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("catalog request %s returned status %d", e.URL, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client is a thin proxy over the catalog API: one HTTP GET per call, a
// context on every request and a hard client timeout as the only failure
// policy.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// listResponse covers both payload shapes the API serves: an object wrapping
// a results array, or the bare array itself.
type listResponse[T any] struct {
	Results []T `json:"results"`
}

// ListProducts fetches /api/products/, optionally filtered by category slug.
func (c *Client) ListProducts(ctx context.Context, filter Filter) ([]models.Product, error) {
	endpoint := c.baseURL + "/api/products/"
	if filter.Category != "" {
		endpoint += "?category=" + url.QueryEscape(filter.Category)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp listResponse[models.Product]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RemoteError{URL: endpoint, Err: fmt.Errorf("decode products: %w", err)}
	}
	return resp.Results, nil
}

// ListCategories fetches /api/products/categories/. The endpoint has served
// both `{results: [...]}` and a bare array; both decode.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	endpoint := c.baseURL + "/api/products/categories/"

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp listResponse[models.Category]
	if err := json.Unmarshal(body, &resp); err == nil && resp.Results != nil {
		return resp.Results, nil
	}

	var categories []models.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, &RemoteError{URL: endpoint, Err: fmt.Errorf("decode categories: %w", err)}
	}
	return categories, nil
}

// ImageURL resolves a server-provided relative image path against the
// configured base URL. Absolute URLs pass through untouched.
func (c *Client) ImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &RemoteError{URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Status: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{URL: endpoint, Err: err}
	}
	return body, nil
}
