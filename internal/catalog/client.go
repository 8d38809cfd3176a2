package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"quickfind/internal/domain"
)

var (
	lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickfind_catalog_request_seconds",
		Help:    "Latency of catalog API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "outcome"})
	droppedProducts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickfind_catalog_dropped_products_total",
		Help: "Products discarded because they failed validation",
	})
)

// ErrNotFound is returned by Product when the API has no such product
var ErrNotFound = errors.New("product not found")

// StatusError is returned for non-success HTTP responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

// Client talks to the QuickFind product API
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	validate *validator.Validate
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{Timeout: 10 * time.Second},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Search runs a product search. Products missing an id or title are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	u := c.baseURL.JoinPath("api", "search")
	u.RawQuery = url.Values{"q": {query}}.Encode()

	start := time.Now()
	body, err := c.get(ctx, u)
	if err != nil {
		lookupDuration.WithLabelValues("search", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}
	lookupDuration.WithLabelValues("search", "ok").Observe(time.Since(start).Seconds())

	products, err := decodeProducts(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	valid := products[:0]
	for _, p := range products {
		if err := c.validate.Struct(p); err != nil {
			droppedProducts.Inc()
			log.Printf("catalog: dropping invalid product %q: %v", p.ID, err)
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

// Product fetches the full detail of one product
func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, fmt.Errorf("product id is required")
	}
	u := c.baseURL.JoinPath("api", "product", url.PathEscape(id))

	start := time.Now()
	body, err := c.get(ctx, u)
	if err != nil {
		lookupDuration.WithLabelValues("product", "error").Observe(time.Since(start).Seconds())
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to fetch product %q: %w", id, err)
	}
	lookupDuration.WithLabelValues("product", "ok").Observe(time.Since(start).Seconds())

	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Product{}, fmt.Errorf("failed to decode product %q: %w", id, err)
	}
	if p.Title == "" {
		return domain.Product{}, ErrNotFound
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "quickfind")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return io.ReadAll(resp.Body)
}

// decodeProducts accepts a bare JSON array or an object with a products field
func decodeProducts(body []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Products []domain.Product `json:"products"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Products, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, err
	}
	return products, nil
}
