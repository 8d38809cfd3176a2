//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Product mirrors the catalog wire format
type Product struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Image               string `json:"image,omitempty"`
	StoreName           string `json:"storeName"`
	Price               string `json:"price,omitempty"`
	Rating              string `json:"rating,omitempty"`
	ReviewCount         string `json:"reviewCount,omitempty"`
	DetailedDescription string `json:"detailedDescription,omitempty"`
}

// DefaultCatalog is what the fake API serves unless a test replaces it
var DefaultCatalog = []Product{
	{ID: "101", Title: "Trail Runner 2", StoreName: "Nike", Price: "$129.99", Rating: "4.6", ReviewCount: "812",
		Image: "/api/placeholder/300/300", DetailedDescription: "Lightweight trail shoe with a rock plate."},
	{ID: "102", Title: "Cloud Walker", StoreName: "Adidas", Price: "$89.00", Rating: "4.2", ReviewCount: "301"},
	{ID: "103", Title: "Budget Sneaker", StoreName: "Walmart", Price: "$24.50", Rating: "3.8"},
	{ID: "104", Title: "Marathon Pro", StoreName: "Nike", Price: "$210.00", Rating: "4.9", ReviewCount: "95"},
	{ID: "105", Title: "Canvas Classic", StoreName: "Target", Price: "$45.00"},
	{ID: "201", Title: "Noise Cancelling Headphones", StoreName: "Best Buy", Price: "$349.99", Rating: "4.7"},
}

// CatalogServer is a fake product API matching titles case-insensitively
type CatalogServer struct {
	srv *httptest.Server

	mu       sync.Mutex
	products []Product
	queries  []string
	failing  bool
}

// NewCatalogServer starts a fake catalog that stops with the test
func NewCatalogServer(t *testing.T) *CatalogServer {
	c := &CatalogServer{products: DefaultCatalog}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", c.handleSearch)
	mux.HandleFunc("/api/product/", c.handleProduct)
	c.srv = httptest.NewServer(mux)
	t.Cleanup(c.srv.Close)
	return c
}

// URL is the base URL to pass to --api-url
func (c *CatalogServer) URL() string {
	return c.srv.URL
}

// SetFailing makes every request answer 503
func (c *CatalogServer) SetFailing(failing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failing = failing
}

// Queries returns the search terms received so far
func (c *CatalogServer) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *CatalogServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := r.URL.Query().Get("q")
	c.queries = append(c.queries, q)
	if c.failing {
		http.Error(w, "catalog down", http.StatusServiceUnavailable)
		return
	}

	terms := strings.Fields(strings.ToLower(q))
	matches := []Product{}
	for _, p := range c.products {
		title := strings.ToLower(p.Title + " " + p.StoreName + " shoes")
		for _, term := range terms {
			if strings.Contains(title, term) {
				matches = append(matches, p)
				break
			}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"products": matches})
}

func (c *CatalogServer) handleProduct(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failing {
		http.Error(w, "catalog down", http.StatusServiceUnavailable)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/product/")
	for _, p := range c.products {
		if p.ID == id {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(p)
			return
		}
	}
	http.NotFound(w, r)
}

// CreateTestWorkspace creates the temporary home for config and favorites
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}
