package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestSearch(t *testing.T) {
	var gotQuery, gotRequestID string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotRequestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode([]domain.Product{
			{ID: "1", Title: "iPhone 13 Pro Max", StoreName: "Apple", Price: "$1,099.00"},
			{ID: "", Title: "no id", StoreName: "Apple"},
			{ID: "2", Title: "Galaxy S22", StoreName: "Samsung", Price: "$799.99"},
		})
	})

	products, err := c.Search(context.Background(), "phone & case")
	require.NoError(t, err)

	assert.Equal(t, "phone & case", gotQuery)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
}

func TestSearchAcceptsWrappedResponse(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"7","title":"Watch","storeName":"Casio"}],"totalCount":1,"query":"watch"}`))
	})

	products, err := c.Search(context.Background(), "watch")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Casio", products[0].StoreName)
}

func TestSearchNonSuccessStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Failed to retrieve products", http.StatusInternalServerError)
	})

	_, err := c.Search(context.Background(), "tv")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "Failed to retrieve products", se.Body)
}

func TestSearchMalformedBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	_, err := c.Search(context.Background(), "tv")
	assert.ErrorContains(t, err, "failed to decode")
}

func TestSearchHonorsContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProduct(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/B09G9FPHY6", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Product{
			ID:                  "B09G9FPHY6",
			Title:               "Apple iPhone 13 Pro Max",
			StoreName:           "Amazon",
			DetailedDescription: "6.7-inch Super Retina XDR display",
		})
	})

	p, err := c.Product(context.Background(), "B09G9FPHY6")
	require.NoError(t, err)
	assert.Equal(t, "Apple iPhone 13 Pro Max", p.Title)
	assert.Equal(t, "6.7-inch Super Retina XDR display", p.DetailedDescription)
}

func TestProductEscapesID(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/a%2Fb", r.URL.EscapedPath())
		w.Write([]byte(`{"title":"Slash"}`))
	})

	p, err := c.Product(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", p.ID)
}

func TestProductNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"404", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Product not found", http.StatusNotFound)
		}},
		{"empty title", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"x","title":""}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.handler)
			_, err := c.Product(context.Background(), "x")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestProductRequiresID(t *testing.T) {
	c, err := NewClient("http://localhost:8080")
	require.NoError(t, err)

	_, err = c.Product(context.Background(), "  ")
	assert.Error(t, err)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("localhost:8080")
	assert.Error(t, err)

	c, err := NewClient("https://api.example.com/v1/", WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", c.BaseURL())
}
