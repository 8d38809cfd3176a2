package favorites

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/domain"
)

func product(id, store string) domain.Product {
	return domain.Product{ID: id, Title: "Product " + id, StoreName: store, Price: "$10.00"}
}

func listIDs(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSetUpsertReplacesByID(t *testing.T) {
	s := NewSet(product("1", "Nike"), product("2", "Sony"))

	updated := product("1", "Nike")
	updated.Price = "$8.00"
	s.Upsert(updated)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"1", "2"}, listIDs(s.List()))
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "$8.00", got.Price)
}

func TestSetRemoveAbsentIsNoop(t *testing.T) {
	s := NewSet(product("1", "Nike"))

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, []string{"1"}, listIDs(s.List()))
}

func TestSetToggleTwiceRestores(t *testing.T) {
	s := NewSet(product("1", "Nike"), product("2", "Sony"))
	before := s.List()

	assert.True(t, s.Toggle(product("3", "Apple")))
	assert.True(t, s.Contains("3"))
	assert.False(t, s.Toggle(product("3", "Apple")))

	assert.Equal(t, before, s.List())
}

func TestSetStoresAndFilter(t *testing.T) {
	s := NewSet(product("1", "Nike"), product("2", "Sony"), product("3", "Nike"))

	assert.Equal(t, []string{"Nike", "Sony"}, s.Stores())
	assert.Equal(t, []string{"1", "3"}, listIDs(s.FilterByStore("Nike")))
	assert.Equal(t, []string{"1", "2", "3"}, listIDs(s.FilterByStore(AllStores)))
	assert.Empty(t, s.FilterByStore("Dell"))
}

func TestSetJSONCollapsesDuplicates(t *testing.T) {
	blob := `[{"id":"1","title":"a","storeName":"Nike"},{"id":"2","title":"b","storeName":"Sony"},{"id":"1","title":"c","storeName":"Nike"}]`

	s := NewSet()
	require.NoError(t, json.Unmarshal([]byte(blob), s))

	assert.Equal(t, []string{"1", "2"}, listIDs(s.List()))
	got, _ := s.Get("1")
	assert.Equal(t, "c", got.Title)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"c","storeName":"Nike"},{"id":"2","title":"b","storeName":"Sony"}]`, string(out))
}
