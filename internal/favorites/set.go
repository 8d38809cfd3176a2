package favorites

import (
	"encoding/json"

	"quickfind/internal/domain"
)

// Set is an insertion-ordered set of products keyed by product id
type Set struct {
	order []string
	items map[string]domain.Product
}

// NewSet builds a set from products; later duplicates replace earlier ones in place
func NewSet(products ...domain.Product) *Set {
	s := &Set{items: make(map[string]domain.Product)}
	for _, p := range products {
		s.Upsert(p)
	}
	return s
}

// Len returns the number of members
func (s *Set) Len() int {
	return len(s.order)
}

// Contains reports whether a product with id is a member
func (s *Set) Contains(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Get returns the member with id
func (s *Set) Get(id string) (domain.Product, bool) {
	p, ok := s.items[id]
	return p, ok
}

// Upsert adds p or replaces the member with the same id, keeping its position
func (s *Set) Upsert(p domain.Product) {
	if s.items == nil {
		s.items = make(map[string]domain.Product)
	}
	if _, ok := s.items[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.items[p.ID] = p
}

// Remove deletes the member with id; it reports whether anything was removed
func (s *Set) Remove(id string) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle removes p when present and adds it otherwise; it reports whether p is now a member
func (s *Set) Toggle(p domain.Product) bool {
	if s.Remove(p.ID) {
		return false
	}
	s.Upsert(p)
	return true
}

// List returns the members in insertion order
func (s *Set) List() []domain.Product {
	out := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Stores returns the distinct store names of the members in insertion order
func (s *Set) Stores() []string {
	return domain.StoreNames(s.List(), 0)
}

// FilterByStore returns members from store; "" or "all" returns every member
func (s *Set) FilterByStore(store string) []domain.Product {
	if store == "" || store == AllStores {
		return s.List()
	}
	var out []domain.Product
	for _, p := range s.List() {
		if p.StoreName == store {
			out = append(out, p)
		}
	}
	return out
}

// MarshalJSON encodes the set as a JSON list of products
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON decodes a JSON list of products, collapsing duplicate ids
func (s *Set) UnmarshalJSON(data []byte) error {
	var list []domain.Product
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = *NewSet(list...)
	return nil
}
