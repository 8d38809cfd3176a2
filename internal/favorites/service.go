package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"quickfind/internal/domain"
	"quickfind/internal/eventbus"
	"quickfind/internal/kvstore"
)

// DefaultKey is the store key holding the favorites blob
const DefaultKey = "favoriteProducts"

// AllStores is the store filter value matching every favorite
const AllStores = "all"

// Service persists the favorites set as one JSON blob. Every mutation is a
// read-modify-write of the whole blob under the service lock.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
	key   string
	bus   eventbus.EventBus
}

// NewService creates a favorites service; an empty key uses DefaultKey
func NewService(store kvstore.Store, key string, bus eventbus.EventBus) *Service {
	if key == "" {
		key = DefaultKey
	}
	return &Service{store: store, key: key, bus: bus}
}

// Load returns the persisted set. A missing, unreadable or corrupt blob
// yields an empty set; the failure is logged, never returned.
func (s *Service) Load(ctx context.Context) *Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) *Set {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return NewSet()
	}
	if err != nil {
		log.Printf("favorites: failed to read %s: %v", s.key, err)
		return NewSet()
	}

	set := NewSet()
	if err := json.Unmarshal(data, set); err != nil {
		log.Printf("favorites: ignoring corrupt %s blob: %v", s.key, err)
		return NewSet()
	}
	return set
}

func (s *Service) save(ctx context.Context, set *Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func (s *Service) publish(id string, added bool, count int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.FavoritesChangedEvent{ProductID: id, Added: added, Count: count})
}

// Toggle adds p when absent and removes it when present.
// It reports whether p is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx)
	added := set.Toggle(p)
	if err := s.save(ctx, set); err != nil {
		return !added, err
	}
	s.publish(p.ID, added, set.Len())
	return added, nil
}

// Add upserts p
func (s *Service) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx)
	set.Upsert(p)
	if err := s.save(ctx, set); err != nil {
		return err
	}
	s.publish(p.ID, true, set.Len())
	return nil
}

// Remove deletes the favorite with id; removing an absent id writes nothing
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx)
	if !set.Remove(id) {
		return nil
	}
	if err := s.save(ctx, set); err != nil {
		return err
	}
	s.publish(id, false, set.Len())
	return nil
}

// Contains reports whether id is a favorite
func (s *Service) Contains(ctx context.Context, id string) bool {
	return s.Load(ctx).Contains(id)
}

// List returns the favorites in insertion order
func (s *Service) List(ctx context.Context) []domain.Product {
	return s.Load(ctx).List()
}
