package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quickfind/internal/eventbus"
	"quickfind/internal/kvstore"
)

const themeKey = "theme"

// Themes understood by the UI
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Store persists small user preferences next to the favorites blob
type Store struct {
	kv       kvstore.Store
	bus      eventbus.EventBus
	fallback string
}

// New creates a preference store; fallback is the theme used when none is saved
func New(kv kvstore.Store, bus eventbus.EventBus, fallback string) *Store {
	if fallback != ThemeLight {
		fallback = ThemeDark
	}
	return &Store{kv: kv, bus: bus, fallback: fallback}
}

// Theme returns the saved theme or the fallback
func (s *Store) Theme(ctx context.Context) string {
	data, err := s.kv.Get(ctx, themeKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.Printf("prefs: failed to read theme: %v", err)
		}
		return s.fallback
	}
	switch string(data) {
	case ThemeDark, ThemeLight:
		return string(data)
	}
	log.Printf("prefs: ignoring unknown theme %q", data)
	return s.fallback
}

// SetTheme saves theme and announces the change
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.kv.Set(ctx, themeKey, []byte(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.ThemeChangedEvent{Theme: theme})
	}
	return nil
}

// ToggleTheme flips between dark and light and returns the new theme
func (s *Store) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeLight
	if s.Theme(ctx) == ThemeLight {
		next = ThemeDark
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(ctx), err
	}
	return next, nil
}
