package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/eventbus"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 4, cfg.Search.PreviewSize)
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickfind", "config.toml")
	svc := NewConfigService(path)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "base_url = ")
	assert.Contains(t, string(data), "http://localhost:8080")
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `version = 1

[api]
base_url = "https://shop.example.com"

[search]
preview_size = 6

[favorites]
backend = "redis"

[favorites.redis]
addr = "cache:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, 6, cfg.Search.PreviewSize)
	assert.Equal(t, 300, cfg.Search.DebounceMS)
	assert.Equal(t, "redis", cfg.Favorites.Backend)
	assert.Equal(t, "cache:6379", cfg.Favorites.Redis.Addr)
	assert.Equal(t, "quickfind:", cfg.Favorites.Redis.Prefix)
	assert.Equal(t, "favoriteProducts", cfg.Favorites.Key)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"preview too large", "[search]\npreview_size = 9\n", "PreviewSize"},
		{"unknown backend", "[favorites]\nbackend = \"s3\"\n", "Backend"},
		{"bad theme", "[ui]\ntheme = \"neon\"\n", "Theme"},
		{"bad url", "[api]\nbase_url = \"not a url\"\n", "BaseURL"},
		{"malformed toml", "[search\n", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewConfigService(path).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.UI.Theme = "light"
	cfg.Search.Popular = []string{"Cameras"}
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, []string{"Cameras"}, loaded.Search.Popular)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Search.DebounceMS = 0

	err := NewConfigService(path).Save(cfg)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		assert.Equal(t, path, e.(eventbus.ConfigLoadedEvent).Path)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded not published")
	}
}
