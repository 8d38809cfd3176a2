package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"quickfind/internal/eventbus"
)

// CurrentVersion is written into new config files
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version" validate:"gte=1"`
	LogFile   string          `toml:"log_file"`
	API       APISettings     `toml:"api"`
	Search    SearchSettings  `toml:"search"`
	Favorites FavoritesConfig `toml:"favorites"`
	UI        UISettings      `toml:"ui"`
	Metrics   MetricsSettings `toml:"metrics"`
}

// APISettings locates the product API
type APISettings struct {
	BaseURL        string `toml:"base_url" validate:"required,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=1,lte=300"`
}

// SearchSettings tunes the live suggestion dropdown
type SearchSettings struct {
	DebounceMS     int      `toml:"debounce_ms" validate:"gte=50,lte=5000"`
	MinQueryLength int      `toml:"min_query_length" validate:"gte=1,lte=10"`
	PreviewSize    int      `toml:"preview_size" validate:"gte=4,lte=6"`
	MaxCategories  int      `toml:"max_categories" validate:"gte=1,lte=10"`
	Popular        []string `toml:"popular" validate:"dive,required"`
}

// FavoritesConfig selects where favorites and preferences are stored
type FavoritesConfig struct {
	Backend string      `toml:"backend" validate:"oneof=file redis memory"`
	Dir     string      `toml:"dir"`
	Key     string      `toml:"key" validate:"required"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis backend
type RedisConfig struct {
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"gte=0"`
	Prefix   string `toml:"prefix"`
	Enabled  bool   `toml:"-"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Theme       string `toml:"theme" validate:"oneof=dark light"`
	ShowPopular bool   `toml:"show_popular"`
}

// MetricsSettings controls the optional prometheus endpoint
type MetricsSettings struct {
	Addr string `toml:"addr" validate:"omitempty,hostname_port"`
}

// Debounce returns the suggestion quiet period
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// Timeout returns the HTTP request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	c.Favorites.Redis.Enabled = c.Favorites.Backend == "redis"
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "quickfind", "config.toml")
}

// NewConfigService creates a config service for path; an empty path uses DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the
// defaults, which are written back so users have something to edit.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return nil, err
		}
		cs.publishLoaded()
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publishLoaded()
	return cfg, nil
}

func (cs *configService) publishLoaded() {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Fields missing
// from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		LogFile: "quickfind.log",
		API: APISettings{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 10,
		},
		Search: SearchSettings{
			DebounceMS:     300,
			MinQueryLength: 2,
			PreviewSize:    4,
			MaxCategories:  5,
			Popular:        []string{"Smartphones", "Laptops", "Headphones", "Shoes", "Watches"},
		},
		Favorites: FavoritesConfig{
			Backend: "file",
			Key:     "favoriteProducts",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "quickfind:",
			},
		},
		UI: UISettings{
			Theme:       "dark",
			ShowPopular: true,
		},
	}
}
