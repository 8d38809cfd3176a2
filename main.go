package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"quickfind/internal/catalog"
	"quickfind/internal/config"
	"quickfind/internal/eventbus"
	"quickfind/internal/favorites"
	"quickfind/internal/kvstore"
	"quickfind/internal/metrics"
	"quickfind/internal/prefs"
	"quickfind/internal/routes"
	"quickfind/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type options struct {
	configPath  string
	apiURL      string
	backend     string
	dataDir     string
	redisAddr   string
	logFile     string
	metricsAddr string
	theme       string
	showVersion bool
}

func main() {
	var opts options
	flag.StringVarP(&opts.configPath, "config", "c", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&opts.apiURL, "api-url", "", "Base URL of the product catalog API")
	flag.StringVar(&opts.backend, "favorites-backend", "", "Where favorites are stored: file, redis or memory")
	flag.StringVar(&opts.dataDir, "data-dir", "", "Directory for the file favorites backend")
	flag.StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the redis favorites backend")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	flag.StringVar(&opts.theme, "theme", "", "Color theme: dark or light")
	flag.BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: quickfind [flags] [query | route]\n\n")
		fmt.Fprintf(os.Stderr, "A route is a path such as /search?q=shoes&sort=price-asc, /product/123 or /favorites.\n")
		fmt.Fprintf(os.Stderr, "Anything else is searched for.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.showVersion {
		fmt.Println("quickfind", version)
		return
	}

	start, err := startRoute(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(opts, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	kv, err := kvstore.Open(ctx, kvstore.Options{
		Backend:       cfg.Favorites.Backend,
		Dir:           cfg.Favorites.Dir,
		RedisAddr:     cfg.Favorites.Redis.Addr,
		RedisPassword: cfg.Favorites.Redis.Password,
		RedisDB:       cfg.Favorites.Redis.DB,
		RedisPrefix:   cfg.Favorites.Redis.Prefix,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s favorites store: %v\n", cfg.Favorites.Backend, err)
		os.Exit(1)
	}
	defer kv.Close()

	client, err := catalog.NewClient(cfg.API.BaseURL, catalog.WithTimeout(cfg.Timeout()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Metrics.Addr != "" {
		srv, err := metrics.Start(cfg.Metrics.Addr)
		if err != nil {
			log.Printf("Could not start metrics server: %v", err)
		} else {
			defer func() {
				shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
				defer done()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}
	}

	// Create UI model
	uiModel := ui.NewModel(ui.Options{
		Config:    cfg,
		Bus:       bus,
		Catalog:   client,
		Favorites: favorites.NewService(kv, cfg.Favorites.Key, bus),
		Prefs:     prefs.New(kv, bus, cfg.UI.Theme),
		Version:   version,
		Route:     start,
	})
	defer uiModel.Close()

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventFavoritesChanged,
		eventbus.EventThemeChanged,
		eventbus.EventLookupFailed,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if os.Getenv("QUICKFIND_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	// Run the UI
	log.Printf("Starting UI, catalog at %s", client.BaseURL())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(opts options, bus eventbus.EventBus) (*config.Config, error) {
	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = configSvc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = configSvc.Load()
		if err != nil {
			// A broken default config should not keep the app from starting
			fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
			cfg, err = config.DefaultConfig(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.backend != "" {
		cfg.Favorites.Backend = opts.backend
	}
	if opts.dataDir != "" {
		cfg.Favorites.Dir = opts.dataDir
	}
	if opts.redisAddr != "" {
		cfg.Favorites.Redis.Addr = opts.redisAddr
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startRoute turns positional arguments into the first route shown
func startRoute(args []string) (routes.Route, error) {
	if len(args) == 0 {
		return routes.Home(), nil
	}
	if len(args) == 1 && strings.HasPrefix(args[0], "/") {
		return routes.Parse(args[0])
	}
	return routes.Search(strings.Join(args, " ")), nil
}
