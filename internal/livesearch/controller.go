package livesearch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"quickfind/internal/domain"
)

var (
	lookupsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickfind_livesearch_lookups_total",
		Help: "Suggestion lookups issued after the input settled",
	})
	lookupsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickfind_livesearch_failures_total",
		Help: "Suggestion lookups that failed and were recovered to an empty result",
	})
	staleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickfind_livesearch_stale_responses_total",
		Help: "Lookup responses discarded because a newer query had settled",
	})
)

// Defaults used when Options leaves a field zero
const (
	DefaultQuietPeriod = 300 * time.Millisecond
	DefaultMinLength   = 2
	DefaultPreviewSize = 4
)

// SearchLookup runs one remote search
type SearchLookup interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// LookupFunc adapts a function to SearchLookup
type LookupFunc func(ctx context.Context, query string) ([]domain.Product, error)

func (f LookupFunc) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return f(ctx, query)
}

// Timer is a pending debounce callback
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d; time.AfterFunc satisfies it through StdAfterFunc
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc schedules with the runtime timer
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// State is what the controller publishes to the UI
type State struct {
	Query   string               // settled text the state belongs to
	Loading bool                 // a lookup for Query is in flight
	Result  *domain.SearchResult // nil means no results
}

// Options configures a Controller
type Options struct {
	QuietPeriod   time.Duration
	MinLength     int
	PreviewSize   int
	MaxCategories int
	AfterFunc     AfterFunc
	// Publish receives every state change. It is called from timer and
	// lookup goroutines, never while the controller lock is held, and must
	// not block on a goroutine that is waiting in Close.
	Publish func(State)
	// OnFailure is told about recovered lookup failures
	OnFailure func(query string, err error)
}

// Controller turns keystrokes into debounced suggestion lookups and
// publishes only the state of the most recently settled query.
type Controller struct {
	lookup SearchLookup
	opts   Options

	mu        sync.Mutex
	ctx       context.Context
	cancelAll context.CancelFunc
	text      string
	timer     Timer
	armed     uint64 // debounce generation
	seq       uint64 // settled query sequence
	cancel    context.CancelFunc
	version   uint64
	state     State
	closed    bool

	pubMu     sync.Mutex
	published uint64
}

// New creates a controller bound to lookup
func New(lookup SearchLookup, opts Options) *Controller {
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.PreviewSize <= 0 {
		opts.PreviewSize = DefaultPreviewSize
	}
	if opts.MaxCategories <= 0 {
		opts.MaxCategories = domain.MaxCategories
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = StdAfterFunc
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		lookup:    lookup,
		opts:      opts,
		ctx:       ctx,
		cancelAll: cancel,
	}
}

// OnInput records raw text and restarts the quiet period
func (c *Controller) OnInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.text = raw
	if c.timer != nil {
		c.timer.Stop()
	}
	c.armed++
	gen := c.armed
	c.timer = c.opts.AfterFunc(c.opts.QuietPeriod, func() { c.settle(gen) })
}

// State returns the most recent state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the pending timer and in-flight lookup. Nothing is published
// once Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancelAll()
	c.mu.Unlock()

	// wait out a publication that passed its check before closed was set
	c.pubMu.Lock()
	c.pubMu.Unlock()
}

func (c *Controller) settle(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.armed {
		// a newer keystroke re-armed the timer after this one fired
		c.mu.Unlock()
		return
	}
	c.timer = nil
	text := c.text

	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if utf8.RuneCountInString(text) < c.opts.MinLength {
		v := c.setState(State{Query: text})
		c.mu.Unlock()
		c.publish(v)
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel
	v := c.setState(State{Query: text, Loading: true, Result: c.state.Result})
	c.mu.Unlock()

	c.publish(v)
	lookupsIssued.Inc()
	go c.run(ctx, seq, text)
}

func (c *Controller) run(ctx context.Context, seq uint64, text string) {
	products, err := c.lookup.Search(ctx, text)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.seq {
		c.mu.Unlock()
		staleResponses.Inc()
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var next State
	if err != nil {
		next = State{Query: text}
	} else {
		res := domain.NewSearchResult(products, c.opts.PreviewSize, c.opts.MaxCategories)
		next = State{Query: text, Result: &res}
	}
	v := c.setState(next)
	c.mu.Unlock()

	if err != nil {
		lookupsFailed.Inc()
		if !errors.Is(err, context.Canceled) {
			log.Printf("livesearch: lookup for %q failed: %v", text, err)
		}
		if c.opts.OnFailure != nil {
			c.opts.OnFailure(text, err)
		}
	}
	c.publish(v)
}

// setState records s under c.mu and returns its version
func (c *Controller) setState(s State) uint64 {
	c.version++
	c.state = s
	return c.version
}

// publish delivers the state recorded at version v unless a newer version
// was already delivered or the controller is closed.
func (c *Controller) publish(v uint64) {
	if c.opts.Publish == nil {
		return
	}
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if c.closed || v <= c.published || v != c.version {
		c.mu.Unlock()
		return
	}
	c.published = v
	s := c.state
	c.mu.Unlock()

	c.opts.Publish(s)
}
