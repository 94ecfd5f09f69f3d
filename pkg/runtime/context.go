package runtime

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/glint-ui/glint/pkg/host"
)

// Scheduling defaults. Overridable per Context.
const (
	// DefaultDebounce is the fixed debounce delay between the last state
	// change and the render it triggers.
	DefaultDebounce = 25 * time.Millisecond

	// DefaultCooldown is how long after the last interaction end-event
	// the interacting flag stays set.
	DefaultCooldown = 100 * time.Millisecond

	// DefaultStormLimit caps re-arms triggered from inside a render
	// before updates are dropped.
	DefaultStormLimit = 5

	// DefaultRecovery is the delay before a dropped update's trailing
	// render, guaranteeing the final state still reaches the DOM.
	DefaultRecovery = 250 * time.Millisecond
)

// Context carries the runtime collaborators every component instance
// needs: logger, clock, observer, registry, and an ID counter. There is
// deliberately no package-level fallback; constructing two Contexts
// gives two fully independent runtimes.
type Context struct {
	logger   *slog.Logger
	clock    host.Clock
	observer Observer
	registry *Registry
	debug    bool

	debounce   time.Duration
	cooldown   time.Duration
	recovery   time.Duration
	stormLimit int

	ids atomic.Uint64
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the timer source. Tests use memdom.Clock.
func WithClock(clock host.Clock) ContextOption {
	return func(c *Context) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithObserver sets the lifecycle observer (metrics, tracing).
// Observers must not call back into the runtime.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithDebug enables verbose debug logging.
func WithDebug(debug bool) ContextOption {
	return func(c *Context) {
		c.debug = debug
	}
}

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) ContextOption {
	return func(c *Context) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithCooldown sets the interaction cooldown.
func WithCooldown(d time.Duration) ContextOption {
	return func(c *Context) {
		if d > 0 {
			c.cooldown = d
		}
	}
}

// WithStormLimit sets the update-storm ceiling.
func WithStormLimit(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.stormLimit = n
		}
	}
}

// WithRecovery sets the trailing-render delay after a dropped update.
func WithRecovery(d time.Duration) ContextOption {
	return func(c *Context) {
		if d > 0 {
			c.recovery = d
		}
	}
}

// NewContext creates a runtime Context with the given options.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		logger:     slog.Default(),
		clock:      host.SystemClock{},
		observer:   nopObserver{},
		registry:   newRegistry(),
		debounce:   DefaultDebounce,
		cooldown:   DefaultCooldown,
		recovery:   DefaultRecovery,
		stormLimit: DefaultStormLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the context's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Clock returns the context's timer source.
func (c *Context) Clock() host.Clock { return c.clock }

// Registry returns the live-instance registry.
func (c *Context) Registry() *Registry { return c.registry }

// Debug reports whether debug logging is enabled.
func (c *Context) Debug() bool { return c.debug }

// nextID returns the next component ID for this context.
func (c *Context) nextID() uint64 {
	return c.ids.Add(1)
}
