// Package weather implements the weather query controller.
package weather

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"agromind/internal/external"
	"agromind/internal/metrics"
	"agromind/internal/types"
)

// MsgUnavailable is shown when a fetch fails.
const MsgUnavailable = "Weather not available. Try again!"

// DefaultLocation is fetched when the controller opens.
const DefaultLocation = "Dhaka"

const controllerName = "weather"

// Controller owns the location text and the last fetched snapshot. It is
// safe for concurrent use; overlapping fetches are not cancelled and the last
// one to complete determines the state.
type Controller struct {
	client          external.ServiceClient
	logger          *slog.Logger
	observers       []func(State)
	notifyMu        sync.Mutex
	defaultLocation string

	wg sync.WaitGroup

	mu       sync.Mutex
	location string
	state    State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to be called after every state transition.
// Observers run outside the controller lock, one notification at a time, and
// receive the state current at delivery. Overlapping calls may coalesce, but
// the last notification always carries the state State returns. Observers
// must not call methods that change the controller's state.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// WithDefaultLocation overrides the location fetched on open.
func WithDefaultLocation(location string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(location) != "" {
			c.defaultLocation = location
		}
	}
}

// Open creates a Controller and starts fetching the default location in the
// background. Use Wait to block until that fetch completes.
func Open(ctx context.Context, client external.ServiceClient, opts ...Option) *Controller {
	c := &Controller{
		client:          client,
		logger:          slog.Default(),
		defaultLocation: DefaultLocation,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.location = c.defaultLocation
	loading := Loading{Location: c.location}

	c.mu.Lock()
	c.setLocked(loading)
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_ = c.fetch(ctx, loading.Location)
	}()

	return c
}

// Wait blocks until background fetches started by Open have completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a fetch is in flight.
func (c *Controller) Busy() bool {
	return c.State().Phase() == types.PhaseSubmitting
}

// Location returns the current location text.
func (c *Controller) Location() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// Snapshot returns the snapshot held by a Ready state.
func (c *Controller) Snapshot() (types.WeatherSnapshot, bool) {
	if r, ok := c.State().(Ready); ok {
		return r.Snapshot, true
	}
	return types.WeatherSnapshot{}, false
}

// SetLocation stores the location text without fetching.
func (c *Controller) SetLocation(text string) {
	c.mu.Lock()
	c.location = text
	c.mu.Unlock()
}

// Search fetches the weather for the current location. A blank location is
// ignored. The returned error is the cause of a failed fetch; the state only
// ever carries MsgUnavailable.
func (c *Controller) Search(ctx context.Context) error {
	c.mu.Lock()
	location := c.location
	if strings.TrimSpace(location) == "" {
		c.mu.Unlock()
		return nil
	}
	loading := Loading{Location: location}
	c.setLocked(loading)
	c.mu.Unlock()
	c.notify()

	return c.fetch(ctx, location)
}

func (c *Controller) fetch(ctx context.Context, location string) error {
	var next State
	snap, err := c.query(ctx, location)
	if err != nil {
		c.logger.WarnContext(ctx, "weather fetch failed",
			"location", location,
			"error", err,
		)
		next = Failed{Message: MsgUnavailable}
	} else {
		next = Ready{Snapshot: snap}
	}

	c.mu.Lock()
	c.setLocked(next)
	c.mu.Unlock()
	c.notify()

	return err
}

func (c *Controller) query(ctx context.Context, location string) (types.WeatherSnapshot, error) {
	resp, err := c.client.Get(ctx, types.PathWeatherFull, url.Values{types.LocationParam: {location}})
	if err != nil {
		return types.WeatherSnapshot{}, err
	}
	if !resp.OK() {
		return types.WeatherSnapshot{}, resp.StatusError()
	}

	var payload types.WeatherPayload
	if err := resp.DecodeJSON(&payload); err != nil {
		return types.WeatherSnapshot{}, err
	}
	if payload.Current == nil {
		return types.WeatherSnapshot{}, types.NewAppError(types.ErrCodeUpstreamDecodeFailed,
			"response has no current conditions", nil).WithDetails(map[string]any{"service_error": payload.Error})
	}

	snap := payload.Snapshot()
	if snap.Location == "" {
		snap.Location = location
	}
	return snap, nil
}

// setLocked records a transition. c.mu must be held.
func (c *Controller) setLocked(s State) {
	c.state = s
	metrics.ControllerTransitions.WithLabelValues(controllerName, string(s.Phase())).Inc()
	c.logger.Debug("weather state changed", "phase", s.Phase())
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	s := c.State()
	for _, fn := range c.observers {
		fn(s)
	}
}
