// Package location wraps a positioning source behind a small state machine
// with a debounced change notification, so the map pipeline downstream sees
// one coordinate per burst instead of every GPS jitter.
package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/geo"
)

// Provider is the positioning capability. Implementations may block; the
// tracker bounds every call with its acquisition timeout.
type Provider interface {
	CurrentPosition(ctx context.Context) (geo.Coordinate, error)
}

// Provider failure sentinels
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// State is the tracker's lifecycle state
type State int

// Idle -> Requesting -> Resolved or Failed. Failed is terminal for the
// request but never for the pipeline: the tracker still hands out the
// default coordinate.
const (
	Idle State = iota
	Requesting
	Resolved
	Failed
)

// FailureKind classifies why a location request did not resolve
type FailureKind string

// The failure taxonomy surfaced to callers
const (
	FailureNone        FailureKind = ""
	FailureDenied      FailureKind = "permission-denied"
	FailureUnavailable FailureKind = "position-unavailable"
	FailureTimeout     FailureKind = "timeout"
	FailureUnsupported FailureKind = "unsupported-platform"
)

// Message returns the user-facing message for the failure kind
func (f FailureKind) Message() string {
	switch f {
	case FailureDenied:
		return "Location access was denied. Enable location permission to see nearby reports."
	case FailureUnavailable:
		return "Your position could not be determined. Showing the default area instead."
	case FailureTimeout:
		return "Locating you took too long. Showing the default area instead."
	case FailureUnsupported:
		return "Location is not supported on this device. Showing the default area instead."
	}
	return ""
}

// DefaultCoordinate is the fallback origin when positioning fails, so
// downstream consumers never block on a missing location.
var DefaultCoordinate = geo.Coordinate{Latitude: -7.7956, Longitude: 110.3695}

const (
	// DefaultTimeout bounds a single position acquisition
	DefaultTimeout = 8 * time.Second
	// DefaultDebounce is the quiet window before a change is propagated
	DefaultDebounce = 300 * time.Millisecond
)

// Tracker owns the last-known coordinate and the single-slot debounce timer.
// Arming the timer cancels any previous pending notification; Close cancels
// whatever is still pending so no callback fires after teardown.
type Tracker struct {
	provider Provider
	timeout  time.Duration
	debounce time.Duration

	mu       sync.Mutex
	state    State
	failure  FailureKind
	coord    geo.Coordinate
	pending  geo.Coordinate
	timer    *time.Timer
	onChange func(geo.Coordinate)
	closed   bool
}

// Option configures a Tracker
type Option func(*Tracker)

// WithTimeout overrides the acquisition timeout
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) { t.timeout = d }
}

// WithDebounce overrides the debounce window
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.debounce = d }
}

// NewTracker returns a tracker in the Idle state. A nil provider is allowed
// and reported as unsupported-platform on the first request.
func NewTracker(provider Provider, opts ...Option) *Tracker {
	t := &Tracker{
		provider: provider,
		timeout:  DefaultTimeout,
		debounce: DefaultDebounce,
		coord:    DefaultCoordinate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnChange registers the downstream notification. Only one consumer is
// supported; registering replaces the previous one.
func (t *Tracker) OnChange(fn func(geo.Coordinate)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Coordinate returns the last-known coordinate and whether a request is
// still in flight
func (t *Tracker) Coordinate() (geo.Coordinate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.coord, t.state == Requesting
}

// Failure returns the failure kind of the last request, if any
func (t *Tracker) Failure() FailureKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failure
}

// RequestLocation asks the provider for a position once. On any failure the
// tracker falls back to DefaultCoordinate, so the returned coordinate is
// always usable. The resolution is propagated through the debounced
// notification either way.
func (t *Tracker) RequestLocation(ctx context.Context) geo.Coordinate {
	t.mu.Lock()
	if t.closed {
		coord := t.coord
		t.mu.Unlock()
		return coord
	}
	provider := t.provider
	timeout := t.timeout
	t.state = Requesting
	t.failure = FailureNone
	t.mu.Unlock()

	if provider == nil {
		return t.fail(FailureUnsupported)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	coord, err := provider.CurrentPosition(reqCtx)
	if err != nil {
		return t.fail(classify(err))
	}
	if !coord.Valid() {
		return t.fail(FailureUnavailable)
	}

	t.mu.Lock()
	t.state = Resolved
	t.coord = coord
	t.mu.Unlock()
	t.Update(coord)
	return coord
}

// Update pushes an externally resolved coordinate into the tracker, e.g. a
// fix streamed up from a device. Invalid coordinates are dropped.
func (t *Tracker) Update(coord geo.Coordinate) {
	if !coord.Valid() {
		zap.S().Debugw("dropping invalid coordinate", "lat", coord.Latitude, "lon", coord.Longitude)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.state = Resolved
	t.coord = coord
	t.arm(coord)
}

// Close cancels any pending debounce timer. No notification fires after
// Close returns.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) fail(kind FailureKind) geo.Coordinate {
	zap.S().Warnw("location request failed, using default coordinate",
		"failure", string(kind),
	)

	t.mu.Lock()
	t.state = Failed
	t.failure = kind
	t.coord = DefaultCoordinate
	if !t.closed {
		t.arm(DefaultCoordinate)
	}
	t.mu.Unlock()
	return DefaultCoordinate
}

// arm starts (or restarts) the single-slot debounce timer. Callers hold t.mu.
func (t *Tracker) arm(coord geo.Coordinate) {
	t.pending = coord
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.debounce, t.fire)
}

func (t *Tracker) fire() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	fn := t.onChange
	coord := t.pending
	t.timer = nil
	t.mu.Unlock()

	if fn != nil {
		fn(coord)
	}
}

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return FailureDenied
	case errors.Is(err, ErrPositionUnavailable):
		return FailureUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	}
	return FailureUnavailable
}
