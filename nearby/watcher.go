package nearby

import (
	"context"
	"errors"

	"sync"

	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/models"
)

// Fetcher is what the watcher needs from the query service
type Fetcher interface {
	FetchNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error)
}

// State is the reactive snapshot handed to the watcher's subscriber. An
// explicit Err keeps "no reports nearby" distinguishable from "failed to
// load reports".
type State struct {
	Reports []models.NearbyReport `json:"reports"`
	Loading bool                  `json:"loading"`
	Err     string                `json:"error,omitempty"`
}

// Watcher serializes nearby fetches for one logical caller. A new Refetch
// cancels the previous in-flight request; a superseded or cancelled request
// never commits its result, so the observed state is always the most recent
// request's.
type Watcher struct {
	fetcher  Fetcher
	radiusKm float64
	limit    int

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	state  State
	notify func(State)
	closed bool
}

// NewWatcher returns a watcher fetching up to limit reports within radiusKm
func NewWatcher(fetcher Fetcher, radiusKm float64, limit int) *Watcher {
	return &Watcher{
		fetcher:  fetcher,
		radiusKm: radiusKm,
		limit:    limit,
	}
}

// Subscribe registers the state callback. It fires after every committed
// state change, never for discarded requests.
func (w *Watcher) Subscribe(fn func(State)) {
	w.mu.Lock()
	w.notify = fn
	w.mu.Unlock()
}

// State returns the current snapshot
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetRadius changes the search radius for subsequent fetches
func (w *Watcher) SetRadius(radiusKm float64) {
	w.mu.Lock()
	if radiusKm > 0 {
		w.radiusKm = radiusKm
	}
	w.mu.Unlock()
}

// Refetch starts a fetch from origin, cancelling any fetch still in flight
func (w *Watcher) Refetch(origin geo.Coordinate) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.seq++
	seq := w.seq
	radiusKm, limit := w.radiusKm, w.limit
	w.state.Loading = true
	snapshot := w.state
	fn := w.notify
	w.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}

	go w.run(ctx, cancel, seq, origin, radiusKm, limit)
}

func (w *Watcher) run(ctx context.Context, cancel context.CancelFunc, seq uint64, origin geo.Coordinate, radiusKm float64, limit int) {
	defer cancel()
	reports, err := w.fetcher.FetchNearby(ctx, origin, radiusKm, limit)

	w.mu.Lock()
	if w.closed || seq != w.seq {
		// Superseded by a newer request; even a late success must not
		// overwrite the newer result.
		w.mu.Unlock()
		return
	}
	w.state.Loading = false
	switch {
	case errors.Is(err, context.Canceled):
		w.mu.Unlock()
		return
	case err != nil:
		w.state.Err = "failed to load nearby reports"
		w.state.Reports = []models.NearbyReport{}
	default:
		w.state.Err = ""
		if reports == nil {
			reports = []models.NearbyReport{}
		}
		w.state.Reports = reports
	}
	snapshot := w.state
	fn := w.notify
	w.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Close cancels any in-flight fetch and stops further commits
func (w *Watcher) Close() {
	w.mu.Lock()
	w.closed = true
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()
}
