package nearby_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/nearby"
)

// scriptedFetcher maps each origin to a channel-controlled result so tests
// can decide the order in which concurrent fetches complete.
type scriptedFetcher struct {
	mu    sync.Mutex
	calls map[geo.Coordinate]scriptedCall
}

type scriptedCall struct {
	release chan struct{}
	reports []models.NearbyReport
	err     error
}

func (f *scriptedFetcher) FetchNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error) {
	f.mu.Lock()
	call, ok := f.calls[origin]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("unexpected fetch origin")
	}

	if call.release != nil {
		select {
		case <-call.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return call.reports, call.err
}

// collector records every committed state
type collector struct {
	mu     sync.Mutex
	states []nearby.State
}

func (c *collector) record(s nearby.State) {
	c.mu.Lock()
	c.states = append(c.states, s)
	c.mu.Unlock()
}

func (c *collector) snapshot() []nearby.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]nearby.State, len(c.states))
	copy(out, c.states)
	return out
}

func (c *collector) waitFor(t *testing.T, cond func([]nearby.State) bool) []nearby.State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		states := c.snapshot()
		if cond(states) {
			return states
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met, states: %+v", c.snapshot())
	return nil
}

var (
	originA = geo.Coordinate{Latitude: -7.79, Longitude: 110.36}
	originB = geo.Coordinate{Latitude: -7.80, Longitude: 110.37}
)

func someReports(n int) []models.NearbyReport {
	out := make([]models.NearbyReport, n)
	for i := range out {
		out[i] = models.NearbyReport{Report: models.Report{ID: primitive.NewObjectID()}}
	}
	return out
}

func TestWatcherCommitsResult(t *testing.T) {
	reports := someReports(2)
	fetcher := &scriptedFetcher{calls: map[geo.Coordinate]scriptedCall{
		originA: {reports: reports},
	}}
	w := nearby.NewWatcher(fetcher, 5, 50)
	defer w.Close()

	c := &collector{}
	w.Subscribe(c.record)
	w.Refetch(originA)

	states := c.waitFor(t, func(states []nearby.State) bool {
		return len(states) >= 2 && !states[len(states)-1].Loading
	})

	assert.True(t, states[0].Loading)
	final := states[len(states)-1]
	assert.Equal(t, reports, final.Reports)
	assert.Empty(t, final.Err)
}

func TestWatcherDiscardsSupersededResult(t *testing.T) {
	stale := someReports(3)
	fresh := someReports(1)

	release := make(chan struct{})
	fetcher := &scriptedFetcher{calls: map[geo.Coordinate]scriptedCall{
		originA: {release: release, reports: stale},
		originB: {reports: fresh},
	}}

	w := nearby.NewWatcher(fetcher, 5, 50)
	defer w.Close()
	c := &collector{}
	w.Subscribe(c.record)

	w.Refetch(originA)
	w.Refetch(originB)

	c.waitFor(t, func(states []nearby.State) bool {
		last := len(states) - 1
		return last >= 0 && !states[last].Loading && len(states[last].Reports) == 1
	})

	// let the first call finish late; its result must not overwrite
	close(release)
	time.Sleep(50 * time.Millisecond)

	final := w.State()
	assert.Equal(t, fresh, final.Reports)
}

func TestWatcherErrorStateKeepsNoStaleReports(t *testing.T) {
	fetcher := &scriptedFetcher{calls: map[geo.Coordinate]scriptedCall{
		originA: {reports: someReports(2)},
		originB: {err: errors.New("store down")},
	}}

	w := nearby.NewWatcher(fetcher, 5, 50)
	defer w.Close()
	c := &collector{}
	w.Subscribe(c.record)

	w.Refetch(originA)
	c.waitFor(t, func(states []nearby.State) bool {
		last := len(states) - 1
		return last >= 0 && !states[last].Loading && len(states[last].Reports) == 2
	})

	w.Refetch(originB)
	states := c.waitFor(t, func(states []nearby.State) bool {
		last := len(states) - 1
		return last >= 0 && states[last].Err != ""
	})

	final := states[len(states)-1]
	assert.Equal(t, "failed to load nearby reports", final.Err)
	assert.Empty(t, final.Reports)
}

func TestWatcherCloseStopsCommits(t *testing.T) {
	release := make(chan struct{})
	fetcher := &scriptedFetcher{calls: map[geo.Coordinate]scriptedCall{
		originA: {release: release, reports: someReports(1)},
	}}

	w := nearby.NewWatcher(fetcher, 5, 50)
	c := &collector{}
	w.Subscribe(c.record)

	w.Refetch(originA)
	w.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)

	final := w.State()
	assert.Empty(t, final.Reports)
}
