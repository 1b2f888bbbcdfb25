package location_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/location"
)

type stubProvider struct {
	coord geo.Coordinate
	err   error
	delay time.Duration
}

func (p *stubProvider) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return geo.Coordinate{}, ctx.Err()
		}
	}
	return p.coord, p.err
}

type recorder struct {
	mu     sync.Mutex
	coords []geo.Coordinate
}

func (r *recorder) record(c geo.Coordinate) {
	r.mu.Lock()
	r.coords = append(r.coords, c)
	r.mu.Unlock()
}

func (r *recorder) all() []geo.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]geo.Coordinate, len(r.coords))
	copy(out, r.coords)
	return out
}

func TestRequestLocationResolves(t *testing.T) {
	want := geo.Coordinate{Latitude: -7.80, Longitude: 110.37}
	tr := location.NewTracker(&stubProvider{coord: want})
	defer tr.Close()

	got := tr.RequestLocation(context.Background())

	assert.Equal(t, want, got)
	coord, resolving := tr.Coordinate()
	assert.Equal(t, want, coord)
	assert.False(t, resolving)
	assert.Equal(t, location.FailureNone, tr.Failure())
}

func TestRequestLocationPermissionDeniedFallsBack(t *testing.T) {
	tr := location.NewTracker(&stubProvider{err: location.ErrPermissionDenied})
	defer tr.Close()

	got := tr.RequestLocation(context.Background())

	assert.Equal(t, location.DefaultCoordinate, got)
	assert.Equal(t, location.FailureDenied, tr.Failure())
	assert.NotEmpty(t, tr.Failure().Message())
}

func TestRequestLocationUnavailableFallsBack(t *testing.T) {
	tr := location.NewTracker(&stubProvider{err: location.ErrPositionUnavailable})
	defer tr.Close()

	got := tr.RequestLocation(context.Background())

	assert.Equal(t, location.DefaultCoordinate, got)
	assert.Equal(t, location.FailureUnavailable, tr.Failure())
}

func TestRequestLocationTimeoutFallsBack(t *testing.T) {
	tr := location.NewTracker(
		&stubProvider{coord: geo.Coordinate{Latitude: 1, Longitude: 1}, delay: time.Second},
		location.WithTimeout(10*time.Millisecond),
	)
	defer tr.Close()

	got := tr.RequestLocation(context.Background())

	assert.Equal(t, location.DefaultCoordinate, got)
	assert.Equal(t, location.FailureTimeout, tr.Failure())
}

func TestRequestLocationNilProviderUnsupported(t *testing.T) {
	tr := location.NewTracker(nil)
	defer tr.Close()

	got := tr.RequestLocation(context.Background())

	assert.Equal(t, location.DefaultCoordinate, got)
	assert.Equal(t, location.FailureUnsupported, tr.Failure())
}

func TestDistinctFailureMessages(t *testing.T) {
	kinds := []location.FailureKind{
		location.FailureDenied,
		location.FailureUnavailable,
		location.FailureTimeout,
		location.FailureUnsupported,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		msg := k.Message()
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "message for %s duplicates another kind", k)
		seen[msg] = true
	}
}

func TestDebounceCoalescesRapidUpdates(t *testing.T) {
	tr := location.NewTracker(nil, location.WithDebounce(30*time.Millisecond))
	defer tr.Close()

	rec := &recorder{}
	tr.OnChange(rec.record)

	first := geo.Coordinate{Latitude: 1, Longitude: 1}
	second := geo.Coordinate{Latitude: 2, Longitude: 2}
	third := geo.Coordinate{Latitude: 3, Longitude: 3}

	tr.Update(first)
	tr.Update(second)
	tr.Update(third)

	time.Sleep(80 * time.Millisecond)

	got := rec.all()
	assert.Len(t, got, 1)
	assert.Equal(t, third, got[0])
}

func TestDebounceFiresAgainAfterQuietWindow(t *testing.T) {
	tr := location.NewTracker(nil, location.WithDebounce(20*time.Millisecond))
	defer tr.Close()

	rec := &recorder{}
	tr.OnChange(rec.record)

	tr.Update(geo.Coordinate{Latitude: 1, Longitude: 1})
	time.Sleep(50 * time.Millisecond)
	tr.Update(geo.Coordinate{Latitude: 2, Longitude: 2})
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, rec.all(), 2)
}

func TestCloseCancelsPendingTimer(t *testing.T) {
	tr := location.NewTracker(nil, location.WithDebounce(20*time.Millisecond))

	rec := &recorder{}
	tr.OnChange(rec.record)

	tr.Update(geo.Coordinate{Latitude: 1, Longitude: 1})
	tr.Close()

	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.all())
}

func TestUpdateDropsInvalidCoordinate(t *testing.T) {
	tr := location.NewTracker(nil, location.WithDebounce(10*time.Millisecond))
	defer tr.Close()

	rec := &recorder{}
	tr.OnChange(rec.record)

	tr.Update(geo.Coordinate{Latitude: 999, Longitude: 0})
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, rec.all())
}
