package campaigns

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/models"
)

// ViewState is the reactive snapshot the view-model hands its subscriber
type ViewState struct {
	Campaigns []models.CampaignView `json:"campaigns"`
	Loading   bool                  `json:"loading"`
	Err       string                `json:"error,omitempty"`
}

// ViewModel keeps an observable campaign list for one viewer. Mutations are
// applied optimistically so the list reflects a join before the
// post-invalidation refetch confirms it; a refetch superseded by a newer one
// or by Close never commits its result.
type ViewModel struct {
	svc    *Service
	userID string
	status string

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	state  ViewState
	notify func(ViewState)
	closed bool
}

// NewViewModel returns a view-model for the given viewer and status filter
func NewViewModel(svc *Service, userID, status string) *ViewModel {
	return &ViewModel{svc: svc, userID: userID, status: status}
}

// Subscribe registers the state callback
func (vm *ViewModel) Subscribe(fn func(ViewState)) {
	vm.mu.Lock()
	vm.notify = fn
	vm.mu.Unlock()
}

// State returns the current snapshot
func (vm *ViewModel) State() ViewState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Refetch loads the campaign list, cancelling any load still in flight
func (vm *ViewModel) Refetch() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	if vm.cancel != nil {
		vm.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	vm.cancel = cancel
	vm.seq++
	seq := vm.seq
	vm.state.Loading = true
	snapshot := vm.state
	fn := vm.notify
	vm.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}

	go vm.run(ctx, cancel, seq)
}

func (vm *ViewModel) run(ctx context.Context, cancel context.CancelFunc, seq uint64) {
	defer cancel()
	views, err := vm.svc.List(ctx, vm.userID, vm.status)

	vm.mu.Lock()
	if vm.closed || seq != vm.seq {
		vm.mu.Unlock()
		return
	}
	vm.state.Loading = false
	switch {
	case errors.Is(err, context.Canceled):
		vm.mu.Unlock()
		return
	case err != nil:
		vm.state.Err = "failed to load campaigns"
	default:
		vm.state.Err = ""
		if views == nil {
			views = []models.CampaignView{}
		}
		vm.state.Campaigns = views
	}
	snapshot := vm.state
	fn := vm.notify
	vm.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Join joins the campaign and, on success, bumps the local row before the
// refetch lands: participants capped at the maximum, isJoined set. The
// refetch after cache invalidation reconciles with server truth.
func (vm *ViewModel) Join(ctx context.Context, campaignID primitive.ObjectID) error {
	if err := vm.svc.Join(ctx, campaignID, vm.userID); err != nil {
		return err
	}

	vm.apply(campaignID, func(view *models.CampaignView) {
		if view.Participants < view.MaxParticipants {
			view.Participants++
		}
		view.IsJoined = true
	})
	vm.Refetch()
	return nil
}

// Leave leaves the campaign and mirrors the change locally
func (vm *ViewModel) Leave(ctx context.Context, campaignID primitive.ObjectID) error {
	if err := vm.svc.Leave(ctx, campaignID, vm.userID); err != nil {
		return err
	}

	vm.apply(campaignID, func(view *models.CampaignView) {
		if view.Participants > 0 {
			view.Participants--
		}
		view.IsJoined = false
	})
	vm.Refetch()
	return nil
}

// apply mutates a copy of the list and swaps it in. Snapshots already handed
// to subscribers, and cache entries the list was served from, keep the rows
// they saw.
func (vm *ViewModel) apply(campaignID primitive.ObjectID, mutate func(*models.CampaignView)) {
	vm.mu.Lock()
	views := cloneViews(vm.state.Campaigns)
	for i := range views {
		if views[i].ID == campaignID {
			mutate(&views[i])
			break
		}
	}
	vm.state.Campaigns = views
	snapshot := vm.state
	fn := vm.notify
	vm.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Close stops further commits and cancels any in-flight load
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	if vm.cancel != nil {
		vm.cancel()
		vm.cancel = nil
	}
	vm.mu.Unlock()
}
