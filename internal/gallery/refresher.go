package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

const (
	DEFAULT_REFRESH_INTERVAL = 30 * time.Second
)

// Snapshot is the last successfully aggregated gallery
type Snapshot struct {
	Items     []domain.GalleryItem `json:"items"`
	UpdatedAt time.Time            `json:"updated_at"`
	// LastError is the error of the latest pass if it failed; Items are then from an earlier pass
	LastError string `json:"last_error,omitempty"`
}

// Refresher keeps a gallery snapshot up to date
//
//go:generate mockgen -source=refresher.go -destination=../mocks/gallery_refresher.go -package=mocks -mock_names=Refresher=MockGalleryRefresher
type Refresher interface {
	// Start refreshes once, then on every interval until ctx is done or Stop is called.
	// It fails with ErrRefresherStopped once Stop has been called.
	Start(ctx context.Context) error

	// Stop ends the loop; results of passes still in flight are discarded
	Stop(ctx context.Context) error

	// Refresh runs one pass now. It fails with domain.ErrActionInProgress if a pass is running.
	Refresh(ctx context.Context) (*Snapshot, error)

	// Snapshot returns the latest snapshot, never nil
	Snapshot() *Snapshot
}

// ErrRefresherStopped is returned when starting a refresher that was already stopped
var ErrRefresherStopped = errors.New("refresher already stopped")

type refresher struct {
	aggregator Aggregator
	clock      adapter.Clock
	interval   time.Duration

	snapshot   atomic.Pointer[Snapshot]
	generation atomic.Uint64
	busy       atomic.Bool

	mu        sync.Mutex
	started   bool
	stopped   bool
	cancel    context.CancelFunc
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewRefresher creates a refresher; a stopped refresher cannot be started again
func NewRefresher(aggregator Aggregator, clock adapter.Clock, interval time.Duration) Refresher {
	if interval <= 0 {
		interval = DEFAULT_REFRESH_INTERVAL
	}

	r := &refresher{
		aggregator: aggregator,
		clock:      clock,
		interval:   interval,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
	r.snapshot.Store(&Snapshot{Items: []domain.GalleryItem{}})

	return r
}

func (r *refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	switch {
	case r.stopped:
		r.mu.Unlock()
		return ErrRefresherStopped
	case r.started:
		r.mu.Unlock()
		return fmt.Errorf("refresher already running")
	}
	r.started = true
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	defer close(r.stoppedCh)
	defer cancel()

	logger.InfoCtx(ctx, "Starting gallery refresher", zap.Duration("interval", r.interval))

	r.refreshInBackground(ctx)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Gallery refresher stopping due to context cancellation")
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Gallery refresher stop requested")
			return nil
		case <-ticker.C():
			r.refreshInBackground(ctx)
		}
	}
}

func (r *refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	started := r.started
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.generation.Add(1)
	close(r.stopChan)

	if !started {
		return nil
	}

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Gallery refresher stopped")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Gallery refresher stop interrupted by context timeout")
		return ctx.Err()
	}
}

func (r *refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: gallery refresh", domain.ErrActionInProgress)
	}
	defer r.busy.Store(false)

	generation := r.generation.Load()
	items, err := r.aggregator.Aggregate(ctx)

	if r.generation.Load() != generation {
		return nil, context.Canceled
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		previous := r.snapshot.Load()
		r.snapshot.Store(&Snapshot{
			Items:     previous.Items,
			UpdatedAt: previous.UpdatedAt,
			LastError: err.Error(),
		})
		return nil, err
	}

	snapshot := &Snapshot{Items: items, UpdatedAt: r.clock.Now()}
	r.snapshot.Store(snapshot)

	return snapshot, nil
}

func (r *refresher) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// refreshInBackground runs a pass from the loop, skipping it when one is already running
func (r *refresher) refreshInBackground(ctx context.Context) {
	snapshot, err := r.Refresh(ctx)
	switch {
	case err == nil:
		logger.InfoCtx(ctx, "Gallery refreshed", zap.Int("tokens", len(snapshot.Items)))
	case errors.Is(err, domain.ErrActionInProgress):
		logger.DebugCtx(ctx, "Skipping gallery refresh, previous pass still running")
	case errors.Is(err, context.Canceled):
	default:
		logger.WarnCtx(ctx, "Gallery refresh failed, keeping previous snapshot", zap.Error(err))
	}
}
