package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"setproxy/internal/core"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/storage/models"
)

// Snapshot is one status observation delivered to the callback.
type Snapshot struct {
	At      time.Time
	Summary string
	Enabled bool
	Err     error
}

// Func receives each observation.
type Func func(Snapshot)

// Watcher probes proxy status on a fixed interval. It runs in the
// foreground of the calling command; there is no daemon.
type Watcher struct {
	scheduler gocron.Scheduler
	manager   *core.Manager
	profile   *models.Profile
	interval  time.Duration
	running   bool
}

// NewWatcher creates a new Watcher.
func NewWatcher(manager *core.Manager, profile *models.Profile, interval time.Duration) (*Watcher, error) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Watcher{
		scheduler: scheduler,
		manager:   manager,
		profile:   profile,
		interval:  interval,
	}, nil
}

// Start begins periodic probing, delivering one immediate observation and
// then one per interval.
func (w *Watcher) Start(ctx context.Context, fn Func) error {
	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			fn(w.probe(ctx))
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create status job: %w", err)
	}

	w.scheduler.Start()
	w.running = true
	return nil
}

// Stop shuts the scheduler down.
func (w *Watcher) Stop() error {
	if !w.running {
		return fmt.Errorf("watcher is not running")
	}
	if err := w.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	w.running = false
	return nil
}

func (w *Watcher) probe(ctx context.Context) Snapshot {
	snap := Snapshot{At: time.Now()}
	statuses, err := w.manager.Status(ctx, w.profile)
	if err != nil {
		snap.Err = err
		return snap
	}
	snap.Summary = sysproxy.Summary(statuses)
	snap.Enabled = sysproxy.AnyEnabled(statuses)
	return snap
}
