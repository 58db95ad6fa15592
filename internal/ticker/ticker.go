// Package ticker drives the store's stopwatch from a gocron scheduler. A
// one-second job exists only while the timer is running.
package ticker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/marcus/nexaflow/internal/logging"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/store"
)

const jobName = "timer-tick"

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides the one-second tick. Tests use a shorter one.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) { dr.interval = d }
}

// WithLogger sets the driver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(dr *Driver) { dr.log = l }
}

// Driver arms and disarms the tick job as the timer enters and leaves
// Running.
type Driver struct {
	store     *store.Store
	scheduler gocron.Scheduler
	interval  time.Duration
	log       *slog.Logger

	mu      sync.Mutex
	job     gocron.Job
	cancel  func()
	stopped bool
	once    sync.Once
}

// New creates a driver for s. Call Start to begin ticking.
func New(s *store.Store, opts ...Option) (*Driver, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	d := &Driver{
		store:     s,
		scheduler: sched,
		interval:  time.Second,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Start begins following the store. The driver stops by itself when the
// store is closed.
func (d *Driver) Start() error {
	d.scheduler.Start()
	if err := d.sync(); err != nil {
		return err
	}

	cancel := d.store.Subscribe(func(models.Snapshot) {
		if err := d.sync(); err != nil {
			d.log.Error("timer job update failed", logging.Err(err))
		}
	})
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	go func() {
		<-d.store.Done()
		if err := d.Stop(); err != nil {
			d.log.Warn("scheduler shutdown", logging.Err(err))
		}
	}()
	return nil
}

// Armed reports whether the tick job is scheduled.
func (d *Driver) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.job != nil
}

// sync reads the timer under d.mu so notifications delivered out of order
// still converge on the latest state.
func (d *Driver) sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return nil
	}
	t := d.store.Timer()

	switch {
	case t.IsRunning && d.job == nil:
		job, err := d.scheduler.NewJob(
			gocron.DurationJob(d.interval),
			gocron.NewTask(d.tick),
			gocron.WithName(jobName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("schedule tick job: %w", err)
		}
		d.job = job
		d.log.Debug("tick job armed", logging.Phase(string(t.Phase())))
	case !t.IsRunning && d.job != nil:
		if err := d.scheduler.RemoveJob(d.job.ID()); err != nil {
			return fmt.Errorf("remove tick job: %w", err)
		}
		d.job = nil
		d.log.Debug("tick job removed", logging.Phase(string(t.Phase())))
	}
	return nil
}

func (d *Driver) tick() {
	err := d.store.TickTimer()
	switch {
	case err == nil, errors.Is(err, store.ErrClosed):
	default:
		d.log.Error("timer tick failed", logging.Err(err))
	}
}

// Stop removes the subscription and shuts the scheduler down. Safe to call
// more than once.
func (d *Driver) Stop() error {
	var err error
	d.once.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.job = nil
		cancel := d.cancel
		d.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		err = d.scheduler.Shutdown()
	})
	return err
}
