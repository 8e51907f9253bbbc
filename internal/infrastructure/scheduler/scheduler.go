package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/domain/stopwatch"
)

var ErrInvalidInterval = errors.New("interval must be positive")

// Scheduler runs stopwatch ticks and delayed alert dismissals on gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	clock     clockwork.Clock
	log       *slog.Logger
}

type Option func(*options)

type options struct {
	clock clockwork.Clock
}

// WithClock drives the scheduler from the given clock instead of wall time.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

func New(log *slog.Logger, opts ...Option) (*Scheduler, error) {
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "scheduler")

	s, err := gocron.NewScheduler(gocron.WithClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{scheduler: s, clock: o.clock, log: log}, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Debug("starting scheduler")
	s.scheduler.Start()
}

// Stop removes every job and waits for running ones to return.
func (s *Scheduler) Stop() error {
	s.log.Debug("stopping scheduler")
	return s.scheduler.Shutdown()
}

// Every runs task once per interval, first after one interval has passed.
// A run that is still busy when the next one is due is skipped.
func (s *Scheduler) Every(interval time.Duration, task func()) (stopwatch.Handle, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create periodic job: %w", err)
	}
	return s.handle(job), nil
}

// After runs task once when delay has passed.
func (s *Scheduler) After(delay time.Duration, task func()) (stopwatch.Handle, error) {
	if delay <= 0 {
		return nil, ErrInvalidInterval
	}

	job, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(s.clock.Now().Add(delay))),
		gocron.NewTask(task),
		gocron.WithName("after"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delayed job: %w", err)
	}
	return s.handle(job), nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) handle(job gocron.Job) *handle {
	return &handle{scheduler: s, job: job}
}

type handle struct {
	scheduler *Scheduler
	job       gocron.Job
	once      sync.Once
}

// Cancel removes the job. Repeated calls and jobs that already finished
// are fine.
func (h *handle) Cancel() {
	h.once.Do(func() {
		err := h.scheduler.scheduler.RemoveJob(h.job.ID())
		if err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
			h.scheduler.log.Warn("failed to remove job", "job", h.job.Name(), "error", err)
		}
	})
}
