package stopwatch

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Stopwatch is one live stopwatch. Time advances only through its own tick
// while the instance exists; the gap while no instance existed is added back
// at construction (reconciliation) when the record was left running.
type Stopwatch struct {
	deps *Deps
	log  *slog.Logger

	mu        sync.Mutex
	hash      string
	name      string
	seconds   int64
	running   bool
	updatedAt *time.Time
	deleted   bool
	closed    bool

	tick    Handle
	tickGen uint64

	alert     string
	alertTask Handle
	alertGen  uint64

	display Display
}

// New builds a stopwatch from a stored record, or a fresh one when prior is
// nil. A running record is reconciled and restarted (which persists it);
// a fresh stopwatch is persisted right away.
func New(deps *Deps, prior *Record) (*Stopwatch, error) {
	return build(deps.withDefaults(), prior, "")
}

func build(d *Deps, prior *Record, fresh string) (*Stopwatch, error) {
	now := d.Clock.Now()

	s := &Stopwatch{deps: d, hash: fresh}
	if prior != nil {
		s.hash = prior.Hash
		s.name = prior.Name
		s.seconds = prior.Time
		s.running = prior.Status
		if prior.UpdatedAt != nil {
			t := *prior.UpdatedAt
			s.updatedAt = &t
		}
	}

	if s.hash == "" {
		s.hash = d.Hashes.Next(now)
	}
	if s.name == "" {
		s.name = d.Lang.Resolve("defaults.name")
	}
	if s.seconds < 0 {
		s.seconds = 0
	}
	s.log = d.Log.With("component", "stopwatch", "hash", s.hash)

	if s.running && s.updatedAt != nil {
		gap := reconcile(now, *s.updatedAt)
		s.seconds += gap
		s.log.Debug("reconciled elapsed time", "gap_seconds", gap, "time", s.seconds)
	}

	if s.running {
		s.running = false

		s.mu.Lock()
		err := s.startLocked()
		s.mu.Unlock()
		if err != nil {
			return s, err
		}
	}

	if prior == nil {
		s.mu.Lock()
		s.persistLocked()
		s.mu.Unlock()
	}

	return s, nil
}

// reconcile returns the whole seconds between the last commit and now.
// The distance is absolute, so a clock moved backwards still adds time.
func reconcile(now, updated time.Time) int64 {
	return int64(math.Round(math.Abs(now.Sub(updated).Seconds())))
}

func (s *Stopwatch) Hash() string {
	return s.hash
}

// Attach binds the stopwatch to a rendering target and draws it once.
func (s *Stopwatch) Attach(d Display) {
	s.mu.Lock()
	s.display = d
	v := s.viewLocked()
	s.mu.Unlock()

	if d != nil {
		d.Refresh(v)
	}
}

// Start moves Paused -> Running: persists, then ticks once per second.
func (s *Stopwatch) Start() error {
	return s.mutate(func(_ *[]Handle) error {
		if s.running {
			return ErrAlreadyRunning
		}
		return s.startLocked()
	})
}

// Pause moves Running -> Paused and releases the tick.
func (s *Stopwatch) Pause() error {
	return s.mutate(func(released *[]Handle) error {
		if !s.running {
			return ErrNotRunning
		}
		s.pauseLocked(released)
		return nil
	})
}

// Toggle is the single resume/pause control. It reports the new state.
func (s *Stopwatch) Toggle() (bool, error) {
	var running bool
	err := s.mutate(func(released *[]Handle) error {
		if s.running {
			s.pauseLocked(released)
		} else if err := s.startLocked(); err != nil {
			return err
		}
		running = s.running
		return nil
	})
	return running, err
}

// Reset zeroes the time. A running tick keeps going.
func (s *Stopwatch) Reset() error {
	return s.mutate(func(_ *[]Handle) error {
		s.seconds = 0
		s.persistLocked()
		return nil
	})
}

// Rename sets the label; an empty name falls back to the localized default.
func (s *Stopwatch) Rename(name string) error {
	return s.mutate(func(_ *[]Handle) error {
		if name == "" {
			name = s.deps.Lang.Resolve("defaults.name")
		}
		s.name = name
		s.persistLocked()
		return nil
	})
}

// EditTime applies a manual "hh:mm:ss" value. A malformed value leaves the
// time untouched and shows a transient alert that dismisses itself.
func (s *Stopwatch) EditTime(input string) error {
	return s.mutate(func(released *[]Handle) error {
		seconds, err := ParseTime(input)
		if err != nil {
			msg := s.deps.Lang.Resolve("alerts.inputTime")
			s.showAlertLocked(msg, released)
			s.log.Debug("rejected manual time", "input", input)
			return &ValidationError{Err: ErrInvalidTime, Input: input, Message: msg}
		}

		if s.running {
			s.pauseLocked(released)
		}
		s.seconds = seconds
		s.persistLocked()
		s.clearAlertLocked(released)
		return nil
	})
}

// Delete removes the record from the store and discards the instance.
func (s *Stopwatch) Delete() error {
	s.mu.Lock()
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	var released []Handle
	s.releaseLocked(&released)
	s.deleted = true
	s.running = false
	ok := s.deps.Repo.Remove(s.hash)
	d := s.display
	s.display = nil
	s.mu.Unlock()

	cancelAll(released)
	if !ok {
		s.log.Warn("stopwatch deletion was not persisted")
	}
	if d != nil {
		if r, ok := d.(Remover); ok {
			r.Remove(s.hash)
		}
	}

	s.log.Info("stopwatch deleted")
	return nil
}

// Release drops every scheduled task without touching stored state, as when
// the popup hosting this instance goes away.
func (s *Stopwatch) Release() {
	s.mu.Lock()
	if s.closed || s.deleted {
		s.mu.Unlock()
		return
	}
	var released []Handle
	s.releaseLocked(&released)
	s.closed = true
	s.display = nil
	s.mu.Unlock()

	cancelAll(released)
}

// Running reports whether the stopwatch owns an active tick.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Stopwatch) Seconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}

func (s *Stopwatch) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// View returns the current visual representation.
func (s *Stopwatch) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Record returns a snapshot in persisted form.
func (s *Stopwatch) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked()
}

func (s *Stopwatch) mutate(fn func(released *[]Handle) error) error {
	s.mu.Lock()
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	var released []Handle
	err := fn(&released)
	v, d := s.viewLocked(), s.display
	s.mu.Unlock()

	cancelAll(released)
	if d != nil {
		d.Refresh(v)
	}
	return err
}

func (s *Stopwatch) usableLocked() error {
	switch {
	case s.deleted:
		return ErrDeleted
	case s.closed:
		return ErrClosed
	}
	return nil
}

func (s *Stopwatch) startLocked() error {
	s.tickGen++
	gen := s.tickGen

	h, err := s.deps.Scheduler.Every(TickInterval, func() { s.onTick(gen) })
	if err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}

	s.tick = h
	s.running = true
	s.persistLocked()
	return nil
}

func (s *Stopwatch) pauseLocked(released *[]Handle) {
	s.running = false
	s.persistLocked()

	if s.tick != nil {
		*released = append(*released, s.tick)
		s.tick = nil
	}
	s.tickGen++
}

func (s *Stopwatch) releaseLocked(released *[]Handle) {
	if s.tick != nil {
		*released = append(*released, s.tick)
		s.tick = nil
	}
	if s.alertTask != nil {
		*released = append(*released, s.alertTask)
		s.alertTask = nil
	}
	s.tickGen++
	s.alertGen++
}

func (s *Stopwatch) onTick(gen uint64) {
	s.mu.Lock()
	if !s.running || s.deleted || s.closed || gen != s.tickGen {
		s.mu.Unlock()
		return
	}
	s.seconds++
	v, d := s.viewLocked(), s.display
	s.mu.Unlock()

	if d != nil {
		d.Refresh(v)
	}
}

func (s *Stopwatch) showAlertLocked(msg string, released *[]Handle) {
	s.clearAlertLocked(released)
	s.alert = msg

	gen := s.alertGen
	h, err := s.deps.Scheduler.After(s.deps.AlertDelay, func() { s.dismissAlert(gen) })
	if err != nil {
		s.log.Warn("failed to schedule alert dismissal", "error", err)
		return
	}
	s.alertTask = h
}

func (s *Stopwatch) clearAlertLocked(released *[]Handle) {
	if s.alertTask != nil {
		*released = append(*released, s.alertTask)
		s.alertTask = nil
	}
	s.alert = ""
	s.alertGen++
}

func (s *Stopwatch) dismissAlert(gen uint64) {
	s.mu.Lock()
	if s.deleted || s.closed || gen != s.alertGen {
		s.mu.Unlock()
		return
	}
	s.alert = ""
	s.alertTask = nil
	v, d := s.viewLocked(), s.display
	s.mu.Unlock()

	if d != nil {
		d.Refresh(v)
	}
}

func (s *Stopwatch) persistLocked() {
	now := s.deps.Clock.Now().UTC()
	rec := s.recordLocked()
	rec.UpdatedAt = &now

	if !s.deps.Repo.Save(rec) {
		s.log.Warn("stopwatch state was not persisted")
		return
	}
	s.updatedAt = &now
}

func (s *Stopwatch) recordLocked() Record {
	rec := Record{
		Hash:   s.hash,
		Name:   s.name,
		Time:   s.seconds,
		Status: s.running,
	}
	if s.updatedAt != nil {
		t := *s.updatedAt
		rec.UpdatedAt = &t
	}
	return rec
}

func (s *Stopwatch) viewLocked() View {
	v := View{
		Hash:    s.hash,
		Name:    s.name,
		Time:    FormatTime(s.seconds),
		Seconds: s.seconds,
		Running: s.running,
		Alert:   s.alert,
	}
	if s.updatedAt != nil {
		t := *s.updatedAt
		v.Updated = &t
		v.UpdatedAt = s.deps.Lang.FormatDateTime(t)
	}
	return v
}

func cancelAll(handles []Handle) {
	for _, h := range handles {
		h.Cancel()
	}
}
