package stopwatch

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/domain/i18n"
)

// memStore - хранилище в памяти для тестов
type memStore struct {
	mu      sync.Mutex
	data    map[string][]Record
	sets    int
	failSet bool
}

func newMemStore(key string, records ...Record) *memStore {
	s := &memStore{data: map[string][]Record{}}
	if len(records) > 0 {
		s.data[key] = append([]Record(nil), records...)
	}
	return s
}

func (m *memStore) Get(key string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record{}, m.data[key]...)
}

func (m *memStore) Set(key string, records []Record) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return false
	}
	m.sets++
	m.data[key] = append([]Record(nil), records...)
	return true
}

func (m *memStore) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// fakeTask - задача ручного планировщика
type fakeTask struct {
	every     bool
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (t *fakeTask) Cancel() { t.cancelled = true }

// manualScheduler запускает задачи только по явному вызову из теста
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (s *manualScheduler) Every(interval time.Duration, task func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTask{every: true, delay: interval, fn: task}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *manualScheduler) After(delay time.Duration, task func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTask{delay: delay, fn: task}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *manualScheduler) active(every bool) []*fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTask
	for _, t := range s.tasks {
		if t.every == every && !t.cancelled {
			out = append(out, t)
		}
	}
	return out
}

// tick fires every active recurring task n times
func (s *manualScheduler) tick(n int) {
	for i := 0; i < n; i++ {
		for _, t := range s.active(true) {
			t.fn()
		}
	}
}

// fireAlerts runs pending one-shot tasks once
func (s *manualScheduler) fireAlerts() {
	for _, t := range s.active(false) {
		t.cancelled = true
		t.fn()
	}
}

// recordingDisplay запоминает последнее представление по hash
type recordingDisplay struct {
	mu      sync.Mutex
	views   map[string]View
	removed []string
	calls   int
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{views: map[string]View{}}
}

func (d *recordingDisplay) Refresh(v View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.views[v.Hash] = v
	d.calls++
}

func (d *recordingDisplay) Remove(hash string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.views, hash)
	d.removed = append(d.removed, hash)
}

func (d *recordingDisplay) view(hash string) View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.views[hash]
}

var baseTime = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *memStore
	sched *manualScheduler
	clock *clockwork.FakeClock
	deps  *Deps
}

func newFixture(t *testing.T, records ...Record) *fixture {
	t.Helper()

	store := newMemStore(DefaultStorageKey, records...)
	sched := &manualScheduler{}
	clock := clockwork.NewFakeClockAt(baseTime)

	return &fixture{
		store: store,
		sched: sched,
		clock: clock,
		deps: &Deps{
			Repo:      NewRepository(store, DefaultStorageKey),
			Scheduler: sched,
			Clock:     clock,
			Lang:      i18n.New("en"),
			Log:       slog.Default(),
			Hashes:    &HashGenerator{},
		},
	}
}

func (f *fixture) stored() []Record {
	return f.store.Get(DefaultStorageKey)
}

func (f *fixture) storedByHash(hash string) (Record, bool) {
	for _, r := range f.stored() {
		if r.Hash == hash {
			return r, true
		}
	}
	return Record{}, false
}

func at(t time.Time) *time.Time { return &t }
