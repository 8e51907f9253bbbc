package popup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multistopwatch/internal/config"
	"multistopwatch/internal/domain/i18n"
	"multistopwatch/internal/domain/stopwatch"
	"multistopwatch/internal/infrastructure/storage/kv"
)

type fakeJob struct {
	mu        sync.Mutex
	fn        func()
	every     bool
	cancelled bool
}

func (j *fakeJob) Cancel() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancelled = true
}

func (j *fakeJob) active() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return !j.cancelled
}

type fakeScheduler struct {
	mu   sync.Mutex
	jobs []*fakeJob
}

func (s *fakeScheduler) Every(_ time.Duration, task func()) (stopwatch.Handle, error) {
	return s.add(task, true), nil
}

func (s *fakeScheduler) After(_ time.Duration, task func()) (stopwatch.Handle, error) {
	return s.add(task, false), nil
}

func (s *fakeScheduler) add(task func(), every bool) *fakeJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &fakeJob{fn: task, every: every}
	s.jobs = append(s.jobs, j)
	return j
}

func (s *fakeScheduler) tick() {
	s.mu.Lock()
	jobs := append([]*fakeJob(nil), s.jobs...)
	s.mu.Unlock()
	for _, j := range jobs {
		if j.every && j.active() {
			j.fn()
		}
	}
}

func (s *fakeScheduler) activeTicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, j := range s.jobs {
		if j.every && j.active() {
			n++
		}
	}
	return n
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           config.EnvLocal,
		StorageDriver: kv.DriverMemory,
		ConfigDir:     "unused",
		StorageKey:    stopwatch.DefaultStorageKey,
		AlertDelay:    stopwatch.DefaultAlertDelay,
		StoreTimeout:  time.Second,
	}
}

type session struct {
	backend kv.Backend
	sched   *fakeScheduler
	clock   *clockwork.FakeClock
}

func newSession(t *testing.T) *session {
	t.Helper()
	return &session{
		backend: kv.NewMemory(),
		clock:   clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
	}
}

// open открывает новый попап поверх того же хранилища
func (s *session) open(t *testing.T, locale string) *App {
	t.Helper()
	s.sched = &fakeScheduler{}
	app, err := NewWithDeps(Deps{
		Config:    testConfig(),
		Backend:   s.backend,
		Scheduler: s.sched,
		Clock:     s.clock,
		Lang:      i18n.New(locale),
	})
	require.NoError(t, err)
	return app
}

func TestApp_Lifecycle(t *testing.T) {
	s := newSession(t)

	// первый попап: создать и запустить
	app := s.open(t, "en")
	assert.Equal(t, 0, app.Stopwatches().Len())
	sw, err := app.Stopwatches().Create()
	require.NoError(t, err)
	require.NoError(t, sw.Start())
	for i := 0; i < 5; i++ {
		s.sched.tick()
	}
	assert.Equal(t, int64(5), sw.Seconds())

	// закрытие попапа отменяет тик
	require.NoError(t, app.Close())
	assert.Equal(t, 0, s.sched.activeTicks())

	// секундомер был сохранен при старте с time=0: тики в хранилище не пишутся
	s.clock.Advance(90 * time.Second)
	app = s.open(t, "en")
	defer app.Close()

	got, err := app.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, sw.Hash(), got.Hash())
	assert.True(t, got.Running())
	assert.Equal(t, int64(90), got.Seconds())
	assert.Equal(t, 1, s.sched.activeTicks())
}

func TestApp_Resolve(t *testing.T) {
	s := newSession(t)
	app := s.open(t, "en")
	defer app.Close()

	_, err := app.Resolve("7")
	assert.ErrorIs(t, err, stopwatch.ErrNotFound)
}

func TestApp_Shell(t *testing.T) {
	tests := []struct {
		locale    string
		title     string
		newButton string
	}{
		{locale: "en-US", title: "MultiStopwatch", newButton: "New"},
		{locale: "pt_BR.UTF-8", title: "MultiCronômetro", newButton: "Novo"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			app := newSession(t).open(t, tt.locale)
			defer app.Close()

			shell := app.Shell()

			assert.Equal(t, tt.title, shell.Title)
			assert.Equal(t, tt.newButton, shell.Labels["buttons.new"])
			assert.Equal(t, AboutURL, shell.About.URL)
			assert.Equal(t, ReportURL, shell.Report.URL)
			assert.Equal(t, ThemeLight, shell.Theme)
		})
	}
}

func TestApp_Theme(t *testing.T) {
	s := newSession(t)
	app := s.open(t, "en")

	theme, err := app.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, "Dark", app.Shell().ThemeLabel)
	require.NoError(t, app.Close())

	// выбор темы переживает закрытие попапа
	app = s.open(t, "en")
	defer app.Close()
	assert.Equal(t, ThemeDark, app.Theme())

	assert.ErrorIs(t, app.SetTheme("sepia"), ErrUnknownTheme)
	theme, err = app.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestApp_CorruptThemeFallsBack(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.backend.Put(context.Background(), "counter_extension-stopwatch-theme", []byte(`"neon"`)))

	app := s.open(t, "en")
	defer app.Close()

	assert.Equal(t, ThemeLight, app.Theme())
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	app := newSession(t).open(t, "en")

	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
}

func TestApp_CloseLeavesInjectedBackendOpen(t *testing.T) {
	s := newSession(t)
	app := s.open(t, "en")
	_, err := app.Stopwatches().Create()
	require.NoError(t, err)

	require.NoError(t, app.Close())

	// хранилище принадлежит вызывающему и остается доступным
	_, err = s.backend.Get(context.Background(), stopwatch.DefaultStorageKey)
	require.NoError(t, err)
	require.NoError(t, s.backend.Put(context.Background(), "other-key", []byte(`"x"`)))
}

func TestContext(t *testing.T) {
	app := newSession(t).open(t, "en")
	defer app.Close()

	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	got, ok := FromContext(WithApp(context.Background(), app))
	require.True(t, ok)
	assert.Same(t, app, got)
}

func TestNewWithDeps_Validation(t *testing.T) {
	_, err := NewWithDeps(Deps{})
	assert.Error(t, err)

	_, err = NewWithDeps(Deps{Config: testConfig()})
	assert.Error(t, err)
}
