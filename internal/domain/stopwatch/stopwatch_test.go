package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Fresh(t *testing.T) {
	f := newFixture(t)

	sw, err := New(f.deps, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, sw.Hash())
	assert.Equal(t, "stopwatch", sw.Name())
	assert.Equal(t, int64(0), sw.Seconds())
	assert.False(t, sw.Running())
	assert.Empty(t, f.sched.active(true))

	// новый секундомер сохраняется сразу
	rec, ok := f.storedByHash(sw.Hash())
	require.True(t, ok)
	assert.Equal(t, int64(0), rec.Time)
	assert.False(t, rec.Status)
	require.NotNil(t, rec.UpdatedAt)
	assert.True(t, rec.UpdatedAt.Equal(baseTime))
}

func TestNew_Reconciliation(t *testing.T) {
	tests := []struct {
		name        string
		record      Record
		advance     time.Duration
		wantTime    int64
		wantRunning bool
		wantWrites  int
	}{
		{
			name:       "paused record is frozen",
			record:     Record{Hash: "a", Name: "a", Time: 10, Status: false, UpdatedAt: at(baseTime)},
			advance:    100 * time.Second,
			wantTime:   10,
			wantWrites: 0,
		},
		{
			name:        "running record adds the gap",
			record:      Record{Hash: "b", Name: "b", Time: 10, Status: true, UpdatedAt: at(baseTime)},
			advance:     100 * time.Second,
			wantTime:    110,
			wantRunning: true,
			wantWrites:  1,
		},
		{
			name:        "gap is rounded to whole seconds",
			record:      Record{Hash: "c", Name: "c", Time: 0, Status: true, UpdatedAt: at(baseTime)},
			advance:     2500 * time.Millisecond,
			wantTime:    3,
			wantRunning: true,
			wantWrites:  1,
		},
		{
			name:        "running without updated_at has no prior session",
			record:      Record{Hash: "d", Name: "d", Time: 7, Status: true},
			advance:     time.Hour,
			wantTime:    7,
			wantRunning: true,
			wantWrites:  1,
		},
		{
			name:        "clock moved backwards still adds time",
			record:      Record{Hash: "e", Name: "e", Time: 5, Status: true, UpdatedAt: at(baseTime.Add(200 * time.Second))},
			advance:     100 * time.Second,
			wantTime:    105,
			wantRunning: true,
			wantWrites:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, tt.record)
			f.clock.Advance(tt.advance)
			rec := tt.record

			// Act
			sw, err := New(f.deps, &rec)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, sw.Seconds())
			assert.Equal(t, tt.wantRunning, sw.Running())
			assert.Equal(t, tt.wantWrites, f.store.setCount())
			if tt.wantRunning {
				assert.Len(t, f.sched.active(true), 1)
				stored, ok := f.storedByHash(rec.Hash)
				require.True(t, ok)
				assert.True(t, stored.Status)
				assert.Equal(t, tt.wantTime, stored.Time)
				assert.True(t, stored.UpdatedAt.Equal(f.clock.Now()))
			} else {
				assert.Empty(t, f.sched.active(true))
			}
		})
	}
}

func TestNew_RunningReopenKeepsTicking(t *testing.T) {
	// time=10, status=true, updated_at=T, reopened at T+100 -> 110 and ticking;
	// 10 more ticks while open bring it to 120
	rec := Record{Hash: "x", Name: "x", Time: 10, Status: true, UpdatedAt: at(baseTime)}
	f := newFixture(t, rec)
	f.clock.Advance(100 * time.Second)

	sw, err := New(f.deps, &rec)
	require.NoError(t, err)
	f.sched.tick(10)

	assert.Equal(t, int64(120), sw.Seconds())
	assert.True(t, sw.Running())
}

func TestNew_DefaultsAndClamp(t *testing.T) {
	f := newFixture(t)
	rec := Record{Hash: "neg", Time: -40}

	sw, err := New(f.deps, &rec)
	require.NoError(t, err)

	assert.Equal(t, int64(0), sw.Seconds())
	assert.Equal(t, "stopwatch", sw.Name())
	assert.Equal(t, "neg", sw.Hash())
}

func TestStopwatch_StartPause(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)
	writes := f.store.setCount()

	require.NoError(t, sw.Start())
	assert.True(t, sw.Running())
	assert.Len(t, f.sched.active(true), 1)
	assert.Equal(t, writes+1, f.store.setCount())

	// тики не пишут в хранилище
	f.sched.tick(5)
	assert.Equal(t, int64(5), sw.Seconds())
	assert.Equal(t, writes+1, f.store.setCount())

	assert.ErrorIs(t, sw.Start(), ErrAlreadyRunning)
	assert.Len(t, f.sched.active(true), 1)

	require.NoError(t, sw.Pause())
	assert.False(t, sw.Running())
	assert.Empty(t, f.sched.active(true))

	rec, ok := f.storedByHash(sw.Hash())
	require.True(t, ok)
	assert.False(t, rec.Status)
	assert.Equal(t, int64(5), rec.Time)

	assert.ErrorIs(t, sw.Pause(), ErrNotRunning)
}

func TestStopwatch_StaleTickIgnored(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)

	require.NoError(t, sw.Start())
	stale := f.sched.active(true)[0]
	require.NoError(t, sw.Pause())
	require.NoError(t, sw.Start())

	// колбэк старого тика, успевший стартовать до отмены, не должен считать время
	stale.fn()
	assert.Equal(t, int64(0), sw.Seconds())

	f.sched.tick(1)
	assert.Equal(t, int64(1), sw.Seconds())
}

func TestStopwatch_Toggle(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)

	running, err := sw.Toggle()
	require.NoError(t, err)
	assert.True(t, running)

	running, err = sw.Toggle()
	require.NoError(t, err)
	assert.False(t, running)
	assert.Empty(t, f.sched.active(true))
}

func TestStopwatch_Reset(t *testing.T) {
	t.Run("paused", func(t *testing.T) {
		f := newFixture(t, Record{Hash: "p", Name: "p", Time: 500, UpdatedAt: at(baseTime)})
		rec := f.stored()[0]
		sw, err := New(f.deps, &rec)
		require.NoError(t, err)

		require.NoError(t, sw.Reset())

		assert.Equal(t, int64(0), sw.Seconds())
		stored, _ := f.storedByHash("p")
		assert.Equal(t, int64(0), stored.Time)
	})

	t.Run("running keeps ticking", func(t *testing.T) {
		f := newFixture(t)
		sw, err := New(f.deps, nil)
		require.NoError(t, err)
		require.NoError(t, sw.Start())
		f.sched.tick(30)

		require.NoError(t, sw.Reset())

		assert.True(t, sw.Running())
		assert.Len(t, f.sched.active(true), 1)
		stored, _ := f.storedByHash(sw.Hash())
		assert.Equal(t, int64(0), stored.Time)
		assert.True(t, stored.Status)

		f.sched.tick(2)
		assert.Equal(t, int64(2), sw.Seconds())
	})
}

func TestStopwatch_Rename(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	require.NoError(t, sw.Rename("deep work"))

	rec, _ := f.storedByHash(sw.Hash())
	assert.Equal(t, "deep work", rec.Name)
	assert.True(t, rec.UpdatedAt.Equal(baseTime.Add(time.Minute)))

	require.NoError(t, sw.Rename(""))
	assert.Equal(t, "stopwatch", sw.Name())
}

func TestStopwatch_EditTime(t *testing.T) {
	t.Run("valid input pauses and persists", func(t *testing.T) {
		f := newFixture(t)
		sw, err := New(f.deps, nil)
		require.NoError(t, err)
		require.NoError(t, sw.Start())

		require.NoError(t, sw.EditTime("01:02:03"))

		assert.Equal(t, int64(3723), sw.Seconds())
		assert.False(t, sw.Running())
		assert.Empty(t, f.sched.active(true))
		rec, _ := f.storedByHash(sw.Hash())
		assert.Equal(t, int64(3723), rec.Time)
		assert.False(t, rec.Status)
	})

	for _, input := range []string{"1:2:3", "aa:bb:cc"} {
		t.Run("rejects "+input, func(t *testing.T) {
			f := newFixture(t)
			sw, err := New(f.deps, nil)
			require.NoError(t, err)
			require.NoError(t, sw.Start())
			f.sched.tick(4)
			writes := f.store.setCount()

			err = sw.EditTime(input)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.ErrorIs(t, err, ErrInvalidTime)
			assert.Equal(t, "Incorrect time format. Expected 00:00:00 format", verr.Message)
			assert.Equal(t, int64(4), sw.Seconds())
			assert.True(t, sw.Running())
			assert.Equal(t, writes, f.store.setCount())
			assert.Equal(t, verr.Message, sw.View().Alert)

			alerts := f.sched.active(false)
			require.Len(t, alerts, 1)
			assert.Equal(t, DefaultAlertDelay, alerts[0].delay)

			f.sched.fireAlerts()
			assert.Empty(t, sw.View().Alert)
		})
	}

	t.Run("valid input clears pending alert", func(t *testing.T) {
		f := newFixture(t)
		sw, err := New(f.deps, nil)
		require.NoError(t, err)

		require.Error(t, sw.EditTime("bad"))
		require.Len(t, f.sched.active(false), 1)

		require.NoError(t, sw.EditTime("00:00:10"))
		assert.Empty(t, sw.View().Alert)
		assert.Empty(t, f.sched.active(false))
	})

	t.Run("repeated invalid input keeps one alert task", func(t *testing.T) {
		f := newFixture(t)
		sw, err := New(f.deps, nil)
		require.NoError(t, err)

		require.Error(t, sw.EditTime("bad"))
		require.Error(t, sw.EditTime("worse"))

		assert.Len(t, f.sched.active(false), 1)
	})
}

func TestStopwatch_Delete(t *testing.T) {
	records := []Record{
		{Hash: "h1", Name: "one", Time: 1},
		{Hash: "h2", Name: "two", Time: 2, Status: true, UpdatedAt: at(baseTime)},
		{Hash: "h3", Name: "three", Time: 3},
	}
	f := newFixture(t, records...)
	rec := records[1]
	sw, err := New(f.deps, &rec)
	require.NoError(t, err)
	require.Error(t, sw.EditTime("nope"))
	display := newRecordingDisplay()
	sw.Attach(display)

	require.NoError(t, sw.Delete())

	stored := f.stored()
	assert.Len(t, stored, 2)
	for _, r := range stored {
		assert.NotEqual(t, "h2", r.Hash)
	}
	assert.Empty(t, f.sched.active(true))
	assert.Empty(t, f.sched.active(false))
	assert.Equal(t, []string{"h2"}, display.removed)

	assert.ErrorIs(t, sw.Start(), ErrDeleted)
	assert.ErrorIs(t, sw.Reset(), ErrDeleted)
	assert.ErrorIs(t, sw.Delete(), ErrDeleted)
}

func TestStopwatch_Release(t *testing.T) {
	rec := Record{Hash: "r", Name: "r", Time: 9, Status: true, UpdatedAt: at(baseTime)}
	f := newFixture(t, rec)
	sw, err := New(f.deps, &rec)
	require.NoError(t, err)
	require.Error(t, sw.EditTime("x"))
	writes := f.store.setCount()
	before, _ := f.storedByHash("r")

	sw.Release()

	assert.Empty(t, f.sched.active(true))
	assert.Empty(t, f.sched.active(false))
	assert.Equal(t, writes, f.store.setCount())
	after, _ := f.storedByHash("r")
	assert.Equal(t, before, after)
	assert.True(t, after.Status)
	assert.ErrorIs(t, sw.Pause(), ErrClosed)

	// повторное освобождение ничего не делает
	sw.Release()
}

func TestStopwatch_DisplayRefresh(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)
	display := newRecordingDisplay()

	sw.Attach(display)
	assert.Equal(t, "00:00:00", display.view(sw.Hash()).Time)

	require.NoError(t, sw.Start())
	f.sched.tick(65)

	v := display.view(sw.Hash())
	assert.Equal(t, "00:01:05", v.Time)
	assert.True(t, v.Running)
	assert.Equal(t, baseTime.Local().Format("01/02/2006, 15:04:05"), v.UpdatedAt)
}

func TestStopwatch_StoreFailureIsOptimistic(t *testing.T) {
	f := newFixture(t)
	sw, err := New(f.deps, nil)
	require.NoError(t, err)
	f.store.failSet = true

	require.NoError(t, sw.Rename("offline"))
	require.NoError(t, sw.Start())

	assert.Equal(t, "offline", sw.Name())
	assert.True(t, sw.Running())
	rec, _ := f.storedByHash(sw.Hash())
	assert.Equal(t, "stopwatch", rec.Name)
}

func TestHashGenerator_Distinct(t *testing.T) {
	g := &HashGenerator{}
	now := baseTime

	a := g.Next(now)
	b := g.Next(now)
	c := g.Next(now.Add(-time.Second))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}

func TestRepository_SaveReplacesAndAppends(t *testing.T) {
	store := newMemStore(DefaultStorageKey,
		Record{Hash: "a", Time: 1},
		Record{Hash: "b", Time: 2},
	)
	repo := NewRepository(store, "")

	require.True(t, repo.Save(Record{Hash: "a", Time: 10}))

	all := repo.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Hash)
	assert.Equal(t, "a", all[1].Hash)
	assert.Equal(t, int64(10), all[1].Time)

	require.True(t, repo.Remove("b"))
	assert.Len(t, repo.All(), 1)
	assert.Equal(t, DefaultStorageKey, repo.Key())
}
