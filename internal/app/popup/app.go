package popup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/config"
	"multistopwatch/internal/domain/i18n"
	"multistopwatch/internal/domain/stopwatch"
	"multistopwatch/internal/infrastructure/scheduler"
	"multistopwatch/internal/infrastructure/storage/kv"
)

// App - одна открытая сессия попапа: коллекция секундомеров, оболочка
// (заголовок, ссылки, тема) и ресурсы, которые нужно освободить в Close
type App struct {
	cfg  *config.Config
	log  *slog.Logger
	lang *i18n.Lang

	themes       *kv.Adapter[Theme]
	stopwatches  *stopwatch.Collection
	stopSched    func() error
	closeBackend func() error

	closeOnce sync.Once
	closeErr  error
}

// Deps - зависимости для NewWithDeps. Пустые поля получают значения по умолчанию.
type Deps struct {
	Config    *config.Config
	Log       *slog.Logger
	Backend   kv.Backend
	Scheduler stopwatch.Scheduler
	Clock     clockwork.Clock
	Lang      *i18n.Lang
}

// New открывает хранилище из конфигурации, запускает планировщик и
// восстанавливает сохраненные секундомеры
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	backend, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.StorageDriver,
		Dir:         cfg.ConfigDir,
		DatabaseURI: cfg.DatabaseURI,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	sched, err := scheduler.New(log)
	if err != nil {
		backend.Close()
		return nil, err
	}
	sched.Start()

	app, err := newApp(Deps{
		Config:    cfg,
		Log:       log,
		Backend:   backend,
		Scheduler: sched,
	}, sched.Stop, backend.Close)
	if err != nil {
		sched.Stop()
		backend.Close()
		return nil, err
	}
	return app, nil
}

// NewWithDeps собирает приложение из готовых зависимостей (используется в тестах).
// Хранилищем и планировщиком владеет вызывающий, Close их не закрывает.
func NewWithDeps(d Deps) (*App, error) {
	return newApp(d, nil, nil)
}

func newApp(d Deps, stopSched, closeBackend func() error) (*App, error) {
	if d.Config == nil {
		return nil, errors.New("config is required")
	}
	if d.Backend == nil || d.Scheduler == nil {
		return nil, errors.New("backend and scheduler are required")
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Lang == nil {
		d.Lang = i18n.New(localeSignal(d.Config))
	}

	log := d.Log.With("component", "popup")
	store := kv.NewAdapter[[]stopwatch.Record](d.Backend, d.Log, d.Config.StoreTimeout)

	coll, err := stopwatch.Open(&stopwatch.Deps{
		Repo:       stopwatch.NewRepository(store, d.Config.StorageKey),
		Scheduler:  d.Scheduler,
		Clock:      d.Clock,
		Lang:       d.Lang,
		Log:        d.Log,
		AlertDelay: d.Config.AlertDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки секундомеров: %w", err)
	}

	log.Debug("popup opened",
		"locale", d.Lang.Locale(),
		"driver", d.Config.StorageDriver,
		"stopwatches", coll.Len(),
		"running", coll.RunningCount(),
	)

	return &App{
		cfg:         d.Config,
		log:         log,
		lang:        d.Lang,
		themes:       kv.NewAdapter[Theme](d.Backend, d.Log, d.Config.StoreTimeout),
		stopwatches:  coll,
		stopSched:    stopSched,
		closeBackend: closeBackend,
	}, nil
}

// localeSignal - LOCALE из конфигурации, иначе переменные окружения POSIX
func localeSignal(cfg *config.Config) string {
	if cfg.Locale != "" {
		return cfg.Locale
	}
	return i18n.Detect(os.Getenv)
}

func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Log() *slog.Logger { return a.log }

func (a *App) Lang() *i18n.Lang { return a.lang }

func (a *App) Stopwatches() *stopwatch.Collection { return a.stopwatches }

// Resolve находит секундомер по номеру, hash или префиксу hash
func (a *App) Resolve(ref string) (*stopwatch.Stopwatch, error) {
	sw, err := a.stopwatches.Find(ref)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", ref, err)
	}
	return sw, nil
}

// Close закрывает попап: тики и оповещения отменяются без записи в хранилище
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.stopwatches.Close()

		var errs []error
		if a.stopSched != nil {
			if err := a.stopSched(); err != nil {
				errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
			}
		}
		if a.closeBackend != nil {
			if err := a.closeBackend(); err != nil {
				errs = append(errs, fmt.Errorf("close storage: %w", err))
			}
		}
		a.closeErr = errors.Join(errs...)
		a.log.Debug("popup closed")
	})
	return a.closeErr
}
