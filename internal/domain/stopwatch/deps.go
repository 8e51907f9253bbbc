package stopwatch

import (
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/slog"
)

const (
	DefaultStorageKey = "counter_extension-stopwatch"
	DefaultAlertDelay = 5000 * time.Millisecond
	TickInterval      = time.Second
)

// Handle - владеющая ссылка на запланированную задачу. Cancel идемпотентен.
type Handle interface {
	Cancel()
}

// Scheduler планирует повторяющиеся тики и отложенные задачи
type Scheduler interface {
	Every(interval time.Duration, task func()) (Handle, error)
	After(delay time.Duration, task func()) (Handle, error)
}

// Translator возвращает строку интерфейса по плоскому пути
type Translator interface {
	Resolve(path string) string
	FormatDateTime(t time.Time) string
}

// Display получает обновленное визуальное представление секундомера
type Display interface {
	Refresh(v View)
}

// Remover - необязательное расширение Display: убрать карточку удаленного секундомера
type Remover interface {
	Remove(hash string)
}

// Deps - общие зависимости всех секундомеров одной коллекции
type Deps struct {
	Repo       *Repository
	Scheduler  Scheduler
	Clock      clockwork.Clock
	Lang       Translator
	Log        *slog.Logger
	AlertDelay time.Duration
	Hashes     *HashGenerator
}

var defaultHashes = &HashGenerator{}

// plainLang используется, когда словарь не передан: путь возвращается как есть
type plainLang struct{}

func (plainLang) Resolve(path string) string { return path }

func (plainLang) FormatDateTime(t time.Time) string { return t.Local().Format(time.DateTime) }

func (d *Deps) withDefaults() *Deps {
	out := *d
	if out.Clock == nil {
		out.Clock = clockwork.NewRealClock()
	}
	if out.Log == nil {
		out.Log = slog.Default()
	}
	if out.AlertDelay <= 0 {
		out.AlertDelay = DefaultAlertDelay
	}
	if out.Hashes == nil {
		out.Hashes = defaultHashes
	}
	if out.Lang == nil {
		out.Lang = plainLang{}
	}
	return &out
}
