package popup

import (
	"errors"
	"fmt"
)

const (
	AboutURL  = "https://github.com/olliveiragusttavo/counter-extension"
	ReportURL = "https://github.com/olliveiragusttavo/counter-extension/issues"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Shell - оболочка попапа вокруг списка секундомеров
type Shell struct {
	Title      string            `json:"title"`
	Locale     string            `json:"locale"`
	Theme      Theme             `json:"theme"`
	ThemeLabel string            `json:"theme_label"`
	About      Link              `json:"about"`
	Report     Link              `json:"report"`
	Labels     map[string]string `json:"labels"`
}

// shellLabels - подписи, которые нужны слою отрисовки
var shellLabels = []string{
	"labels.name",
	"labels.updatedAt",
	"labels.running",
	"labels.paused",
	"labels.empty",
	"labels.theme",
	"buttons.resumePause",
	"buttons.delete",
	"buttons.reset",
	"buttons.new",
}

func (a *App) Shell() Shell {
	theme := a.Theme()
	labels := make(map[string]string, len(shellLabels))
	for _, key := range shellLabels {
		labels[key] = a.lang.Resolve(key)
	}

	return Shell{
		Title:      a.lang.Resolve("labels.projectName"),
		Locale:     string(a.lang.Locale()),
		Theme:      theme,
		ThemeLabel: a.lang.Resolve("themes." + string(theme)),
		About:      Link{Label: a.lang.Resolve("labels.about"), URL: AboutURL},
		Report:     Link{Label: a.lang.Resolve("labels.report"), URL: ReportURL},
		Labels:     labels,
	}
}

// Theme возвращает сохраненную тему, светлую по умолчанию
func (a *App) Theme() Theme {
	t := a.themes.Get(a.cfg.ThemeKey())
	if _, err := ParseTheme(string(t)); err != nil {
		return ThemeLight
	}
	return t
}

func (a *App) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := a.themes.Store(a.cfg.ThemeKey(), t); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	a.log.Debug("theme changed", "theme", t)
	return nil
}

// ToggleTheme переключает светлую и темную тему и сохраняет выбор
func (a *App) ToggleTheme() (Theme, error) {
	next := a.Theme().Toggle()
	if err := a.SetTheme(next); err != nil {
		return a.Theme(), err
	}
	return next, nil
}
