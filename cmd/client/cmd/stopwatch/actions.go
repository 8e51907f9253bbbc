package stopwatch

import (
	"github.com/spf13/cobra"

	"multistopwatch/internal/domain/stopwatch"
)

// action строит команду, которая применяет fn к каждому указанному секундомеру
func action(use, short string, fn func(*stopwatch.Stopwatch) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <номер|hash>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			views := make([]stopwatch.View, 0, len(args))
			for _, ref := range args {
				sw, err := app.Resolve(ref)
				if err != nil {
					return describe(ref, err)
				}
				if err := fn(sw); err != nil {
					return describe(ref, err)
				}
				views = append(views, sw.View())
			}
			return printViews(cmd, app, views...)
		},
	}
}

var (
	StartCmd = action("start", "Запустить секундомер", (*stopwatch.Stopwatch).Start)
	PauseCmd = action("pause", "Поставить секундомер на паузу", (*stopwatch.Stopwatch).Pause)
	ResetCmd = action("reset", "Сбросить время (запущенный продолжает идти)", (*stopwatch.Stopwatch).Reset)

	ToggleCmd = action("toggle", "Запустить или поставить на паузу", func(sw *stopwatch.Stopwatch) error {
		_, err := sw.Toggle()
		return err
	})
)
