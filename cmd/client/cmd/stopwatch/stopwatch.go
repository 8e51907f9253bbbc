package stopwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/app/popup/render"
	"multistopwatch/internal/domain/stopwatch"
)

// Commands - команды работы с секундомерами; добавляются в корень в init.go
func Commands() []*cobra.Command {
	return []*cobra.Command{
		NewCmd, ListCmd, StartCmd, PauseCmd, ToggleCmd, ResetCmd, RenameCmd, SetCmd, DeleteCmd,
	}
}

func appFrom(cmd *cobra.Command) (*popup.App, error) {
	app, ok := popup.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

// printViews печатает одну или несколько карточек в выбранном формате
func printViews(cmd *cobra.Command, app *popup.App, views ...stopwatch.View) error {
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return writeJSON(out, views)
	}

	shell := app.Shell()
	palette := render.PaletteFor(shell.Theme)
	for _, v := range views {
		if err := render.Card(out, shell, v, palette); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe делает ошибку домена понятной в терминале
func describe(ref string, err error) error {
	var verr *stopwatch.ValidationError
	switch {
	case errors.As(err, &verr):
		return errors.New(verr.Message)
	case errors.Is(err, stopwatch.ErrNotFound):
		return fmt.Errorf("секундомер %q не найден", ref)
	case errors.Is(err, stopwatch.ErrAlreadyRunning):
		return fmt.Errorf("секундомер %q уже запущен", ref)
	case errors.Is(err, stopwatch.ErrNotRunning):
		return fmt.Errorf("секундомер %q уже на паузе", ref)
	}
	return err
}
