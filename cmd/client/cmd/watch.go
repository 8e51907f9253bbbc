package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/app/popup/render"
	"multistopwatch/internal/domain/stopwatch"
)

const watchHelp = "n [имя] | t|s|p|r|d <N> | name <N> <имя> | set <N> hh:mm:ss | theme | q"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Открыть попап в терминале",
	Long: `Показывает все секундомеры и обновляет их каждую секунду.
Команды вводятся строкой и применяются по Enter:

  n [имя]             новый секундомер
  t <N>               запустить или поставить на паузу
  s <N>, p <N>        запустить, поставить на паузу
  r <N>               сбросить время
  d <N>               удалить
  name <N> <имя>      переименовать
  set <N> hh:mm:ss    задать время
  theme               переключить тему
  q                   выйти (также Ctrl+C)

<N> - номер в списке или префикс hash.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tty := term.IsTerminal(int(os.Stdout.Fd()))
		screen := render.NewTerminal(cmd.OutOrStdout(), app.Shell(), tty)
		screen.SetFooter(watchHelp)
		app.Stopwatches().Attach(screen)

		lines := readLines(cmd.Context(), cmd.InOrStdin())
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				msg, quit := dispatch(app, screen, line)
				if quit {
					return nil
				}
				if msg == "" {
					msg = watchHelp
				}
				screen.SetFooter(msg)
			}
		}
	},
}

// readLines читает ввод в отдельной горутине; канал закрывается на EOF
// или после отмены ctx
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// dispatch выполняет одну строку команд попапа. Возвращает сообщение для
// нижней строки экрана и признак выхода.
func dispatch(a *popup.App, screen *render.Terminal, line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "q", "quit", "exit":
		return "", true
	case "h", "help":
		return watchHelp, false
	case "theme":
		if _, err := a.ToggleTheme(); err != nil {
			return err.Error(), false
		}
		screen.SetShell(a.Shell())
		return "", false
	case "n", "new":
		sw, err := a.Stopwatches().Create()
		if err != nil {
			return err.Error(), false
		}
		if len(args) > 0 {
			if err := sw.Rename(strings.Join(args, " ")); err != nil {
				return err.Error(), false
			}
		}
		return "", false
	}

	if len(args) == 0 {
		return fmt.Sprintf("%s: нужен номер секундомера", name), false
	}
	ref := args[0]
	sw, err := a.Resolve(ref)
	if err != nil {
		return fmt.Sprintf("секундомер %q не найден", ref), false
	}

	switch name {
	case "t", "toggle":
		_, err = sw.Toggle()
	case "s", "start":
		err = sw.Start()
	case "p", "pause":
		err = sw.Pause()
	case "r", "reset":
		err = sw.Reset()
	case "d", "delete", "rm":
		err = a.Stopwatches().Delete(sw.Hash())
	case "name", "rename":
		err = sw.Rename(strings.Join(args[1:], " "))
	case "set":
		if len(args) < 2 {
			return "set: нужно время hh:mm:ss", false
		}
		err = sw.EditTime(args[1])
	default:
		return fmt.Sprintf("неизвестная команда %q", name), false
	}

	var verr *stopwatch.ValidationError
	switch {
	case err == nil:
		return "", false
	case errors.As(err, &verr):
		return verr.Message, false
	case errors.Is(err, stopwatch.ErrAlreadyRunning), errors.Is(err, stopwatch.ErrNotRunning):
		// повторное нажатие ничего не меняет
		return "", false
	}
	return err.Error(), false
}
