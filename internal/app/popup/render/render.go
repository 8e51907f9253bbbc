package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/domain/stopwatch"
)

// Palette - цвета одной темы
type Palette struct {
	Title   *color.Color
	Running *color.Color
	Paused  *color.Color
	Alert   *color.Color
	Muted   *color.Color
}

func PaletteFor(theme popup.Theme) Palette {
	if theme == popup.ThemeDark {
		return Palette{
			Title:   color.New(color.FgHiWhite, color.Bold),
			Running: color.New(color.FgHiGreen),
			Paused:  color.New(color.FgHiYellow),
			Alert:   color.New(color.FgHiRed),
			Muted:   color.New(color.FgHiBlack),
		}
	}
	return Palette{
		Title:   color.New(color.FgBlue, color.Bold),
		Running: color.New(color.FgGreen),
		Paused:  color.New(color.FgYellow),
		Alert:   color.New(color.FgRed),
		Muted:   color.New(color.Faint),
	}
}

// Table печатает оболочку и карточки секундомеров в виде таблицы
func Table(w io.Writer, shell popup.Shell, views []stopwatch.View, p Palette) error {
	if _, err := fmt.Fprintln(w, p.Title.Sprint(shell.Title)); err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(w, p.Muted.Sprint(shell.Labels["labels.empty"]))
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "#\t%s\t\t\t%s\tHash\t\n", shell.Labels["labels.name"], shell.Labels["labels.updatedAt"])
		for i, v := range views {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				i+1, v.Name, v.Time, status(shell, v, p), v.UpdatedAt, v.Hash)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		for i, v := range views {
			if v.Alert != "" {
				fmt.Fprintf(w, "%d: %s\n", i+1, p.Alert.Sprint(v.Alert))
			}
		}
	}

	_, err := fmt.Fprintln(w, p.Muted.Sprintf("%s: %s | %s: %s",
		shell.About.Label, shell.About.URL, shell.Report.Label, shell.Report.URL))
	return err
}

// Card печатает один секундомер одной строкой
func Card(w io.Writer, shell popup.Shell, v stopwatch.View, p Palette) error {
	_, err := fmt.Fprintf(w, "%s  %s  %s  %s\n", v.Hash, v.Name, v.Time, status(shell, v, p))
	if err == nil && v.Alert != "" {
		_, err = fmt.Fprintln(w, p.Alert.Sprint(v.Alert))
	}
	return err
}

func status(shell popup.Shell, v stopwatch.View, p Palette) string {
	if v.Running {
		return p.Running.Sprint(shell.Labels["labels.running"])
	}
	return p.Paused.Sprint(shell.Labels["labels.paused"])
}
