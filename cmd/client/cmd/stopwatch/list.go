package stopwatch

import (
	"github.com/spf13/cobra"

	"multistopwatch/internal/app/popup/render"
)

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Список секундомеров",
	Long: `Показывает все секундомеры в порядке загрузки. Номер в первой колонке
можно использовать вместо hash в остальных командах.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		views := app.Stopwatches().Views()
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), views)
		}

		shell := app.Shell()
		return render.Table(cmd.OutOrStdout(), shell, views, render.PaletteFor(shell.Theme))
	},
}
