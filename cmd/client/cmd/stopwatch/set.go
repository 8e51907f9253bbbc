package stopwatch

import (
	"github.com/spf13/cobra"
)

var SetCmd = &cobra.Command{
	Use:   "set <номер|hash> <hh:mm:ss>",
	Short: "Задать время вручную",
	Long: `Задает время секундомера в формате hh:mm:ss (ровно две цифры в каждой части).
Запущенный секундомер ставится на паузу.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		sw, err := app.Resolve(args[0])
		if err != nil {
			return describe(args[0], err)
		}
		if err := sw.EditTime(args[1]); err != nil {
			return describe(args[0], err)
		}
		return printViews(cmd, app, sw.View())
	},
}
