package stopwatch

import (
	"strings"

	"github.com/spf13/cobra"
)

var RenameCmd = &cobra.Command{
	Use:   "rename <номер|hash> [имя]",
	Short: "Переименовать секундомер",
	Long:  `Пустое имя возвращает имя по умолчанию.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		sw, err := app.Resolve(args[0])
		if err != nil {
			return describe(args[0], err)
		}
		if err := sw.Rename(strings.Join(args[1:], " ")); err != nil {
			return describe(args[0], err)
		}
		return printViews(cmd, app, sw.View())
	},
}
