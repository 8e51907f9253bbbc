package stopwatch

import (
	"strings"

	"github.com/spf13/cobra"
)

var NewCmd = &cobra.Command{
	Use:   "new [имя]",
	Short: "Создать секундомер",
	Long: `Создает секундомер на паузе с временем 00:00:00 и сразу сохраняет его.
Без имени используется имя по умолчанию для текущей локали.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		sw, err := app.Stopwatches().Create()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if err := sw.Rename(strings.Join(args, " ")); err != nil {
				return err
			}
		}
		return printViews(cmd, app, sw.View())
	},
}
