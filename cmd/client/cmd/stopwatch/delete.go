package stopwatch

import (
	"fmt"

	"github.com/spf13/cobra"

	"multistopwatch/internal/domain/stopwatch"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete <номер|hash>...",
	Aliases: []string{"rm"},
	Short:   "Удалить секундомеры",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		// номера считаются до удаления, поэтому сначала находим все
		targets := make([]*stopwatch.Stopwatch, 0, len(args))
		for _, ref := range args {
			sw, err := app.Resolve(ref)
			if err != nil {
				return describe(ref, err)
			}
			targets = append(targets, sw)
		}

		for i, sw := range targets {
			if err := app.Stopwatches().Delete(sw.Hash()); err != nil {
				return describe(args[i], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Lang().Resolve("buttons.delete"), sw.Hash())
		}
		return nil
	},
}
