package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"multistopwatch/internal/app/popup"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Показать текущую тему",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		printTheme(cmd)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Переключить светлую и темную тему",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := app.ToggleTheme(); err != nil {
			return fmt.Errorf("ошибка сохранения темы: %w", err)
		}
		printTheme(cmd)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Выбрать тему",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(popup.ThemeLight), string(popup.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := popup.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := app.SetTheme(theme); err != nil {
			return fmt.Errorf("ошибка сохранения темы: %w", err)
		}
		printTheme(cmd)
		return nil
	},
}

func printTheme(cmd *cobra.Command) {
	shell := app.Shell()
	if jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "{\"theme\": %q}\n", shell.Theme)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", shell.Labels["labels.theme"], shell.ThemeLabel)
}
