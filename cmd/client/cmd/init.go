// cmd/client/cmd/init.go
package cmd

import (
	"multistopwatch/cmd/client/cmd/stopwatch"
)

func init() {
	// Команды работы с секундомерами
	rootCmd.AddCommand(stopwatch.Commands()...)

	// Оболочка попапа
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeSetCmd)

	rootCmd.AddCommand(watchCmd)
}
