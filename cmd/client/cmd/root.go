// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/config"
	"multistopwatch/internal/utils/logger"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	app        *popup.App
	debug      bool
	jsonOutput bool
	locale     string
	driver     string
)

var rootCmd = &cobra.Command{
	Use:   "multistopwatch",
	Short: "MultiStopwatch - несколько секундомеров в терминале",
	Long: `MultiStopwatch хранит список именованных секундомеров. Каждый можно
запускать, ставить на паузу, сбрасывать, переименовывать и задавать время вручную.

Состояние сохраняется после каждой операции. Запущенные секундомеры продолжают
считать между вызовами: прошедшее время добавляется при следующем открытии.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	// PersistentPostRun не вызывается при ошибке команды, поэтому закрываем здесь
	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if locale != "" {
		cfg.Locale = locale
	}
	if driver != "" {
		cfg.StorageDriver = driver
	}

	// Настраиваем логгер
	log = logger.NewWithLevel(cfg.Env, logLevel())

	// Создаем приложение: одна сессия попапа на вызов команды
	app, err = popup.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(popup.WithApp(cmd.Context(), app))
	return nil
}

// logLevel - в терминале по умолчанию только предупреждения, чтобы не мешать выводу
func logLevel() string {
	if debug {
		return "debug"
	}
	if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		return cfg.LogLevel
	}
	return "warn"
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "язык интерфейса (en, pt-BR)")
	rootCmd.PersistentFlags().StringVar(&driver, "storage", "", "хранилище: file, sqlite, postgres, memory")

	// Команды добавляются в init.go
}
