package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/app/server/api"
	"multistopwatch/internal/app/server/config"
	"multistopwatch/internal/utils/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "multistopwatch-server",
	Short: "HTTP-поверхность попапа MultiStopwatch",
	Long: `Открывает попап один раз на все время работы и отдает его
состояние и действия по HTTP на локальном адресе (RUN_ADDRESS).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func main() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "конфигурационный файл")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	log := logger.NewWithLevel(conf.Env, conf.LogLevel)

	app, err := popup.New(ctx, conf.Config, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("popup close failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    conf.RunAddress,
		Handler: api.New(app, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("popup server started", "address", conf.RunAddress, "storage", conf.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
