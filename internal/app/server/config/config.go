package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"multistopwatch/internal/config"
)

const (
	defaultRunAddress      = "127.0.0.1:8088"
	defaultShutdownTimeout = 5 * time.Second
)

// Config - общая конфигурация плюс настройки HTTP-сервера попапа
type Config struct {
	*config.Config
	RunAddress      string
	ShutdownTimeout time.Duration
}

func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load(configFile string) (*Config, error) {
	base, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)

	cfg := &Config{
		Config:          base,
		RunAddress:      v.GetString("RUN_ADDRESS"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if cfg.RunAddress == "" {
		return nil, errors.New("run_address не может быть пустым")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return cfg, nil
}
