package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"multistopwatch/internal/domain/stopwatch"
	"multistopwatch/internal/infrastructure/storage/kv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultEnv          = EnvLocal
	defaultLogLevel     = "info"
	defaultConfigDir    = ".multistopwatch"
	defaultAlertDelayMS = 5000
	defaultStoreTimeout = 2000
	configFileName      = "config.yaml"
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	LogLevel      string        `mapstructure:"log_level"`
	Locale        string        `mapstructure:"locale"`
	StorageDriver string        `mapstructure:"storage_driver"`
	ConfigDir     string        `mapstructure:"config_dir"`
	DatabaseURI   string        `mapstructure:"database_uri"`
	StorageKey    string        `mapstructure:"storage_key"`
	AlertDelay    time.Duration `mapstructure:"-"`
	StoreTimeout  time.Duration `mapstructure:"-"`
}

// MustLoad загружает конфигурацию и паникует, если она некорректна
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и необязательный YAML-файл.
// Пустой configFile означает <CONFIG_DIR>/config.yaml, если он есть.
func Load(configFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOCALE", "")
	v.SetDefault("STORAGE_DRIVER", kv.DriverFile)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("DATABASE_URI", "")
	v.SetDefault("STORAGE_KEY", stopwatch.DefaultStorageKey)
	v.SetDefault("ALERT_DELAY_MS", defaultAlertDelayMS)
	v.SetDefault("STORE_TIMEOUT_MS", defaultStoreTimeout)

	configDir := resolveDir(v.GetString("CONFIG_DIR"))

	if configFile == "" {
		candidate := filepath.Join(configDir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// каталог мог быть переопределен в файле
		configDir = resolveDir(v.GetString("CONFIG_DIR"))
	}

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Locale:        v.GetString("LOCALE"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		ConfigDir:     configDir,
		DatabaseURI:   v.GetString("DATABASE_URI"),
		StorageKey:    v.GetString("STORAGE_KEY"),
		AlertDelay:    time.Duration(v.GetInt("ALERT_DELAY_MS")) * time.Millisecond,
		StoreTimeout:  time.Duration(v.GetInt("STORE_TIMEOUT_MS")) * time.Millisecond,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

// resolveDir переносит относительный каталог по умолчанию в домашнюю директорию
func resolveDir(dir string) string {
	if dir != defaultConfigDir {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, dir)
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("app_env должен быть одним из local, dev, prod: %q", c.Env)
	}
	if !slices.Contains(kv.Drivers, c.StorageDriver) {
		return fmt.Errorf("%w: %q", kv.ErrUnknownDriver, c.StorageDriver)
	}
	if c.StorageDriver == kv.DriverPostgres && c.DatabaseURI == "" {
		return errors.New("database_uri обязателен для драйвера postgres")
	}
	if c.ConfigDir == "" {
		return errors.New("config_dir не может быть пустым")
	}
	if c.StorageKey == "" {
		return errors.New("storage_key не может быть пустым")
	}
	if c.AlertDelay <= 0 {
		return errors.New("alert_delay_ms должен быть положительным")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("store_timeout_ms должен быть положительным")
	}
	return nil
}

// ThemeKey - ключ, под которым хранится выбранная тема
func (c *Config) ThemeKey() string {
	return c.StorageKey + "-theme"
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
