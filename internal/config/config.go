package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	NotifyService  NotifyServiceConfig  `toml:"notify_service"`
	Sweeps         SweepsConfig         `toml:"sweeps"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     int    `toml:"read_timeout_seconds"`
	WriteTimeout    int    `toml:"write_timeout_seconds"`
	ShutdownTimeout int    `toml:"shutdown_timeout_seconds"`
}

// Addr возвращает адрес для net/http в формате host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	Name            string `toml:"name"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime_minutes"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration время жизни соединения в пуле
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Minute
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig настройки клиента каталога (мастера, услуги, филиалы)
type CatalogServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout_seconds"`
}

// NotifyServiceConfig настройки клиента уведомлений
type NotifyServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout_seconds"`
}

// SweepsConfig cron-расписания фоновых задач
type SweepsConfig struct {
	Enabled          bool   `toml:"enabled"`
	RemindersSpec    string `toml:"reminders_spec"`
	ReviewsSpec      string `toml:"reviews_spec"`
	AutoCompleteSpec string `toml:"auto_complete_spec"`
	NoShowSpec       string `toml:"no_show_spec"`
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config.Load - failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load - invalid config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Sweeps: SweepsConfig{
			Enabled:          true,
			RemindersSpec:    "*/15 * * * *",
			ReviewsSpec:      "*/30 * * * *",
			AutoCompleteSpec: "0 * * * *",
			NoShowSpec:       "*/30 * * * *",
		},
	}
}

func (c *Config) validate() error {
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.CatalogService.BaseURL == "" {
		return fmt.Errorf("catalog_service.base_url is required")
	}
	if c.NotifyService.BaseURL == "" {
		return fmt.Errorf("notify_service.base_url is required")
	}
	return nil
}
