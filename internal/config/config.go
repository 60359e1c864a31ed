package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация сервиса.
// Базовые значения читаются из toml файла, переменные окружения
// с префиксом APPOINTMENTS переопределяют их (для контейнерных сред).
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Notifications  NotificationsConfig  `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"DB_HOST"`
	Port            int    `toml:"port" envconfig:"DB_PORT"`
	User            string `toml:"user" envconfig:"DB_USER"`
	Password        string `toml:"password" envconfig:"DB_PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DB_NAME"`
	SSLMode         string `toml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"LOG_FILE"`
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"METRICS_ENABLED"`
	Path        string `toml:"path" envconfig:"METRICS_PATH"`
	ServiceName string `toml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// CatalogServiceConfig настройки клиента CatalogService
type CatalogServiceConfig struct {
	URL      string `toml:"url" envconfig:"CATALOG_SERVICE_URL"`
	Timeout  int    `toml:"timeout" envconfig:"CATALOG_SERVICE_TIMEOUT"`
	CacheTTL int    `toml:"cache_ttl" envconfig:"CATALOG_SERVICE_CACHE_TTL"`
}

// NotificationsConfig настройки email уведомлений
type NotificationsConfig struct {
	Enabled      bool   `toml:"enabled" envconfig:"NOTIFICATIONS_ENABLED"`
	SMTPHost     string `toml:"smtp_host" envconfig:"SMTP_HOST"`
	SMTPPort     int    `toml:"smtp_port" envconfig:"SMTP_PORT"`
	SMTPUser     string `toml:"smtp_user" envconfig:"SMTP_USER"`
	SMTPPassword string `toml:"smtp_password" envconfig:"SMTP_PASSWORD"`
	FromAddress  string `toml:"from_address" envconfig:"NOTIFICATIONS_FROM"`
}

// Load читает конфигурацию из toml файла и применяет переопределения
// из переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process("appointments", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.Notifications.Enabled && c.Notifications.SMTPHost == "" {
		return fmt.Errorf("config: notifications.smtp_host is required when notifications are enabled")
	}
	return nil
}
