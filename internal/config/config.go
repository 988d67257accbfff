package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Salon     SalonConfig     `toml:"salon"`
	Cache     CacheConfig     `toml:"cache"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig параметры HTTP-сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonConfig бизнес-параметры салона
type SalonConfig struct {
	Timezone             string `toml:"timezone"`
	FullTimeWeeklyHours  string `toml:"full_time_weekly_hours"`
	StatutoryHolidayDays string `toml:"statutory_holiday_days"`
}

// Location часовой пояс салона
func (c SalonConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// FullTimeHours порог полной ставки в часах в неделю
func (c SalonConfig) FullTimeHours() decimal.Decimal {
	return decimal.RequireFromString(c.FullTimeWeeklyHours)
}

// StatutoryDays установленное законом количество дней отпуска
func (c SalonConfig) StatutoryDays() decimal.Decimal {
	return decimal.RequireFromString(c.StatutoryHolidayDays)
}

// CacheConfig параметры LRU-кэша реестров
type CacheConfig struct {
	Size       int `toml:"size"`
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL время жизни записи
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SchedulerConfig расписания фоновых задач в стандартном пятипольном cron-формате
type SchedulerConfig struct {
	Enabled           bool   `toml:"enabled"`
	QuotaRolloverSpec string `toml:"quota_rollover_spec"`
	CostBackfillSpec  string `toml:"cost_backfill_spec"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-salonservice",
		},
		Salon: SalonConfig{
			Timezone:             "Europe/London",
			FullTimeWeeklyHours:  "37.5",
			StatutoryHolidayDays: "28",
		},
		Cache: CacheConfig{
			Size:       64,
			TTLSeconds: 60,
		},
		Scheduler: SchedulerConfig{
			Enabled:           true,
			QuotaRolloverSpec: "5 0 1 1 *",
			CostBackfillSpec:  "30 2 * * *",
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port: invalid port %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database: host and dbname are required"))
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path: required when metrics are enabled"))
	}
	if _, err := c.Salon.Location(); err != nil {
		errs = append(errs, fmt.Errorf("salon.timezone: %v", err))
	}
	if d, err := decimal.NewFromString(c.Salon.FullTimeWeeklyHours); err != nil || !d.IsPositive() {
		errs = append(errs, fmt.Errorf("salon.full_time_weekly_hours: must be a positive number, got %q", c.Salon.FullTimeWeeklyHours))
	}
	if d, err := decimal.NewFromString(c.Salon.StatutoryHolidayDays); err != nil || d.IsNegative() {
		errs = append(errs, fmt.Errorf("salon.statutory_holiday_days: must be a non-negative number, got %q", c.Salon.StatutoryHolidayDays))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("cache.size: must be positive"))
	}
	if c.Scheduler.Enabled && (c.Scheduler.QuotaRolloverSpec == "" || c.Scheduler.CostBackfillSpec == "") {
		errs = append(errs, errors.New("scheduler: cron specs are required when scheduler is enabled"))
	}

	return errors.Join(errs...)
}
