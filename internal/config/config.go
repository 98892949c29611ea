package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	LockRetries  int    `toml:"lock_retries"`
	RetryDelayMs int    `toml:"retry_delay_ms"`
}

type KafkaConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	WriteTimeoutMs int      `toml:"write_timeout_ms"`
}

// DayHours переопределение часов работы на день недели
type DayHours struct {
	Closed    bool   `toml:"closed"`
	OpenTime  string `toml:"open_time"`
	CloseTime string `toml:"close_time"`
}

type SchedulingConfig struct {
	DefaultOpenTime            string              `toml:"default_open_time"`
	DefaultCloseTime           string              `toml:"default_close_time"`
	Days                       map[string]DayHours `toml:"days"`
	DefaultPreflightMinutes    int                 `toml:"default_preflight_minutes"`
	DefaultPostflightMinutes   int                 `toml:"default_postflight_minutes"`
	DefaultSlotIntervalMinutes int                 `toml:"default_slot_interval_minutes"`
	DefaultOfferExpiresHours   int                 `toml:"default_offer_expires_hours"`
	LockTTLSeconds             int                 `toml:"lock_ttl_seconds"`
	TxMaxRetries               int                 `toml:"tx_max_retries"`
}

// WeeklySchedule собирает часы работы по дням недели
// Ключи days - английские имена дней в нижнем регистре (monday, tuesday, ...).
func (s SchedulingConfig) WeeklySchedule() (domain.WeeklySchedule, error) {
	var schedule domain.WeeklySchedule

	open, err := types.NewTimeStringFromString(s.DefaultOpenTime)
	if err != nil {
		return schedule, fmt.Errorf("scheduling.default_open_time: %w", err)
	}
	closeAt, err := types.NewTimeStringFromString(s.DefaultCloseTime)
	if err != nil {
		return schedule, fmt.Errorf("scheduling.default_close_time: %w", err)
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule[day] = domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closeAt}
	}

	for name, hours := range s.Days {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return schedule, fmt.Errorf("scheduling.days: unknown weekday %q", name)
		}
		if hours.Closed {
			schedule[day] = domain.DaySchedule{}
			continue
		}

		dayOpen, dayClose := open, closeAt
		if hours.OpenTime != "" {
			if dayOpen, err = types.NewTimeStringFromString(hours.OpenTime); err != nil {
				return schedule, fmt.Errorf("scheduling.days.%s.open_time: %w", name, err)
			}
		}
		if hours.CloseTime != "" {
			if dayClose, err = types.NewTimeStringFromString(hours.CloseTime); err != nil {
				return schedule, fmt.Errorf("scheduling.days.%s.close_time: %w", name, err)
			}
		}
		schedule[day] = domain.DaySchedule{IsOpen: true, OpenTime: dayOpen, CloseTime: dayClose}
	}

	return schedule, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "flight-scheduler",
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			LockRetries:  3,
			RetryDelayMs: 50,
		},
		Kafka: KafkaConfig{
			Topic:          "flight-scheduler.events",
			WriteTimeoutMs: 5000,
		},
		Scheduling: SchedulingConfig{
			DefaultOpenTime:            domain.DefaultOpenTime,
			DefaultCloseTime:           domain.DefaultCloseTime,
			DefaultPreflightMinutes:    domain.DefaultPreflightMinutes,
			DefaultPostflightMinutes:   domain.DefaultPostflightMinutes,
			DefaultSlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
			DefaultOfferExpiresHours:   domain.DefaultOfferExpiresHours,
			LockTTLSeconds:             10,
			TxMaxRetries:               3,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive, got %d", c.Server.HTTPPort)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers must not be empty when kafka is enabled")
	}
	s := c.Scheduling
	if s.DefaultPreflightMinutes < 0 || s.DefaultPreflightMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("scheduling.default_preflight_minutes must be within [0, %d]", domain.MaxBufferMinutes)
	}
	if s.DefaultPostflightMinutes < 0 || s.DefaultPostflightMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("scheduling.default_postflight_minutes must be within [0, %d]", domain.MaxBufferMinutes)
	}
	if s.DefaultOfferExpiresHours <= 0 {
		return fmt.Errorf("scheduling.default_offer_expires_hours must be positive")
	}
	if _, err := s.WeeklySchedule(); err != nil {
		return err
	}
	return nil
}
