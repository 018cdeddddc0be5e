package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cuongbtq/job-search-be/internal/adzuna"
	"github.com/cuongbtq/job-search-be/internal/search"
	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535

	// EnvAdzunaAppID holds the Adzuna application identifier
	EnvAdzunaAppID = "ADZUNA_APP_ID"
	// EnvAdzunaAPIKey holds the Adzuna API key
	EnvAdzunaAPIKey = "ADZUNA_API_KEY"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	App      AppConfig      `yaml:"app"`
	Adzuna   AdzunaConfig   `yaml:"adzuna"`
	Search   SearchConfig   `yaml:"search"`
	Events   EventsConfig   `yaml:"events"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// AdzunaConfig holds the job provider settings. Credentials are never read
// from the file, only from the environment.
type AdzunaConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Country        string        `yaml:"country"`
	Page           int           `yaml:"page"`
	ResultsPerPage int           `yaml:"results_per_page"`
	MaxDaysOld     int           `yaml:"max_days_old"`
	SortBy         string        `yaml:"sort_by"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	AppID          string        `yaml:"-"`
	AppKey         string        `yaml:"-"`
}

// SearchConfig holds search endpoint behaviour
type SearchConfig struct {
	// SurfaceUpstreamErrors answers 502 instead of an empty list when the
	// provider call fails.
	SurfaceUpstreamErrors bool `yaml:"surface_upstream_errors"`
}

// EventsConfig toggles search event publishing from the API service
type EventsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange/queue configuration
type RabbitMQConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	User          string        `yaml:"user"`
	Password      string        `yaml:"password"`
	VHost         string        `yaml:"vhost"`
	Exchange      string        `yaml:"exchange"`
	ExchangeType  string        `yaml:"exchange_type"`
	Queue         string        `yaml:"queue"`
	RoutingKey    string        `yaml:"routing_key"`
	Durable       bool          `yaml:"durable"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	Heartbeat     time.Duration `yaml:"heartbeat"`
	PrefetchCount int           `yaml:"prefetch_count"`
}

// WorkerConfig holds search-history worker configuration
type WorkerConfig struct {
	Concurrency     int           `yaml:"concurrency"`
	EventTimeout    time.Duration `yaml:"event_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Load reads and parses the configuration file, fills defaults and picks up
// the provider credentials from the environment.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.ApplyDefaults()
	config.LoadCredentials(os.Getenv)

	return &config, nil
}

// LoadCredentials reads the provider credentials through getenv
func (c *Config) LoadCredentials(getenv func(string) string) {
	c.Adzuna.AppID = getenv(EnvAdzunaAppID)
	c.Adzuna.AppKey = getenv(EnvAdzunaAPIKey)
}

// ApplyDefaults fills zero values with their documented defaults
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	policy := search.DefaultQueryPolicy()
	if c.Adzuna.BaseURL == "" {
		c.Adzuna.BaseURL = adzuna.DefaultBaseURL
	}
	if c.Adzuna.Country == "" {
		c.Adzuna.Country = policy.Country
	}
	if c.Adzuna.Page == 0 {
		c.Adzuna.Page = policy.Page
	}
	if c.Adzuna.ResultsPerPage == 0 {
		c.Adzuna.ResultsPerPage = policy.ResultsPerPage
	}
	if c.Adzuna.MaxDaysOld == 0 {
		c.Adzuna.MaxDaysOld = policy.MaxDaysOld
	}
	if c.Adzuna.SortBy == "" {
		c.Adzuna.SortBy = policy.SortBy
	}
	if c.Adzuna.Timeout == 0 {
		c.Adzuna.Timeout = adzuna.DefaultTimeout
	}
	if c.Adzuna.MaxBodyBytes == 0 {
		c.Adzuna.MaxBodyBytes = adzuna.DefaultMaxBodyBytes
	}

	if c.RabbitMQ.ExchangeType == "" {
		c.RabbitMQ.ExchangeType = "direct"
	}
	if c.RabbitMQ.RetryAttempts == 0 {
		c.RabbitMQ.RetryAttempts = 5
	}
	if c.RabbitMQ.RetryInterval == 0 {
		c.RabbitMQ.RetryInterval = 2 * time.Second
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Worker.Concurrency == 0 {
		c.Worker.Concurrency = 4
	}
	if c.Worker.EventTimeout == 0 {
		c.Worker.EventTimeout = 5 * time.Second
	}
	if c.Worker.ShutdownTimeout == 0 {
		c.Worker.ShutdownTimeout = 15 * time.Second
	}
}

// ValidateAPIConfig checks the settings the API service needs
func (c *Config) ValidateAPIConfig() error {
	if c.Adzuna.AppID == "" {
		return fmt.Errorf("%s is required", EnvAdzunaAppID)
	}

	if c.Adzuna.AppKey == "" {
		return fmt.Errorf("%s is required", EnvAdzunaAPIKey)
	}

	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Adzuna.ResultsPerPage < 1 {
		return fmt.Errorf("adzuna results_per_page must be greater than 0")
	}

	if c.Adzuna.MaxDaysOld < 1 {
		return fmt.Errorf("adzuna max_days_old must be greater than 0")
	}

	if c.Events.Enabled {
		if err := c.validateRabbitMQ(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateWorkerConfig checks the settings the worker service needs
func (c *Config) ValidateWorkerConfig() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if err := c.validateRabbitMQ(); err != nil {
		return err
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be greater than 0")
	}

	if c.Worker.EventTimeout <= 0 {
		return fmt.Errorf("worker event_timeout must be greater than 0")
	}

	return nil
}

func (c *Config) validateRabbitMQ() error {
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange == "" {
		return fmt.Errorf("rabbitmq exchange is required")
	}

	if c.RabbitMQ.Queue == "" {
		return fmt.Errorf("rabbitmq queue is required")
	}

	return nil
}
