package config

import (
	"testing"
	"time"

	"github.com/cuongbtq/job-search-be/internal/adzuna"
	"github.com/cuongbtq/job-search-be/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAdzunaAppID, "app-id")
			t.Setenv(EnvAdzunaAPIKey, "app-key")

			cfg, err := Load(tt.filePath)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			assert.Equal(t, 8080, cfg.Server.Port)
			assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
			assert.Equal(t, "sg", cfg.Adzuna.Country)
			assert.Equal(t, 15*time.Second, cfg.Adzuna.Timeout)
			assert.Equal(t, "app-id", cfg.Adzuna.AppID)
			assert.Equal(t, "app-key", cfg.Adzuna.AppKey)
			assert.True(t, cfg.Events.Enabled)
			assert.Equal(t, "search_events", cfg.RabbitMQ.Exchange)
			assert.Equal(t, "search_history", cfg.RabbitMQ.Queue)
			assert.Equal(t, "job_search", cfg.Database.Database)
			assert.Equal(t, 2, cfg.Worker.Concurrency)
			assert.Equal(t, "job-search-api", cfg.App.Name)
		})
	}
}

func TestApplyDefaults_MatchesClientAndPolicyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	policy := search.DefaultQueryPolicy()
	assert.Equal(t, search.QueryPolicy{
		Country:        cfg.Adzuna.Country,
		Page:           cfg.Adzuna.Page,
		ResultsPerPage: cfg.Adzuna.ResultsPerPage,
		MaxDaysOld:     cfg.Adzuna.MaxDaysOld,
		SortBy:         cfg.Adzuna.SortBy,
	}, policy)
	assert.Equal(t, adzuna.DefaultBaseURL, cfg.Adzuna.BaseURL)
	assert.Equal(t, adzuna.DefaultTimeout, cfg.Adzuna.Timeout)
	assert.Equal(t, adzuna.DefaultMaxBodyBytes, cfg.Adzuna.MaxBodyBytes)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(EnvAdzunaAppID, "")
	t.Setenv(EnvAdzunaAPIKey, "")

	cfg, err := Load("testdata/minimal_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "https://api.adzuna.com/v1/api/jobs", cfg.Adzuna.BaseURL)
	assert.Equal(t, "sg", cfg.Adzuna.Country)
	assert.Equal(t, 1, cfg.Adzuna.Page)
	assert.Equal(t, 20, cfg.Adzuna.ResultsPerPage)
	assert.Equal(t, 30, cfg.Adzuna.MaxDaysOld)
	assert.Equal(t, "date", cfg.Adzuna.SortBy)
	assert.Equal(t, int64(1<<20), cfg.Adzuna.MaxBodyBytes)
	assert.False(t, cfg.Search.SurfaceUpstreamErrors)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "direct", cfg.RabbitMQ.ExchangeType)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
}

func TestLoadCredentials(t *testing.T) {
	env := map[string]string{
		EnvAdzunaAppID:  "my-app",
		EnvAdzunaAPIKey: "my-key",
	}

	cfg := &Config{}
	cfg.LoadCredentials(func(key string) string { return env[key] })

	assert.Equal(t, "my-app", cfg.Adzuna.AppID)
	assert.Equal(t, "my-key", cfg.Adzuna.AppKey)
}

func validAPIConfig() *Config {
	cfg := &Config{
		Adzuna: AdzunaConfig{AppID: "app-id", AppKey: "app-key"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func validWorkerConfig() *Config {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "job_search",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			Exchange: "search_events",
			Queue:    "search_history",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfig_ValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "missing app id",
			mutate:    func(c *Config) { c.Adzuna.AppID = "" },
			wantErr:   true,
			errString: "ADZUNA_APP_ID is required",
		},
		{
			name:      "missing api key",
			mutate:    func(c *Config) { c.Adzuna.AppKey = "" },
			wantErr:   true,
			errString: "ADZUNA_API_KEY is required",
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = -1 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "events enabled without rabbitmq",
			mutate:    func(c *Config) { c.Events.Enabled = true },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name: "events enabled with rabbitmq",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.RabbitMQ.Host = "localhost"
				c.RabbitMQ.Port = 5672
				c.RabbitMQ.Exchange = "search_events"
				c.RabbitMQ.Queue = "search_history"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAPIConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name:      "invalid rabbitmq port",
			mutate:    func(c *Config) { c.RabbitMQ.Port = 0 },
			wantErr:   true,
			errString: "invalid rabbitmq port",
		},
		{
			name:      "empty exchange",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange = "" },
			wantErr:   true,
			errString: "rabbitmq exchange is required",
		},
		{
			name:      "empty queue",
			mutate:    func(c *Config) { c.RabbitMQ.Queue = "" },
			wantErr:   true,
			errString: "rabbitmq queue is required",
		},
		{
			name:      "negative concurrency",
			mutate:    func(c *Config) { c.Worker.Concurrency = -1 },
			wantErr:   true,
			errString: "worker concurrency must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validWorkerConfig()
			tt.mutate(cfg)

			err := cfg.ValidateWorkerConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Setenv(EnvAdzunaAppID, "app-id")
	t.Setenv(EnvAdzunaAPIKey, "app-key")

	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)

		require.NoError(t, cfg.ValidateAPIConfig())
		require.NoError(t, cfg.ValidateWorkerConfig())
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing database", func(t *testing.T) {
		cfg, err := Load("testdata/missing_database.yaml")
		require.NoError(t, err)

		err = cfg.ValidateWorkerConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database name is required")
	})

	t.Run("missing credentials fail fast", func(t *testing.T) {
		t.Setenv(EnvAdzunaAppID, "")

		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvAdzunaAppID)
	})
}
