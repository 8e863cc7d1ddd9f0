package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		errMsg  string
		check   func(*testing.T, *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.True(t, cfg.IsDevelopment())
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 3002, cfg.Server.Port)
				assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "dist", cfg.UI.StaticDir)
				assert.Equal(t, "http://127.0.0.1:3002", cfg.UI.APIBaseURL)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
				assert.Equal(t, "json", cfg.Observability.LogFormat)
				assert.True(t, cfg.Observability.MetricsEnabled)
				assert.Equal(t, 9090, cfg.Observability.MetricsPort)
				assert.False(t, cfg.Observability.TracingEnabled)
			},
		},
		{
			name: "NODE_ENV is honoured when ENVIRONMENT is unset",
			envVars: map[string]string{
				"NODE_ENV": "production",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
			},
		},
		{
			name: "ENVIRONMENT wins over NODE_ENV",
			envVars: map[string]string{
				"ENVIRONMENT": "staging",
				"NODE_ENV":    "production",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "staging", cfg.Environment)
				assert.False(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
			},
		},
		{
			name: "PORT env var takes precedence over SERVER_PORT",
			envVars: map[string]string{
				"PORT":        "9443",
				"SERVER_PORT": "9000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9443, cfg.Server.Port)
				assert.Equal(t, "http://127.0.0.1:9443", cfg.UI.APIBaseURL)
			},
		},
		{
			name: "SERVER_PORT env var when PORT not set",
			envVars: map[string]string{
				"SERVER_PORT": "9000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
			},
		},
		{
			name: "custom timeouts and UI settings",
			envVars: map[string]string{
				"SERVER_READ_TIMEOUT":  "60s",
				"SERVER_WRITE_TIMEOUT": "90s",
				"STATIC_DIR":           "/srv/www",
				"UI_API_BASE_URL":      "http://api.internal:8080",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "/srv/www", cfg.UI.StaticDir)
				assert.Equal(t, "http://api.internal:8080", cfg.UI.APIBaseURL)
			},
		},
		{
			name: "observability configuration",
			envVars: map[string]string{
				"LOG_LEVEL":           "debug",
				"LOG_FORMAT":          "console",
				"METRICS_ENABLED":     "true",
				"METRICS_PORT":        "9091",
				"TRACING_ENABLED":     "true",
				"TRACING_ENDPOINT":    "otel-collector:4317",
				"TRACING_SAMPLE_RATE": "0.5",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
				assert.Equal(t, "console", cfg.Observability.LogFormat)
				assert.Equal(t, 9091, cfg.Observability.MetricsPort)
				assert.True(t, cfg.Observability.TracingEnabled)
				assert.Equal(t, "otel-collector:4317", cfg.Observability.TracingEndpoint)
				assert.Equal(t, 0.5, cfg.Observability.TracingSampleRate)
			},
		},
		{
			name:    "non-numeric port is fatal",
			envVars: map[string]string{"PORT": "abc"},
			wantErr: true,
			errMsg:  "invalid PORT",
		},
		{
			name:    "port zero is rejected",
			envVars: map[string]string{"PORT": "0"},
			wantErr: true,
			errMsg:  "config validation failed",
		},
		{
			name:    "port above range is rejected",
			envVars: map[string]string{"SERVER_PORT": "70000"},
			wantErr: true,
			errMsg:  "config validation failed",
		},
		{
			name:    "unknown log level is rejected",
			envVars: map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "server on the default metrics port moves metrics aside",
			envVars: map[string]string{"PORT": "9090"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.True(t, cfg.Observability.MetricsEnabled)
				assert.Equal(t, 9091, cfg.Observability.MetricsPort)
			},
		},
		{
			name: "explicit metrics port colliding with server port",
			envVars: map[string]string{
				"PORT":         "9090",
				"METRICS_PORT": "9090",
			},
			wantErr: true,
			errMsg:  "collides",
		},
		{
			name: "metrics disabled allows any metrics port",
			envVars: map[string]string{
				"PORT":            "9090",
				"METRICS_PORT":    "9090",
				"METRICS_ENABLED": "false",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Observability.MetricsEnabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Environment: "development",
		Server:      ServerConfig{Host: "0.0.0.0", Port: 3002},
		UI:          UIConfig{APIBaseURL: "http://127.0.0.1:3002"},
		Observability: ObservabilityConfig{
			LogLevel:          "info",
			LogFormat:         "json",
			MetricsPort:       9090,
			TracingSampleRate: 0.1,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid development config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing log level",
			mutate:  func(c *Config) { c.Observability.LogLevel = "" },
			wantErr: true,
			errMsg:  "LogLevel",
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.Observability.TracingSampleRate = 1.5 },
			wantErr: true,
			errMsg:  "TracingSampleRate",
		},
		{
			name:    "api base url must be a url",
			mutate:  func(c *Config) { c.UI.APIBaseURL = "not a url" },
			wantErr: true,
			errMsg:  "APIBaseURL",
		},
		{
			name: "tracing enabled without endpoint",
			mutate: func(c *Config) {
				c.Observability.TracingEnabled = true
				c.Observability.TracingEndpoint = ""
			},
			wantErr: true,
			errMsg:  "tracing endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		want        bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.want, cfg.IsProduction())
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		want        bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"production", "production", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.want, cfg.IsDevelopment())
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{
		Host: "0.0.0.0",
		Port: 3002,
	}

	assert.Equal(t, "0.0.0.0:3002", cfg.Address())
}

func TestConfig_MetricsAddress(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, "0.0.0.0:9090", cfg.MetricsAddress())
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		value        string
		defaultValue int
		want         int
	}{
		{"valid int", "TEST_INT", "42", 10, 42},
		{"empty value", "TEST_INT", "", 10, 10},
		{"invalid int", "TEST_INT", "not-a-number", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv(tt.key, tt.value)
			}
			got := getEnvAsInt(tt.key, tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", "TEST_BOOL", "true", false, true},
		{"false", "TEST_BOOL", "false", true, false},
		{"empty value", "TEST_BOOL", "", true, true},
		{"invalid bool", "TEST_BOOL", "not-a-bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv(tt.key, tt.value)
			}
			got := getEnvAsBool(tt.key, tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_DURATION", "bogus")

	assert.Equal(t, 5*time.Second, getEnvAsDuration("TEST_DURATION", 5*time.Second))

	os.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("TEST_DURATION", 5*time.Second))
}
