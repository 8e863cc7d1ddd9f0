package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/upb/greeting-app/utils"
)

// DefaultPort is used when neither PORT nor SERVER_PORT is set.
const DefaultPort = 3002

// DefaultMetricsPort is used when METRICS_PORT is not set.
const DefaultMetricsPort = 9090

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	UI            UIConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int `validate:"min=1,max=65535"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// UIConfig holds frontend shell configuration
type UIConfig struct {
	// StaticDir is served from disk outside production.
	StaticDir string
	// APIBaseURL is where the shell's API client sends requests.
	APIBaseURL string `validate:"required,url"`
}

// ObservabilityConfig holds monitoring and logging configuration
type ObservabilityConfig struct {
	LogLevel          string `validate:"required,oneof=debug info warn error"`
	LogFormat         string `validate:"oneof=json console text"`
	MetricsEnabled    bool
	MetricsPort       int `validate:"min=1,max=65535"`
	TracingEnabled    bool
	TracingEndpoint   string
	TracingSampleRate float64 `validate:"gte=0,lte=1"`
}

// New creates a new Config instance by loading environment variables.
// A port that does not parse or lies outside 1-65535 is an error.
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	port, err := getPort()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: getEnvironment(),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            port,
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		UI: UIConfig{
			StaticDir:  getEnv("STATIC_DIR", "dist"),
			APIBaseURL: getEnv("UI_API_BASE_URL", fmt.Sprintf("http://127.0.0.1:%d", port)),
		},
		Observability: ObservabilityConfig{
			LogLevel:          getEnv("LOG_LEVEL", "info"),
			LogFormat:         getEnv("LOG_FORMAT", "json"),
			MetricsEnabled:    getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:       getEnvAsInt("METRICS_PORT", defaultMetricsPort(port)),
			TracingEnabled:    getEnvAsBool("TRACING_ENABLED", false),
			TracingEndpoint:   getEnv("TRACING_ENDPOINT", "localhost:4317"),
			TracingSampleRate: getEnvAsFloat("TRACING_SAMPLE_RATE", 0.1),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field ranges and cross-field constraints
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}

	if c.Observability.MetricsEnabled && c.Observability.MetricsPort == c.Server.Port {
		return fmt.Errorf("metrics port %d collides with server port", c.Observability.MetricsPort)
	}

	if c.Observability.TracingEnabled && c.Observability.TracingEndpoint == "" {
		return fmt.Errorf("tracing endpoint is required when tracing is enabled")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsAddress returns the metrics server address
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Observability.MetricsPort)
}

// Helper functions

// defaultMetricsPort returns DefaultMetricsPort unless the server already
// listens there, in which case it moves to the neighbouring port.
func defaultMetricsPort(serverPort int) int {
	if serverPort == DefaultMetricsPort {
		return DefaultMetricsPort + 1
	}
	return DefaultMetricsPort
}

// getEnvironment reads ENVIRONMENT, then NODE_ENV, defaulting to development
func getEnvironment() string {
	if value := os.Getenv("ENVIRONMENT"); value != "" {
		return value
	}
	return getEnv("NODE_ENV", "development")
}

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 3002)
func getPort() (int, error) {
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		p, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		return p, nil
	}
	return DefaultPort, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
