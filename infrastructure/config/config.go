package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kian-Chen/DSADesign/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Persistence backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string        `yaml:"server_address" validate:"required"`
	Environment     string        `yaml:"environment" validate:"oneof=development staging production"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`

	// Persistence
	Backend          string `yaml:"backend" validate:"oneof=memory file dynamodb"`
	SnapshotFile     string `yaml:"snapshot_file" validate:"required_if=Backend file"`
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBTable    string `yaml:"dynamodb_table" validate:"required_if=Backend dynamodb"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	SnapshotKey      string `yaml:"snapshot_key" validate:"required"`

	// Circuit breaker around the snapshot store
	BreakerEnabled   bool          `yaml:"breaker_enabled"`
	BreakerThreshold float64       `yaml:"breaker_threshold" validate:"gt=0,lte=1"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" validate:"gt=0"`

	// Domain settings
	MaxRecommendations int `yaml:"max_recommendations" validate:"gte=1,lte=100"`
	MaxListSessions    int `yaml:"max_list_sessions" validate:"gte=0"`

	// Per-client limit on mutating API calls. A burst of 0 disables it.
	RateLimitBurst  int           `yaml:"rate_limit_burst" validate:"gte=0"`
	RateLimitRefill time.Duration `yaml:"rate_limit_refill" validate:"gt=0"`

	// Lambda configuration
	IsLambda bool `yaml:"is_lambda"`

	// Logging
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics   bool     `yaml:"enable_metrics"`
	EnableTracing   bool     `yaml:"enable_tracing"`
	TracingEndpoint string   `yaml:"tracing_endpoint" validate:"required_if=EnableTracing true"`
	EnableCORS      bool     `yaml:"enable_cors"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	WatchConfig     bool     `yaml:"watch_config"`

	// File is the YAML file the configuration was read from, if any
	File string `yaml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		ShutdownTimeout:    30 * time.Second,
		Backend:            BackendMemory,
		SnapshotFile:       "data/social-graph.json",
		AWSRegion:          "us-west-2",
		DynamoDBTable:      "dsa-design",
		SnapshotKey:        "socialGraph",
		BreakerEnabled:     true,
		BreakerThreshold:   0.6,
		BreakerTimeout:     30 * time.Second,
		MaxRecommendations: 5,
		MaxListSessions:    1000,
		RateLimitBurst:     60,
		RateLimitRefill:    time.Second,
		LogLevel:           "info",
		EnableMetrics:      true,
		EnableCORS:         true,
		AllowedOrigins:     []string{"*"},
	}
}

// LoadConfig loads configuration. Defaults are overridden by the YAML file
// named in CONFIG_FILE, which is overridden by environment variables.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.File = path
	return nil
}

func (c *Config) loadEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	c.Backend = getEnv("PERSISTENCE_BACKEND", c.Backend)
	c.SnapshotFile = getEnv("SNAPSHOT_FILE", c.SnapshotFile)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.SnapshotKey = getEnv("SNAPSHOT_KEY", c.SnapshotKey)

	c.BreakerEnabled = getEnvBool("BREAKER_ENABLED", c.BreakerEnabled)
	c.BreakerThreshold = getEnvFloat("BREAKER_THRESHOLD", c.BreakerThreshold)
	c.BreakerTimeout = getEnvDuration("BREAKER_TIMEOUT", c.BreakerTimeout)

	c.MaxRecommendations = getEnvInt("MAX_RECOMMENDATIONS", c.MaxRecommendations)
	c.MaxListSessions = getEnvInt("MAX_LIST_SESSIONS", c.MaxListSessions)
	c.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
	c.RateLimitRefill = getEnvDuration("RATE_LIMIT_REFILL", c.RateLimitRefill)

	// AWS_LAMBDA_FUNCTION_NAME is set by the Lambda runtime
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.TracingEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.TracingEndpoint)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = strings.Split(origins, ",")
	}
	c.WatchConfig = getEnvBool("WATCH_CONFIG", c.WatchConfig)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
