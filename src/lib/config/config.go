package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Data layer backends
const (
	DataLayerRedis    = "redis"
	DataLayerPostgres = "postgres"
)

// HTTPTimeouts holds the timeouts for the http server.
type HTTPTimeouts struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	HandlerTimeout time.Duration
}

// RedisConfig is the configuration for the redis instance which
// stores the function registry and, by default, the data layer.
type RedisConfig struct {
	Addr     string `validate:"required"`
	Password string
	DB       int `validate:"gte=0"`
}

// DatabaseConfig is the postgres configuration used by the
// postgres data layer backend.
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required"`
	User     string
	Password string
	DBName   string `validate:"required"`
	Schema   string `validate:"required"`
	SSLMode  string

	MaxLifetime  time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

// DataLayerConfig selects the storage engine behind the privileged data layer.
type DataLayerConfig struct {
	Backend string `validate:"oneof=redis postgres"`
}

// TrackingConfig configures the prometheus exporter.
type TrackingConfig struct {
	Prometheus     bool
	PrometheusPort string
}

// RateLimitConfig configures the rate limiter of the lookup endpoint.
type RateLimitConfig struct {
	Limit    int64
	Burst    int
	Duration time.Duration
}

// Config is the application configuration.
type Config struct {
	Env          string `validate:"oneof=development test production"`
	Version      string
	HTTPPort     int `validate:"gt=0"`
	HTTPTimeouts *HTTPTimeouts
	Redis        *RedisConfig `validate:"required"`
	Database     *DatabaseConfig
	DataLayer    *DataLayerConfig `validate:"required"`
	Tracking     *TrackingConfig
	RateLimit    *RateLimitConfig

	// AllowedOrigins are the regular expressions matched against the
	// Origin header of cross-origin requests.
	AllowedOrigins []string
}

var _config *Config
var mux sync.Mutex

// Get returns the current configuration. The configuration is
// read from the environment the first time this function is called.
func Get() *Config {
	mux.Lock()
	defer mux.Unlock()

	if _config == nil {
		_config = New()
	}

	return _config
}

// Set replaces the current configuration. Useful for tests.
func Set(c *Config) {
	mux.Lock()
	defer mux.Unlock()

	_config = c
}

// New reads a new configuration from the environment. When FNM_ENV_FILE
// is set, the file is loaded first without overriding existing variables.
func New() *Config {
	if file := os.Getenv("FNM_ENV_FILE"); file != "" {
		_ = godotenv.Load(file)
	}

	c := &Config{
		Env:      utils.GetString(os.Getenv("FNM_ENV"), defaultEnv()),
		Version:  utils.GetString(os.Getenv("FNM_VERSION"), "development"),
		HTTPPort: getInt(os.Getenv("FNM_HTTP_PORT"), 8080),
		HTTPTimeouts: &HTTPTimeouts{
			ReadTimeout:    getDuration(os.Getenv("FNM_HTTP_READ_TIMEOUT"), 30*time.Second),
			WriteTimeout:   getDuration(os.Getenv("FNM_HTTP_WRITE_TIMEOUT"), 30*time.Second),
			IdleTimeout:    getDuration(os.Getenv("FNM_HTTP_IDLE_TIMEOUT"), 2*time.Minute),
			HandlerTimeout: getDuration(os.Getenv("FNM_HTTP_HANDLER_TIMEOUT"), 10*time.Second),
		},
		Redis: &RedisConfig{
			Addr:     utils.GetString(os.Getenv("REDIS_ADDR"), "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt(os.Getenv("REDIS_DB"), 0),
		},
		DataLayer: &DataLayerConfig{
			Backend: strings.ToLower(utils.GetString(os.Getenv("FNM_DATA_LAYER"), DataLayerRedis)),
		},
		Tracking: &TrackingConfig{
			Prometheus:     os.Getenv("FNM_PROMETHEUS") == "true",
			PrometheusPort: utils.GetString(os.Getenv("FNM_PROMETHEUS_PORT"), "9090"),
		},
		RateLimit: &RateLimitConfig{
			Limit:    int64(getInt(os.Getenv("FNM_RATE_LIMIT"), 120)),
			Burst:    getInt(os.Getenv("FNM_RATE_LIMIT_BURST"), 30),
			Duration: getDuration(os.Getenv("FNM_RATE_LIMIT_DURATION"), time.Minute),
		},
	}

	if origins := os.Getenv("FNM_CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		c.Database = &DatabaseConfig{
			Host:         host,
			Port:         utils.GetString(os.Getenv("POSTGRES_PORT"), "5432"),
			User:         os.Getenv("POSTGRES_USER"),
			Password:     os.Getenv("POSTGRES_PASSWORD"),
			DBName:       utils.GetString(os.Getenv("POSTGRES_DB"), "fnmanagement"),
			Schema:       utils.GetString(os.Getenv("POSTGRES_SCHEMA"), "fnm"),
			SSLMode:      utils.GetString(os.Getenv("POSTGRES_SSL"), "disable"),
			MaxLifetime:  5 * time.Minute,
			MaxOpenConns: getInt(os.Getenv("POSTGRES_MAX_OPEN_CONNS"), 10),
			MaxIdleConns: getInt(os.Getenv("POSTGRES_MAX_IDLE_CONNS"), 5),
		}
	}

	return c
}

// Validate checks the configuration for missing or invalid values.
func (c *Config) Validate() error {
	if err := utils.Validator().Struct(c); err != nil {
		return err
	}

	if c.DataLayer.Backend == DataLayerPostgres && c.Database == nil {
		return ErrMissingDatabase
	}

	return nil
}

// IsTest returns true when the application runs in a test environment.
func IsTest() bool {
	return Get().Env == EnvTest
}

// IsDevelopment returns true when the application runs in a development environment.
func IsDevelopment() bool {
	return Get().Env == EnvDevelopment
}

// IsProduction returns true when the application runs in a production environment.
func IsProduction() bool {
	return Get().Env == EnvProduction
}

func defaultEnv() string {
	if strings.HasSuffix(os.Args[0], ".test") || strings.Contains(os.Args[0], "_test") {
		return EnvTest
	}

	return EnvDevelopment
}

func getInt(value string, fallback int) int {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}

	return fallback
}

func getDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}

	return fallback
}
