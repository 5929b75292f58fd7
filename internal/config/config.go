// Package config loads runtime settings from an optional config file, a .env file
// and ASTRO_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ASTRO_SERVER_PORT.
const EnvPrefix = "ASTRO"

// DefaultJWTSecret must be replaced before auth is enabled.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Chart     ChartConfig     `mapstructure:"chart"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type GeocodingConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	BaseURL          string        `mapstructure:"base_url"`
	UserAgent        string        `mapstructure:"user_agent"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinInterval      time.Duration `mapstructure:"min_interval"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
	BreakerThreshold float64       `mapstructure:"breaker_threshold"`
	BreakerMinCalls  uint32        `mapstructure:"breaker_min_calls"`
}

type EphemerisConfig struct {
	Provider string `mapstructure:"provider"` // meeus or vsop87
	DataDir  string `mapstructure:"data_dir"` // VSOP87 files, vsop87 only
}

type ChartConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Zodiac    string        `mapstructure:"zodiac"`
	Analyzers []string      `mapstructure:"analyzers"` // empty runs every registered analyzer
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.path", "./data/astro.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.issuer", "astro-backend")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("geocoding.enabled", true)
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocoding.user_agent", "AstroBackend/1.0")
	v.SetDefault("geocoding.timeout", 10*time.Second)
	v.SetDefault("geocoding.min_interval", time.Second)
	v.SetDefault("geocoding.breaker_timeout", 30*time.Second)
	v.SetDefault("geocoding.breaker_threshold", 0.6)
	v.SetDefault("geocoding.breaker_min_calls", 3)

	v.SetDefault("ephemeris.provider", "meeus")
	v.SetDefault("ephemeris.data_dir", "")

	v.SetDefault("chart.timeout", 5*time.Second)
	v.SetDefault("chart.zodiac", "tropical")
	v.SetDefault("chart.analyzers", []string{})
}

// New returns a viper instance with defaults and environment binding, without reading
// any file. Callers can bind command-line flags to it before calling Unmarshal.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) and the optional config file, then decodes into Config.
// An empty configFile searches for astro.yaml in the working directory; it is fine
// if none exists.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("astro")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	return Unmarshal(v)
}

// Unmarshal decodes and validates the settings held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var problems []string

	switch c.Ephemeris.Provider {
	case "meeus":
	case "vsop87":
		if c.Ephemeris.DataDir == "" {
			problems = append(problems, "ephemeris.data_dir is required for the vsop87 provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown ephemeris.provider %q", c.Ephemeris.Provider))
	}

	switch strings.ToLower(c.Chart.Zodiac) {
	case "tropical", "western", "sidereal", "vedic":
	default:
		problems = append(problems, fmt.Sprintf("unknown chart.zodiac %q", c.Chart.Zodiac))
	}
	if c.Chart.Timeout <= 0 {
		problems = append(problems, "chart.timeout must be positive")
	}

	if c.Auth.Enabled && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret) {
		problems = append(problems, "auth.jwt_secret must be set when auth is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		problems = append(problems, "ratelimit.requests and ratelimit.window must be positive")
	}
	if c.Database.Path == "" {
		problems = append(problems, "database.path is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("unknown server.mode %q", c.Server.Mode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
