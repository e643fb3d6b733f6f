package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Report   ReportConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// ReportConfig holds report caching configuration
type ReportConfig struct {
	CacheTTL time.Duration
}

// DSN builds the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Addr returns the Redis address in host:port form
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load loads configuration from the TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with TAILTALLY_ prefix (e.g. TAILTALLY_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file means defaults and env vars only
	}

	v.SetEnvPrefix("TAILTALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Enabled:  v.GetBool("redis.enabled"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Report: ReportConfig{
			CacheTTL: v.GetDuration("report.cache_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tailtally"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "tailtally"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Expiration == 0 {
		cfg.JWT.Expiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "tailtally"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if cfg.Report.CacheTTL == 0 {
		cfg.Report.CacheTTL = 5 * time.Minute
	}
}

func (c *Config) validate() error {
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns cannot exceed database.max_open_conns")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
