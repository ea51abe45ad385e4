package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	MFA       MFAConfig       `mapstructure:"mfa"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`           // debug, release, test
	DeepLinkBase string `mapstructure:"deep_link_base"` // app return deep link for redirect endpoints
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// MFAConfig controls the OTP challenge and action-token lifecycle.
type MFAConfig struct {
	OTPExpiry   time.Duration `mapstructure:"otp_expiry"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	TokenSecret string        `mapstructure:"token_secret"` // HMAC key for action tokens
}

// ProviderConfig points at the external fund-processing provider.
type ProviderConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	CallbackURL string        `mapstructure:"callback_url"`
}

// NotifyConfig points at the messaging gateway delivering OTPs.
type NotifyConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// SchedulerConfig controls reconciliation job behaviour.
type SchedulerConfig struct {
	PollInterval  time.Duration `mapstructure:"poll_interval"`  // recurring status poll
	VerifyDelay   time.Duration `mapstructure:"verify_delay"`   // one-shot fast-settle check
	MaxPolls      int           `mapstructure:"max_polls"`      // forced FAILED after this many cycles
	MaxConcurrent int           `mapstructure:"max_concurrent"` // worker pool bound
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: FOP_ (Fund Order Platform).
// Nested keys use underscore: FOP_DATABASE_HOST, FOP_MFA_TOKEN_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.deep_link_base", "app://invest/return")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "fund_orders")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "fund-order-platform")
	v.SetDefault("mfa.otp_expiry", "60s")
	v.SetDefault("mfa.token_expiry", "300s")
	v.SetDefault("mfa.max_attempts", 3)
	v.SetDefault("mfa.token_secret", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.call_timeout", "15s")
	v.SetDefault("provider.callback_url", "")
	v.SetDefault("notify.base_url", "")
	v.SetDefault("notify.api_key", "")
	v.SetDefault("notify.send_timeout", "10s")
	v.SetDefault("scheduler.poll_interval", "6h")
	v.SetDefault("scheduler.verify_delay", "10s")
	v.SetDefault("scheduler.max_polls", 28)
	v.SetDefault("scheduler.max_concurrent", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: FOP_DATABASE_HOST -> database.host
	v.SetEnvPrefix("FOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
