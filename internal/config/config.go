package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// IntrospectionConfig represents the OAuth introspection endpoint
// configuration
type IntrospectionConfig struct {
	Endpoint     string        `mapstructure:"endpoint" yaml:"endpoint" validate:"required,url"`
	ClientID     string        `mapstructure:"client_id" yaml:"client_id" validate:"required"`
	ClientSecret string        `mapstructure:"client_secret" yaml:"client_secret" validate:"required"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl" validate:"gt=0"`
}

// AuthConfig represents authentication gate configuration
type AuthConfig struct {
	// InternalTokenLength is the exact length of legacy session tokens.
	InternalTokenLength int                 `mapstructure:"internal_token_length" yaml:"internal_token_length" validate:"gt=0"`
	SessionServiceURL   string              `mapstructure:"session_service_url" yaml:"session_service_url" validate:"required,url"`
	Introspection       IntrospectionConfig `mapstructure:"introspection" yaml:"introspection"`
	// CacheBackend selects the introspection cache: "memory" (default)
	// or "redis".
	CacheBackend string `mapstructure:"cache_backend" yaml:"cache_backend" validate:"oneof=memory redis"`
}

// RedisConfig represents the optional shared cache backend
type RedisConfig struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Config represents the application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Auth   AuthConfig   `mapstructure:"auth" yaml:"auth"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis"`
	Log    struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
}

// LoadConfig loads configuration from config.yaml (searched in ., ./config
// and /etc/walletapi) with WALLETAPI_* environment overrides, then
// validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/walletapi")

	v.SetEnvPrefix("WALLETAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("auth.internal_token_length", 64)
	v.SetDefault("auth.cache_backend", "memory")
	v.SetDefault("auth.introspection.cache_ttl", 10*time.Minute)

	// Registered empty so environment overrides reach Unmarshal.
	v.SetDefault("auth.session_service_url", "")
	v.SetDefault("auth.introspection.endpoint", "")
	v.SetDefault("auth.introspection.client_id", "")
	v.SetDefault("auth.introspection.client_secret", "")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
}
