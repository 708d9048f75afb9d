package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/subadmin/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	Storage      sharedConfig.StorageConfig      `mapstructure:"storage"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"rate_limit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (when present) and SUBADMIN_* environment
// variables on top of the built-in defaults.
func Load(env string) (*Config, error) {
	return load(env, "./configs", "../configs", "../../configs")
}

// LoadFile reads an explicit config file. An empty path falls back to Load.
func LoadFile(env, path string) (*Config, error) {
	if path == "" {
		return Load(env)
	}
	v := newViper()
	v.SetConfigFile(path)
	return finish(v, env)
}

func load(env string, paths ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	return finish(v, env)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SUBADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper, env string) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.timezone", "UTC")

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "subadmin_dev")
	v.SetDefault("database.path", "subadmin.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Email defaults (empty smtp_host disables mail)
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@subadmin.local")
	v.SetDefault("email.from_name", "Subadmin")
	v.SetDefault("email.admin_addresses", []string{})

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_proof_size_mb", 5)

	v.SetDefault("notification.timeout_seconds", 10)
	v.SetDefault("notification.stream_buffer", 16)

	v.SetDefault("rate_limit.subscribe_per_minute", 5)
}
