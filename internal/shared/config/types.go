package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PublicBaseURL returns BaseURL without a trailing slash, falling back to
// the listen address.
func (s *ServerConfig) PublicBaseURL() string {
	if s.BaseURL != "" {
		return strings.TrimRight(s.BaseURL, "/")
	}
	return "http://" + s.GetAddr()
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return strings.EqualFold(d.Driver, "sqlite")
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	SMTPHost       string   `mapstructure:"smtp_host"`
	SMTPPort       int      `mapstructure:"smtp_port"`
	SMTPUser       string   `mapstructure:"smtp_user"`
	SMTPPassword   string   `mapstructure:"smtp_password"`
	FromAddress    string   `mapstructure:"from_address"`
	FromName       string   `mapstructure:"from_name"`
	AdminAddresses []string `mapstructure:"admin_addresses"`
}

// Enabled reports whether outgoing mail is configured.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != ""
}

type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir"`
	MaxProofSizeMB int    `mapstructure:"max_proof_size_mb"`
}

type NotificationConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	StreamBuffer   int `mapstructure:"stream_buffer"`
}

type RateLimitConfig struct {
	SubscribePerMinute int `mapstructure:"subscribe_per_minute"`
}
