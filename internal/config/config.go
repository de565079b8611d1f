package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	SiteURL string `mapstructure:"site_url"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// SessionConfig holds the session lifecycle knobs. The defaults mirror the
// product contract: 15 minute magic-link sessions, 30 day authenticated
// sessions, and a 24 hour extension once less than an hour remains.
type SessionConfig struct {
	VerificationTTL  time.Duration `mapstructure:"verification_ttl"`
	AuthTTL          time.Duration `mapstructure:"auth_ttl"`
	RenewalThreshold time.Duration `mapstructure:"renewal_threshold"`
	RenewalExtension time.Duration `mapstructure:"renewal_extension"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	FromName string `mapstructure:"from_name"`
	FromAddr string `mapstructure:"from_addr"`
}

type ExportConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int    `mapstructure:"max_file_size_mb"`
}

type AppConfig struct {
	PageSize    int    `mapstructure:"page_size"`
	MaxPageSize int    `mapstructure:"max_page_size"`
	AdminEmail  string `mapstructure:"admin_email"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Export   ExportConfig   `mapstructure:"export"`
	Upload   UploadConfig   `mapstructure:"upload"`
	App      AppConfig      `mapstructure:"app"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. Environment variables prefixed with PV_ override file values,
// e.g. PV_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("PV") // portfolio valentine
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, defaults and env cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.site_url", "http://localhost:3000")

	v.SetDefault("database.path", "data/portfolio.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("session.verification_ttl", 15*time.Minute)
	v.SetDefault("session.auth_ttl", 30*24*time.Hour)
	v.SetDefault("session.renewal_threshold", time.Hour)
	v.SetDefault("session.renewal_extension", 24*time.Hour)
	v.SetDefault("session.sweep_interval", time.Hour)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from_name", "Portfolio Valentine")

	v.SetDefault("export.token_ttl", 5*time.Minute)

	v.SetDefault("upload.dir", "data/uploads")
	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("app.page_size", 42)
	v.SetDefault("app.max_page_size", 100)
}
