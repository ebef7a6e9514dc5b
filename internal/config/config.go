package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"visitor-pass-console/internal/email"
)

type SessionConfig struct {
	// Session lifetime in hours. Zero keeps the session until logout.
	TTL uint `mapstructure:"ttl"`
	// Re-read the signed-in operator from the operator collection on every access.
	Revalidate bool `mapstructure:"revalidate"`
	// Where ids of logged out session tokens are kept: "memory" or "storage".
	RevocationStore string `mapstructure:"revocation_store"`
}

type AuthConfig struct {
	// Store new operator passwords as argon2id hashes.
	PasswordHashing bool `mapstructure:"password_hashing"`
}

type AccessConfig struct {
	PolicyFile string `mapstructure:"policy_file"` // Path to the page policy file. Empty uses the built-in table.
}

type PassConfig struct {
	TTL uint `mapstructure:"ttl"` // Visitor pass lifetime in hours
}

type Config struct {
	// Secret key for signing session cookies and visitor passes. Must be set in production.
	Secret   string `mapstructure:"secret"`
	LogLevel string `mapstructure:"log_level"`
	Listen   string `mapstructure:"listen"`

	// Public URL of the console, used in pass QR codes. Empty detects it from the request.
	BaseURL string `mapstructure:"base_url"`

	// Comma separated list of allowed CIDR networks. Empty means allow all.
	AllowedNetworks string `mapstructure:"allowed_networks"`

	Storage Storage       `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Access  AccessConfig  `mapstructure:"access"`
	Pass    PassConfig    `mapstructure:"pass"`

	Email email.SMTPConfig `mapstructure:"email"`
}

// SessionTTL returns zero when sessions do not expire.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTL) * time.Hour
}

func (c *Config) PassTTL() time.Duration {
	return time.Duration(c.Pass.TTL) * time.Hour
}

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads the optional config file and environment variables.
// Nested keys map to environment variables with dots replaced by
// underscores, e.g. STORAGE_TYPE.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")

	for _, path := range configFile {
		if path != "" {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	cfg.Storage.File.Dir = instancePath(cfg.Storage.File.Dir)
	cfg.Storage.Badger.Dir = instancePath(cfg.Storage.Badger.Dir)
	if cfg.Storage.SQLite.Path != ":memory:" {
		cfg.Storage.SQLite.Path = instancePath(cfg.Storage.SQLite.Path)
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}

	if cfg.Secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("SECRET configuration variable is required in production")
		}
		slog.Warn("Secret is not set. Do not use in production.")
	}

	return &cfg, nil
}

// isNotFound matches both a missing default config and an explicitly named
// file that does not exist.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// instancePath anchors relative "./" paths to the instance folder when running in Docker.
func instancePath(path string) string {
	if path == "" || filepath.IsAbs(path) || !runningInDocker() {
		return path
	}
	return filepath.Join(getConfigPath(), strings.TrimPrefix(path, "./instance/"))
}
