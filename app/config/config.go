// Package config loads the service settings from a .env file and BLOG_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mcuadros/go-defaults"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// EnvPrefix is stripped from environment variable names; BLOG_LOG_LEVEL
// fills the log_level key.
const EnvPrefix = "BLOG_"

const (
	StoreBadger   = "badger"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Addr        string `mapstructure:"addr" default:":8080"`
	Store       string `mapstructure:"store" default:"badger"`
	BadgerPath  string `mapstructure:"badger_path" default:"data/badger"`
	BackupDir   string `mapstructure:"backup_dir" default:"data/backups"`
	DatabaseURL string `mapstructure:"database_url"`
	LogLevel    string `mapstructure:"log_level" default:"info"`
	LogFormat   string `mapstructure:"log_format" default:"text"`
}

// Load reads envFiles (a missing file is not an error) and then the process
// environment. Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return FromEnv(os.Environ())
}

// FromEnv builds a Config from KEY=value pairs.
func FromEnv(environ []string) (Config, error) {
	var cfg Config
	defaults.SetDefaults(&cfg)

	values := map[string]interface{}{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}

	if err := mapstructure.WeakDecode(values, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("badger_path is required for the %s store", StoreBadger)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s store", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
