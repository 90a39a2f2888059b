// Package config loads server settings from defaults, an optional YAML file
// and SMARTCART_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const envPrefix = "SMARTCART_"

type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Seed inserts built-in categories and sample lists into an empty store
	// at startup.
	Seed           bool `yaml:"seed"`
	AutoCategorize bool `yaml:"auto_categorize"`

	// WSConnectLimit caps websocket connection attempts per client IP per
	// minute. Zero disables the limit.
	WSConnectLimit int `yaml:"ws_connect_limit"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		DBPath:         "smartcart.db",
		LogLevel:       "info",
		LogFormat:      "text",
		Seed:           true,
		AutoCategorize: false,
		WSConnectLimit: 30,
	}
}

// Load builds a Config. An empty path skips the file; a path that does not
// exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("PORT", &c.Port)
	str("DB_PATH", &c.DBPath)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	if err := boolean("SEED", &c.Seed); err != nil {
		return err
	}
	if err := boolean("AUTO_CATEGORIZE", &c.AutoCategorize); err != nil {
		return err
	}
	if v, ok := lookup(envPrefix + "WS_CONNECT_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sWS_CONNECT_LIMIT: %w", envPrefix, err)
		}
		c.WSConnectLimit = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
	}
	if c.WSConnectLimit < 0 {
		return fmt.Errorf("invalid ws_connect_limit %d", c.WSConnectLimit)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
