// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Listen        Listen        `yaml:"listen"`
	API           API           `yaml:"api"`
	Session       Session       `yaml:"session"`
	Notifications Notifications `yaml:"notifications"`
	Log           Log           `yaml:"log"`
}

type Listen struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type API struct {
	// BaseURL includes the /api prefix, e.g. http://localhost:2021/api.
	BaseURL string `yaml:"base_url"`
}

type Session struct {
	// DBPath is the directory holding the durable session store.
	DBPath string `yaml:"db_path"`
}

type Notifications struct {
	Duration            time.Duration `yaml:"duration"`
	DefaultErrorMessage string        `yaml:"default_error_message"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads and validates the configuration file, filling defaults for
// optional fields.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: api.base_url is required")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// MustLoad is Load for main: any error is fatal this early.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Listen.Port == "" {
		c.Listen.Port = "8081"
	}
	if c.Listen.ReadTimeout == 0 {
		c.Listen.ReadTimeout = 5 * time.Second
	}
	if c.Listen.WriteTimeout == 0 {
		c.Listen.WriteTimeout = 10 * time.Second
	}
	if c.Session.DBPath == "" {
		c.Session.DBPath = "data/session"
	}
	if c.Notifications.Duration == 0 {
		c.Notifications.Duration = 5 * time.Second
	}
	if c.Notifications.DefaultErrorMessage == "" {
		c.Notifications.DefaultErrorMessage = "An error occurred"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
