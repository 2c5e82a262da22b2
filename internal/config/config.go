package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type ProbeMode string

const (
	// ProbeLiveness sends HEAD to the dishes endpoint and creates nothing.
	ProbeLiveness ProbeMode = "liveness"
	// ProbeSubmit posts a fixed sandwich recipe. The server stores it.
	ProbeSubmit ProbeMode = "submit"
)

type Config struct {
	BaseURL             string    `toml:"base_url"`
	DishesPath          string    `toml:"dishes_path"`
	ProbeMode           ProbeMode `toml:"probe_mode"`
	NotificationSeconds int       `toml:"notification_seconds"`
	Language            string    `toml:"language"`

	PathFile string `toml:"-"`
	// BaseURLOverride comes from --base-url and is never written back.
	BaseURLOverride string `toml:"-"`
}

const (
	DefaultBaseURL             = "https://frosty-wood-6558.getsandbox.com:443/"
	DefaultDishesPath          = "dishes"
	DefaultProbeMode           = ProbeLiveness
	DefaultNotificationSeconds = 4
	defaultLang                = "en"

	configDirName  = ".dishform"
	configFileName = "config.toml"
)

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{"base_url", "dishes_path", "probe_mode", "notification_seconds", "language"}

func Default() *Config {
	return &Config{
		BaseURL:             DefaultBaseURL,
		DishesPath:          DefaultDishesPath,
		ProbeMode:           DefaultProbeMode,
		NotificationSeconds: DefaultNotificationSeconds,
		Language:            defaultLang,
	}
}

// LoadConfig reads path when it names a .toml file, otherwise
// <path>/.dishform/config.toml. A missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".toml" {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return CreateDefaultConfig(configPath)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", configPath, err)
	}
	cfg.PathFile = configPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return cfg, nil
}

func CreateDefaultConfig(path string) (*Config, error) {
	cfg := Default()
	cfg.PathFile = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(cfg.PathFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host: %q", c.BaseURL)
	}

	if strings.Trim(c.DishesPath, "/") == "" {
		return errors.New("dishes_path cannot be empty")
	}

	switch c.ProbeMode {
	case ProbeLiveness, ProbeSubmit:
	default:
		return fmt.Errorf("unsupported probe_mode: %s", c.ProbeMode)
	}

	if c.NotificationSeconds <= 0 {
		return errors.New("notification_seconds must be greater than 0")
	}

	if c.Language == "" {
		return errors.New("language cannot be empty")
	}

	return nil
}

// Set assigns one setting by its TOML key and validates the result. The
// receiver is left untouched when the new value is rejected.
func (c *Config) Set(key, value string) error {
	next := *c

	switch key {
	case "base_url":
		next.BaseURL = value
	case "dishes_path":
		next.DishesPath = value
	case "probe_mode":
		next.ProbeMode = ProbeMode(strings.ToLower(value))
	case "notification_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("notification_seconds must be an integer: %w", err)
		}
		next.NotificationSeconds = n
	case "language":
		next.Language = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	*c = next
	return nil
}

// OverrideBaseURL points this run at another service without touching the
// saved base_url.
func (c *Config) OverrideBaseURL(value string) error {
	next := *c
	next.BaseURL = value
	if err := next.Validate(); err != nil {
		return err
	}
	c.BaseURLOverride = value
	return nil
}

// ServiceURL is the base URL requests go to: the override when set,
// otherwise base_url.
func (c *Config) ServiceURL() string {
	if c.BaseURLOverride != "" {
		return c.BaseURLOverride
	}
	return c.BaseURL
}

// Get returns a setting by its TOML key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "base_url":
		return c.BaseURL, true
	case "dishes_path":
		return c.DishesPath, true
	case "probe_mode":
		return string(c.ProbeMode), true
	case "notification_seconds":
		return strconv.Itoa(c.NotificationSeconds), true
	case "language":
		return c.Language, true
	}
	return "", false
}
