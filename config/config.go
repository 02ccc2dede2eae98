// Package config loads the server configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Http    HTTPConfig    `yaml:"http"`
	Model   ModelConfig   `yaml:"model"`
	Predict PredictConfig `yaml:"predict"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	StaticDir      string        `yaml:"static_dir"`
	TemplatesDir   string        `yaml:"templates_dir"`
	WatchTemplates bool          `yaml:"watch_templates"`
}

type ModelConfig struct {
	// Type is empty to use the artifact's own model_type.
	Type          string        `yaml:"type"`
	Path          string        `yaml:"path"`
	RemoteURL     string        `yaml:"remote_url"`
	RemoteTimeout time.Duration `yaml:"remote_timeout"`
	CacheSize     int           `yaml:"cache_size"`
}

type PredictConfig struct {
	// StrictForm rejects symptom values other than "", "yes" and "no".
	StrictForm bool `yaml:"strict_form"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when config.yaml omits a key.
func Default() Config {
	return Config{
		Http: HTTPConfig{
			Port:           5000,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 20,
		},
		Model: ModelConfig{
			Type:          "decision_tree",
			Path:          "disease_model.json",
			RemoteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		config.resolvePaths(filepath.Dir(path))
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Locate returns the first existing candidate, or the first candidate when none exist.
// The server may be started from the repository root or from cmd/.
func Locate(name string) string {
	candidates := []string{name, filepath.Join("..", name)}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.Http.Port)
	}
	switch c.Model.Type {
	case "", "decision_tree", "random_forest":
		if c.Model.Path == "" {
			return errors.New("model.path is required")
		}
	case "remote":
		if c.Model.RemoteURL == "" {
			return errors.New("model.remote_url is required for remote models")
		}
	default:
		return fmt.Errorf("unsupported model.type %q", c.Model.Type)
	}
	if c.Model.CacheSize < 0 {
		return fmt.Errorf("invalid model.cache_size %d", c.Model.CacheSize)
	}
	if c.Http.WatchTemplates && c.Http.TemplatesDir == "" {
		return errors.New("http.watch_templates needs http.templates_dir")
	}
	return nil
}

// resolvePaths makes relative file paths relative to the config file.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Model.Path, &c.Http.StaticDir, &c.Http.TemplatesDir, &c.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *Config) applyEnv() error {
	if port := getEnv("PORT", ""); port != "" {
		value, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Http.Port = value
	}
	c.Model.Type = getEnv("MODEL_TYPE", c.Model.Type)
	c.Model.Path = getEnv("MODEL_PATH", c.Model.Path)
	c.Model.RemoteURL = getEnv("MODEL_REMOTE_URL", c.Model.RemoteURL)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
