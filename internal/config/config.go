package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Validate when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not found")

// DefaultPath is the config file used when --config is not given.
const DefaultPath = ".aidoc/config.yaml"

// Config holds all aidoc configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// PDF export
	Export ExportConfig `yaml:"export"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:   DefaultModel,
			Timeout: "120s",
		},

		Export: ExportConfig{
			DefaultFilename: "output.pdf",
			Timeout:         "60s",
		},

		UI: UIConfig{
			Theme:    ThemeAuto,
			WordWrap: 80,
		},

		Logging: LoggingConfig{
			Level: "info",
			File:  ".aidoc/aidoc.log",
		},
	}
}

// Load loads configuration from a YAML file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.LLM.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv("AIDOC_MODEL")); model != "" {
		c.LLM.Model = model
	}

	// Same variable names go-rod users already know.
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		c.Export.Browser.Bin = bin
	}
	if v, ok := envBool("ROD_NO_SANDBOX"); ok {
		c.Export.Browser.NoSandbox = v
	}

	if v, ok := envBool("AIDOC_DEBUG"); ok {
		c.Logging.DebugMode = v
	}
}

func envBool(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if _, err := time.ParseDuration(c.LLM.Timeout); c.LLM.Timeout != "" && err != nil {
		return fmt.Errorf("invalid llm.timeout %q: %w", c.LLM.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Export.Timeout); c.Export.Timeout != "" && err != nil {
		return fmt.Errorf("invalid export.timeout %q: %w", c.Export.Timeout, err)
	}
	if strings.TrimSpace(c.Export.DefaultFilename) == "" {
		return fmt.Errorf("export.default_filename must not be empty")
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
