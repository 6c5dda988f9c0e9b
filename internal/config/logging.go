package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"` // Master toggle - false = no logging
	Level     string `yaml:"level"`      // debug, info, warn, error
	File      string `yaml:"file"`
}

// Enabled reports whether any log output should be produced.
func (c *LoggingConfig) Enabled() bool {
	return c.DebugMode
}
