package config

import "time"

// ExportConfig configures PDF export.
type ExportConfig struct {
	// DefaultFilename is used by /pdf when no name is given.
	DefaultFilename string `yaml:"default_filename"`

	// Timeout bounds a single HTML -> PDF render.
	Timeout string `yaml:"timeout"`

	Browser BrowserConfig `yaml:"browser"`
}

// BrowserConfig configures the headless Chrome used for rendering.
type BrowserConfig struct {
	// Bin is an explicit Chrome/Chromium binary. Empty lets rod find or download one.
	Bin string `yaml:"bin,omitempty"`

	// DebuggerURL connects to an already running Chrome instead of launching.
	DebuggerURL string `yaml:"debugger_url,omitempty"`

	// NoSandbox disables the Chrome sandbox (containers, CI).
	NoSandbox bool `yaml:"no_sandbox"`

	// Flags are extra Chrome switches such as "--disable-gpu" or "window-size=1280,800".
	Flags []string `yaml:"flags,omitempty"`
}

// GetExportTimeout returns the render timeout as a duration.
func (c *Config) GetExportTimeout() time.Duration {
	return parseDurationOr(c.Export.Timeout, 60*time.Second)
}
