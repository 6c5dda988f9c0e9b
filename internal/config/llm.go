package config

import "time"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// LLMConfig configures the Gemini chat session.
type LLMConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"` // per request

	// SystemInstruction replaces the built-in document-architect instruction when set.
	SystemInstruction string `yaml:"system_instruction,omitempty"`
}

// GetLLMTimeout returns the per-request timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDurationOr(c.LLM.Timeout, 120*time.Second)
}
