package config

// Terminal themes.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{ThemeAuto, ThemeLight, ThemeDark}

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme selects the glamour/lipgloss palette: auto, light or dark.
	Theme string `yaml:"theme"`

	// WordWrap is the column at which rendered Markdown wraps.
	WordWrap int `yaml:"word_wrap"`

	// Plain forces the line-mode front end even on a terminal.
	Plain bool `yaml:"plain"`
}

// GetWordWrap returns the wrap width, falling back to 80.
func (c *Config) GetWordWrap() int {
	if c.UI.WordWrap <= 0 {
		return 80
	}
	return c.UI.WordWrap
}
