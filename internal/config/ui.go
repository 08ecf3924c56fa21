package config

// Theme selects the terminal color scheme.
type Theme string

const (
	ThemeAuto  Theme = "auto" // detect from the terminal
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	Theme Theme `yaml:"theme"`

	// SkipSplash jumps straight past the splash screen.
	SkipSplash bool `yaml:"skip_splash,omitempty"`
}
