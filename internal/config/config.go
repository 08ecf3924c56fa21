package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all wellspring configuration.
type Config struct {
	// Storage selects and configures the key-value persistence backend
	Storage StorageConfig `yaml:"storage"`

	// Ritual controls the daily task countdown
	Ritual RitualConfig `yaml:"ritual"`

	// Roll controls reward roll choreography
	Roll RollConfig `yaml:"roll"`

	// Gallery controls where prize artwork is written
	Gallery GalleryConfig `yaml:"gallery"`

	// Catalog optionally overrides the built-in task and affirmation content
	Catalog CatalogConfig `yaml:"catalog"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// UI holds terminal presentation settings
	UI UIConfig `yaml:"ui"`
}

// RitualConfig configures the ritual stage machine.
type RitualConfig struct {
	TaskDuration string `yaml:"task_duration"` // countdown shown on the daily task, e.g. "5m"
}

// RollConfig configures the reward roll.
type RollConfig struct {
	// SettleOffsets are the offsets (from spin start) at which reels 1, 2 and 3 stop.
	// Only their relative order matters.
	SettleOffsets []string `yaml:"settle_offsets"`

	// FlickerInterval is how often a spinning reel shows a new symbol.
	FlickerInterval string `yaml:"flicker_interval"`
}

// GalleryConfig configures prize artwork saving.
type GalleryConfig struct {
	Dir       string `yaml:"dir"`
	AllowSave bool   `yaml:"allow_save"` // user consent to write images to disk
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
}

// CatalogConfig configures the content catalog override file.
type CatalogConfig struct {
	Path  string `yaml:"path"`  // optional YAML file with tasks/affirmations
	Watch bool   `yaml:"watch"` // reload the file when it changes
}

// envOverrides is parsed from the environment with the WELL_ prefix.
// Empty values leave the file configuration untouched.
type envOverrides struct {
	StorageBackend string `env:"STORAGE_BACKEND"`
	SQLitePath     string `env:"SQLITE_PATH"`
	SQLiteDriver   string `env:"SQLITE_DRIVER"`
	RedisURL       string `env:"REDIS_URL"`
	RedisNamespace string `env:"REDIS_NAMESPACE"`
	LogLevel       string `env:"LOG_LEVEL"`
	Debug          string `env:"DEBUG"`
	GalleryDir     string `env:"GALLERY_DIR"`
	CatalogPath    string `env:"CATALOG_PATH"`
	Theme          string `env:"THEME"`
}

// DefaultDataDir returns ~/.wellspring, falling back to ./.wellspring.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".wellspring"
	}
	return filepath.Join(home, ".wellspring")
}

// DefaultConfigPath returns the config file inside the default data dir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// DefaultConfig returns the default configuration rooted at dataDir.
func DefaultConfig() *Config {
	return DefaultConfigAt(DefaultDataDir())
}

// DefaultConfigAt returns the default configuration with every path under dataDir.
func DefaultConfigAt(dataDir string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			SQLite: SQLiteConfig{
				Path:   filepath.Join(dataDir, "wellspring.db"),
				Driver: DriverMattn,
			},
			Redis: RedisConfig{
				URL:       "redis://localhost:6379/0",
				Namespace: "wellspring",
			},
		},

		Ritual: RitualConfig{
			TaskDuration: "5m",
		},

		Roll: RollConfig{
			SettleOffsets:   []string{"1500ms", "2000ms", "2500ms"},
			FlickerInterval: "70ms",
		},

		Gallery: GalleryConfig{
			Dir:       filepath.Join(dataDir, "gallery"),
			AllowSave: true,
			Width:     1080,
			Height:    1920,
		},

		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
			File:      filepath.Join(dataDir, "logs", "well.log"),
		},

		UI: UIConfig{
			Theme: ThemeAuto,
		},
	}
}

// Load loads configuration from a YAML file, rooting default data paths at
// DefaultDataDir. A missing file yields the defaults (with environment overrides applied).
func Load(path string) (*Config, error) {
	return LoadWithDataDir(path, "")
}

// LoadWithDataDir is Load with default data paths rooted at dataDir.
// An empty dataDir means DefaultDataDir.
func LoadWithDataDir(path, dataDir string) (*Config, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	cfg := DefaultConfigAt(dataDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

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

// applyEnvOverrides applies WELL_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	ov, err := env.ParseAsWithOptions[envOverrides](env.Options{Prefix: "WELL_"})
	if err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if ov.StorageBackend != "" {
		c.Storage.Backend = Backend(strings.ToLower(ov.StorageBackend))
	}
	if ov.SQLitePath != "" {
		c.Storage.SQLite.Path = ov.SQLitePath
	}
	if ov.SQLiteDriver != "" {
		c.Storage.SQLite.Driver = ov.SQLiteDriver
	}
	if ov.RedisURL != "" {
		c.Storage.Redis.URL = ov.RedisURL
	}
	if ov.RedisNamespace != "" {
		c.Storage.Redis.Namespace = ov.RedisNamespace
	}
	if ov.LogLevel != "" {
		c.Logging.Level = strings.ToLower(ov.LogLevel)
	}
	if ov.Debug != "" {
		debug, err := strconv.ParseBool(ov.Debug)
		if err != nil {
			return fmt.Errorf("invalid WELL_DEBUG %q: %w", ov.Debug, err)
		}
		c.Logging.DebugMode = debug
	}
	if ov.GalleryDir != "" {
		c.Gallery.Dir = ov.GalleryDir
	}
	if ov.CatalogPath != "" {
		c.Catalog.Path = ov.CatalogPath
	}
	if ov.Theme != "" {
		c.UI.Theme = Theme(strings.ToLower(ov.Theme))
	}
	return nil
}

// GetTaskDuration returns the ritual countdown length (default 5m).
func (c *Config) GetTaskDuration() time.Duration {
	if d, err := time.ParseDuration(c.Ritual.TaskDuration); err == nil && d > 0 {
		return d
	}
	return 5 * time.Minute
}

// GetSettleOffsets returns the reel settle offsets, falling back to the defaults
// when the configured list is unusable.
func (c *Config) GetSettleOffsets() [3]time.Duration {
	def := [3]time.Duration{1500 * time.Millisecond, 2000 * time.Millisecond, 2500 * time.Millisecond}
	if len(c.Roll.SettleOffsets) != 3 {
		return def
	}
	var out [3]time.Duration
	for i, s := range c.Roll.SettleOffsets {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return def
		}
		out[i] = d
	}
	return out
}

// GetFlickerInterval returns the spin animation frame interval (default 70ms).
func (c *Config) GetFlickerInterval() time.Duration {
	if d, err := time.ParseDuration(c.Roll.FlickerInterval); err == nil && d > 0 {
		return d
	}
	return 70 * time.Millisecond
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}

	if c.Ritual.TaskDuration != "" {
		d, err := time.ParseDuration(c.Ritual.TaskDuration)
		if err != nil {
			return fmt.Errorf("invalid ritual.task_duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("ritual.task_duration must be positive")
		}
	}

	if len(c.Roll.SettleOffsets) != 0 {
		if len(c.Roll.SettleOffsets) != 3 {
			return fmt.Errorf("roll.settle_offsets needs exactly 3 entries, got %d", len(c.Roll.SettleOffsets))
		}
		var prev time.Duration = -1
		for i, s := range c.Roll.SettleOffsets {
			d, err := time.ParseDuration(s)
			if err != nil {
				return fmt.Errorf("invalid roll.settle_offsets[%d]: %w", i, err)
			}
			if d <= prev {
				return fmt.Errorf("roll.settle_offsets must be strictly increasing")
			}
			prev = d
		}
	}

	switch c.UI.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown ui.theme %q", c.UI.Theme)
	}

	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}

	return nil
}
