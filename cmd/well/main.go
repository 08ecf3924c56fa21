package main

import (
	"fmt"
	"os"
	"path/filepath"

	"wellspring/internal/config"
	"wellspring/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string
	seed       uint64

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "well",
	Short: "wellspring - a small daily ritual for a calmer mind",
	Long: `wellspring guides you through a short daily ritual: a small task, an
affirmation to keep, and a moment to name your mood. A personality quiz, mood
statistics and a daily reward roll round it out.

Run without arguments to start the full-screen interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDataDir(resolveConfigPath(), resolveDataDir())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		mode := logging.ModeCLI
		if cmd == cmd.Root() {
			mode = logging.ModeInteractive
		}
		logger, err = logging.New(cfg.Logging, logging.Options{Mode: mode, Verbose: verbose})
		if err != nil {
			return err
		}
		logging.For(logger, logging.CategoryBoot).Debug("config loaded",
			zap.String("path", resolveConfigPath()),
			zap.String("backend", string(cfg.Storage.Backend)))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

// resolveConfigPath picks --config, then <data-dir>/config.yaml, then the default.
func resolveConfigPath() string {
	switch {
	case configPath != "":
		return configPath
	case dataDir != "":
		return filepath.Join(dataDir, "config.yaml")
	}
	return config.DefaultConfigPath()
}

// resolveDataDir returns --data-dir, else the default data directory.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	return config.DefaultDataDir()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.wellspring/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.wellspring)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for task, affirmation and roll draws (0 = random)")
	_ = rootCmd.PersistentFlags().MarkHidden("seed")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(ritualCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
