package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kbdl/kbdl/config"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose *bool
	config  *string
}{}

var rootCmd = &cobra.Command{
	Use:   "kbdl",
	Short: "Compile a keyboard description into firmware layers and a diagram",
	Long: `kbdl provides the following features:
- Generates keyberon layers and a chord table from a keyboard description.
- Generates a keymap-drawer description of every layer.
- Formats descriptions and runs golden tests against them.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default: the nearest "+config.FileName+")")
}

func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

// setUp loads the project config and attaches it and a logger to the command context.
func setUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	level, err := logLevel(cfg.LogLevel, *rootFlags.verbose)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, level)
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}
	for _, k := range cfg.Undecoded {
		logger.Warn("unknown config key", "key", k, "path", cfg.Path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = withLogger(ctx, logger)
	ctx = withConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}

func loadConfig(args []string) (*config.Config, error) {
	if *rootFlags.config != "" {
		return config.Load(*rootFlags.config)
	}
	dir := "."
	if len(args) > 0 {
		dir = filepath.Dir(args[0])
	}
	return config.LoadFor(dir)
}
