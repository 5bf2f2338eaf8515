package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/golden/internal/app"
	"github.com/firefly-engineering/golden/internal/config"
	"github.com/firefly-engineering/golden/internal/errors"
)

// loadConfig loads the configuration and applies the flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := app.Default.LoadConfig(rootDir, configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("tool") {
		cfg.Tool = toolFlag
	}
	if flags.Changed("file-flag") {
		cfg.FileFlag = fileFlag
	}
	if flags.Changed("skip") {
		cfg.Skip = skipFlag
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobsFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration{Duration: timeout}
	}
	if flags.Changed("no-color") {
		cfg.NoColor = noColor
	}

	if flags.Changed("journal") && journal != "" {
		// Flag paths are relative to the working directory, not the root.
		abs, err := filepath.Abs(journal)
		if err != nil {
			return nil, errors.ConfigError("invalid journal path", err)
		}
		cfg.Journal = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("invalid settings", err)
	}
	return cfg, nil
}
