package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/golden/internal/app"
	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/fixture"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every fixture and report the verdicts",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a := app.Default
	suites, err := a.Suites(rootDir, cfg)
	if err != nil {
		return err
	}

	runner, reporter, err := a.Runner(rootDir, cfg, verbose)
	if err != nil {
		return err
	}

	reporter.Banner(cfg.Language)
	stats, err := runner.Run(cmd.Context(), suites)
	reporter.Summary(stats)

	if err != nil {
		logError("run aborted after %d of %d tests", stats.Total, fixture.Count(suites))
		return err
	}
	if stats.Failed() {
		return errors.TestsFailed(stats.KO, stats.Total)
	}
	return nil
}
