package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/golden/internal/app"
	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/harness"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate fixture annotations without running the tool",
	Long: `check reads every fixture and reports lines that mention "error" or
"expect" without the "error: " or "expect: " separator. Such fixtures fail
during a run; check finds them without invoking the tool.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	suites, err := app.Default.Suites(rootDir, cfg)
	if err != nil {
		return err
	}

	checked, faults := harness.Check(app.Default.FS, suites)
	for _, f := range faults {
		logWarning("%s: %v", f.ID(), f.Fault)
	}

	if len(faults) > 0 {
		return errors.MalformedFixtures(len(faults))
	}

	logSuccess("%d fixtures checked", checked)
	return nil
}
