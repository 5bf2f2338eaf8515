package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/golden/internal/app"
	"github.com/firefly-engineering/golden/internal/fixture"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the discovered suites and cases without running them",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	suites, err := app.Default.Suites(rootDir, cfg)
	if err != nil {
		return err
	}

	if len(suites) == 0 {
		logInfo("No suites found under %s", rootDir)
		return nil
	}

	w := tabwriter.NewWriter(app.Default.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUITE\tCASE\tPATH")
	fmt.Fprintln(w, "-----\t----\t----")
	for _, suite := range suites {
		for _, c := range suite.Cases {
			fmt.Fprintf(w, "%s\t%s\t%s\n", suite.Name, c.Name, c.Path)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(app.Default.Out, "\n%d suites, %d tests\n", len(suites), fixture.Count(suites))
	return nil
}
