package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/golden/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool

	rootDir    string
	configPath string
	toolFlag   string
	fileFlag   string
	skipFlag   []string
	jobsFlag   int
	timeout    time.Duration
	noColor    bool
	journal    string
)

var rootCmd = &cobra.Command{
	Use:   "golden",
	Short: "Golden-file test harness for the Rev toolchain",
	Long: `golden runs the Rev tool against every fixture under the fixture root
and compares its output with the expectations written in the fixture itself.

Each subdirectory of the root is a suite and each file in it a case:

  print 40 + 2; // expect: 42
  print x;      // error: undefined variable x

The tool is invoked as "<tool> -f <suite>/<case>" from the fixture root.
Its standard output must print the expected results, in order, and one
"error: <message>" line per expected error. The benchmark directory is
never run.

Running golden with no arguments is the same as "golden run".`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE: runRun,
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")

	flags.StringVarP(&rootDir, "root", "C", ".", "Fixture root containing one directory per suite")
	flags.StringVar(&configPath, "config", "", "Config file (default <root>/golden.toml if present)")
	flags.StringVar(&toolFlag, "tool", "", "Tool command, relative paths resolve from the root")
	flags.StringVar(&fileFlag, "file-flag", "", "Flag passed before the fixture path")
	flags.StringSliceVar(&skipFlag, "skip", nil, "Suite directories to skip, replaces the configured list")
	flags.IntVarP(&jobsFlag, "jobs", "j", 1, "Number of fixtures evaluated concurrently")
	flags.DurationVar(&timeout, "timeout", 0, "Per-fixture timeout, 0 waits forever")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&journal, "journal", "", "Append a JSON Lines record of the run to this file")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
