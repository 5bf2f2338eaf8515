// Package app provides the application context for golden.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS       system.FileSystem      // Fixture reads
//	    Executor system.CommandExecutor // Tool invocations
//	    Out      io.Writer              // Report output
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithExecutor(mockExecutor),
//	    app.WithOutput(&buf),
//	)
//
// # Assembling a Run
//
//	cfg, err := a.LoadConfig(root, "")
//	suites, err := a.Suites(root, cfg)
//	runner, reporter, err := a.Runner(root, cfg, verbose)
//	stats, err := runner.Run(ctx, suites)
package app
