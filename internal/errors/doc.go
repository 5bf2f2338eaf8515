// Package errors provides typed errors with exit codes for golden.
//
// # Error Types
//
// HarnessError is the base error type that wraps an error with an exit code:
//
//	type HarnessError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess           = 0  // Every case passed
//	ExitGeneralError      = 1  // Failing cases or unknown errors
//	ExitDiscoveryFailed   = 2  // Fixture root or suite unreadable
//	ExitToolFailed        = 3  // Tool under test could not be launched
//	ExitMalformedFixtures = 4  // check found malformed annotations
//	ExitConfigError       = 5  // Configuration error
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
