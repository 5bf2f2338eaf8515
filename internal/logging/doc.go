// Package logging provides logging utilities for golden.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("invoking tool", "command", cmdline, "case", id)
//	logging.Warn("tool timed out", "case", id, "timeout", timeout)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Using config %s", path)
//	logging.UserSuccess("%d fixtures checked", n)
//	logging.UserWarning("%s: %v", path, err)
//	logging.UserError("Run aborted: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
