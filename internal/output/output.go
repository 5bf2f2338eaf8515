// Package output turns the standard output of the tool under test into
// result lines and error messages.
//
// The tool renders diagnostics the way most compilers do:
//
//	error: undefined variable x
//	  --> basics/undefined.rev:1:7
//	 1 | print x;
//	   |       ^
//
// Arrow, gutter and caret lines only locate the error in the source and are
// dropped. A remaining line that mentions "error" carries a message after
// its first ": ". Everything else is a result line. A result that itself
// contains the word "error" is therefore read as an error message; that
// ambiguity is part of the contract with the tool.
package output

import (
	"strings"
)

var framingMarkers = []string{"-->", " | ", "^"}

const (
	errorKeyword   = "error"
	errorSeparator = ": "
)

// Parsed is the observed side of a comparison.
type Parsed struct {
	Results []string
	Errors  []string
}

// IsFraming reports whether line only decorates a diagnostic.
func IsFraming(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, marker := range framingMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Normalize splits stdout into result lines and error messages, keeping
// the order the tool printed them in.
func Normalize(stdout string) Parsed {
	var parsed Parsed

	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if IsFraming(line) {
			continue
		}

		if strings.Contains(line, errorKeyword) {
			parsed.Errors = append(parsed.Errors, errorMessage(line))
			continue
		}
		parsed.Results = append(parsed.Results, strings.TrimSpace(line))
	}

	return parsed
}

// errorMessage returns the text after the first ": " verbatim, or the
// whole trimmed line when the tool printed an error without one.
func errorMessage(line string) string {
	if _, msg, found := strings.Cut(line, errorSeparator); found {
		return msg
	}
	return strings.TrimSpace(line)
}
