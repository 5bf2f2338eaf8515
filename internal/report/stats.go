// Package report accumulates verdicts and renders the console report.
package report

import "github.com/firefly-engineering/golden/internal/compare"

// Stats counts evaluated cases. It is a value: Record returns the next
// state instead of mutating shared counters, and Total == OK + KO always holds.
type Stats struct {
	Total int
	OK    int
	KO    int
}

// Record returns s with one more case counted.
func (s Stats) Record(passed bool) Stats {
	s.Total++
	if passed {
		s.OK++
	} else {
		s.KO++
	}
	return s
}

// Failed reports whether any recorded case failed.
func (s Stats) Failed() bool {
	return s.KO > 0
}

// Outcome is the evaluation of one case.
type Outcome struct {
	Suite string
	Case  string

	// Command is the shell form of the tool invocation.
	Command string

	Result compare.Result

	// Fault marks a case that could not be judged, such as a fixture with
	// malformed annotations or a tool that timed out. It always fails.
	Fault error
}

// ID identifies the case, e.g. "basics::add.rev".
func (o Outcome) ID() string {
	return o.Suite + "::" + o.Case
}

// Passed reports the verdict.
func (o Outcome) Passed() bool {
	return o.Fault == nil && o.Result.Passed()
}
