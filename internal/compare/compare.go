// Package compare decides the verdict for a fixture by matching observed
// output against its annotations.
package compare

import (
	"fmt"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/output"
)

// Channel names one of the two compared sequences.
type Channel string

const (
	ChannelResults Channel = "results"
	ChannelErrors  Channel = "errors"
)

// Result holds the verdict and both sides of both channels.
type Result struct {
	ExpectedResults []string
	ObservedResults []string
	ExpectedErrors  []string
	ObservedErrors  []string
}

// Mismatch describes one channel whose sequences differ.
type Mismatch struct {
	Channel  Channel
	Expected []string
	Observed []string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %d %q, got %d %q",
		m.Channel, len(m.Expected), m.Expected, len(m.Observed), m.Observed)
}

// Compare pairs the expectations of a fixture with the parsed tool output.
func Compare(expected fixture.Expectations, observed output.Parsed) Result {
	return Result{
		ExpectedResults: expected.Results,
		ObservedResults: observed.Results,
		ExpectedErrors:  expected.Errors,
		ObservedErrors:  observed.Errors,
	}
}

// Passed reports whether both channels match element by element, in order.
// Nil and empty sequences are equal.
func (r Result) Passed() bool {
	return slices.Equal(r.ExpectedResults, r.ObservedResults) &&
		slices.Equal(r.ExpectedErrors, r.ObservedErrors)
}

// Mismatches lists each channel that differs, results first.
func (r Result) Mismatches() []Mismatch {
	var mismatches []Mismatch
	if !slices.Equal(r.ExpectedResults, r.ObservedResults) {
		mismatches = append(mismatches, Mismatch{
			Channel:  ChannelResults,
			Expected: r.ExpectedResults,
			Observed: r.ObservedResults,
		})
	}
	if !slices.Equal(r.ExpectedErrors, r.ObservedErrors) {
		mismatches = append(mismatches, Mismatch{
			Channel:  ChannelErrors,
			Expected: r.ExpectedErrors,
			Observed: r.ObservedErrors,
		})
	}
	return mismatches
}

// channels is the shape Diff renders; field names become diff labels.
type channels struct {
	Results []string
	Errors  []string
}

// Diff renders the differences as a (-expected +observed) listing.
// It is empty when the result passed.
func (r Result) Diff() string {
	return cmp.Diff(
		channels{Results: r.ExpectedResults, Errors: r.ExpectedErrors},
		channels{Results: r.ObservedResults, Errors: r.ObservedErrors},
		cmpopts.EquateEmpty(),
	)
}
