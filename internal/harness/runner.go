package harness

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/firefly-engineering/golden/internal/audit"
	"github.com/firefly-engineering/golden/internal/compare"
	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/invoke"
	"github.com/firefly-engineering/golden/internal/logging"
	"github.com/firefly-engineering/golden/internal/output"
	"github.com/firefly-engineering/golden/internal/report"
	"github.com/firefly-engineering/golden/internal/system"
)

// Runner evaluates cases and feeds their outcomes to a Reporter.
type Runner struct {
	fs       system.FileSystem
	invoker  *invoke.Invoker
	reporter *report.Reporter
	jobs     int
	journal  *audit.Logger
}

// New creates a Runner. jobs below 1 means sequential.
func New(fsys system.FileSystem, invoker *invoke.Invoker, reporter *report.Reporter, jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		fs:       fsys,
		invoker:  invoker,
		reporter: reporter,
		jobs:     jobs,
	}
}

// SetJournal makes the Runner append one event per case to j.
func (r *Runner) SetJournal(j *audit.Logger) {
	r.journal = j
}

// Run evaluates every case of every suite. The returned Stats cover the
// cases reported before any fatal error.
func (r *Runner) Run(ctx context.Context, suites []fixture.Suite) (report.Stats, error) {
	r.journalEvent(audit.EventRunStart, fmt.Sprintf("suites=%d cases=%d", len(suites), fixture.Count(suites)))

	stats, err := r.run(ctx, suites)
	if err != nil {
		r.journalEvent(audit.EventAbort, fmt.Sprintf("after %d cases: %v", stats.Total, err))
		return stats, err
	}

	r.journalEvent(audit.EventRunEnd, fmt.Sprintf("total=%d ok=%d ko=%d", stats.Total, stats.OK, stats.KO))
	return stats, nil
}

func (r *Runner) run(ctx context.Context, suites []fixture.Suite) (report.Stats, error) {
	var stats report.Stats

	for _, suite := range suites {
		r.reporter.Suite(suite.Name, len(suite.Cases))

		var err error
		if r.jobs == 1 {
			stats, err = r.runSequential(ctx, suite.Cases, stats)
		} else {
			stats, err = r.runPool(ctx, suite.Cases, stats)
		}
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (r *Runner) Evaluate(ctx context.Context, c fixture.Case) (report.Outcome, error) {
	o := report.Outcome{
		Suite:   c.Suite,
		Case:    c.Name,
		Command: r.invoker.CommandLine(c.Path),
	}

	if err := ctx.Err(); err != nil {
		return o, err
	}

	text, err := c.Load(r.fs)
	if err != nil {
		o.Fault = err
		return o, nil
	}

	expected, err := fixture.Extract(text)
	if err != nil {
		o.Fault = err
		return o, nil
	}

	run, err := r.invoker.Run(ctx, c.Path)
	if stderrors.Is(err, invoke.ErrTimeout) {
		o.Fault = err
		return o, nil
	}
	if err != nil {
		return o, err
	}

	o.Result = compare.Compare(expected, output.Normalize(run.Stdout))
	return o, nil
}

func (r *Runner) runSequential(ctx context.Context, cases []fixture.Case, stats report.Stats) (report.Stats, error) {
	for _, c := range cases {
		o, err := r.Evaluate(ctx, c)
		if err != nil {
			return stats, err
		}
		stats = r.record(o, stats)
	}
	return stats, nil
}

type slot struct {
	outcome report.Outcome
	err     error
	done    chan struct{}
}

// runPool evaluates cases on up to r.jobs workers and reports them in order
// as soon as each one and all its predecessors are done.
func (r *Runner) runPool(ctx context.Context, cases []fixture.Case, stats report.Stats) (report.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]slot, len(cases))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, c := range cases {
			g.Go(func() error {
				defer close(slots[i].done)
				slots[i].outcome, slots[i].err = r.Evaluate(gctx, c)
				return slots[i].err
			})
		}
	}()

	var failed error
	for i := range slots {
		<-slots[i].done
		if slots[i].err != nil {
			failed = slots[i].err
			cancel()
			break
		}
		stats = r.record(slots[i].outcome, stats)
	}

	<-launched
	// Wait returns the error that triggered cancellation, which is more
	// useful than the context error a later slot may have observed.
	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, failed
}

func (r *Runner) record(o report.Outcome, stats report.Stats) report.Stats {
	r.reporter.Case(o)

	log := logging.ForCase(o.Suite, o.Case)
	if o.Fault != nil {
		log.Debug("case faulted", "fault", o.Fault)
	} else {
		log.Debug("case evaluated", "passed", o.Passed())
	}

	if r.journal != nil {
		if err := r.journal.LogCase(o.ID(), o.Passed(), details(o)); err != nil {
			log.Warn("failed to write journal", "path", r.journal.Path(), "error", err)
		}
	}

	return stats.Record(o.Passed())
}

func (r *Runner) journalEvent(t audit.EventType, details string) {
	if r.journal == nil {
		return
	}
	if err := r.journal.LogEvent(t, details); err != nil {
		logging.Warn("failed to write journal", "path", r.journal.Path(), "error", err)
	}
}

// details summarizes why o failed, for the journal.
func details(o report.Outcome) string {
	if o.Fault != nil {
		return o.Fault.Error()
	}
	var parts []string
	for _, m := range o.Result.Mismatches() {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, "; ")
}
