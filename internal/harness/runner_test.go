package harness

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/firefly-engineering/golden/internal/audit"
	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/invoke"
	"github.com/firefly-engineering/golden/internal/report"
	"github.com/firefly-engineering/golden/internal/system"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// env wires a Runner to an in-memory fixture tree and a scripted tool.
type env struct {
	fs       *system.MockFS
	executor *system.MockExecutor
	out      bytes.Buffer
	timeout  time.Duration
}

func newEnv() *env {
	e := &env{
		fs:       system.NewMockFS(),
		executor: system.NewMockExecutor(),
	}
	e.fs.AddDir("root")
	return e
}

// fixture adds a case and the stdout the tool prints for it.
func (e *env) fixture(path, text, stdout string) {
	e.fs.AddFile(filepath.Join("root", path), []byte(text), 0644)
	e.executor.AddResponse("rev -f "+path, []byte(stdout), nil)
}

func (e *env) runner(t *testing.T, jobs int) *Runner {
	t.Helper()
	inv, err := invoke.New(e.executor, invoke.Options{
		Argv:     []string{"rev"},
		FileFlag: "-f",
		Dir:      "root",
		Timeout:  e.timeout,
	})
	require.NoError(t, err)
	return New(e.fs, inv, report.NewReporter(&e.out, report.Options{}), jobs)
}

func (e *env) run(t *testing.T, jobs int) (report.Stats, error) {
	t.Helper()
	suites, err := fixture.Discover(e.fs, "root", map[string]bool{"benchmark": true})
	require.NoError(t, err)
	return e.runner(t, jobs).Run(context.Background(), suites)
}

func TestRun_ScenarioA_ExpectMatches(t *testing.T) {
	e := newEnv()
	e.fixture("basics/add.rev", "print 40 + 2; // expect: 42\n", "42\n")

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Total: 1, OK: 1}, stats)
	assert.Contains(t, e.out.String(), "testing basics::add.rev... Ok")
}

func TestRun_ScenarioB_DiagnosticBlock(t *testing.T) {
	e := newEnv()
	e.fixture("errors/undefined.rev",
		"print x; // error: undefined variable x\n",
		"error: undefined variable x\n  --> errors/undefined.rev:1:7\n 1 | print x;\n   |       ^\n")

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Total: 1, OK: 1}, stats)
}

func TestRun_ScenarioC_ShortOutput(t *testing.T) {
	e := newEnv()
	e.fixture("basics/two.rev", "print 1; // expect: 1\nprint 2; // expect: 2\n", "1\n")

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Total: 1, KO: 1}, stats)
	out := e.out.String()
	assert.Contains(t, out, "testing basics::two.rev... Ko")
	assert.Contains(t, out, "Expected:\n[\"1\", \"2\"]\nGot:\n[\"1\"]")
}

func TestRun_ScenarioD_MalformedAnnotationFailsOnlyThatCase(t *testing.T) {
	e := newEnv()
	e.fixture("broken/a_bare.rev", "print y; // error\n", "")
	e.fixture("broken/b_after.rev", "print 1; // expect: 1\n", "1\n")
	e.fixture("later/c.rev", "print 2; // expect: 2\n", "2\n")

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Total: 3, OK: 2, KO: 1}, stats)
	out := e.out.String()
	assert.Contains(t, out, "testing broken::a_bare.rev... Ko")
	assert.Contains(t, out, "malformed annotation")
	assert.Contains(t, out, "testing later::c.rev... Ok")

	for _, cmd := range e.executor.Commands {
		assert.NotEqual(t, "broken/a_bare.rev", cmd.Args[len(cmd.Args)-1], "tool should not run on a malformed fixture")
	}
}

func TestRun_ScenarioE_BenchmarkExcluded(t *testing.T) {
	e := newEnv()
	e.fixture("basics/add.rev", "// expect: 42\n", "42\n")
	e.fixture("benchmark/fib.rev", "// expect: 832040\n", "832040\n")

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total)
	assert.NotContains(t, e.out.String(), "benchmark")
	assert.Len(t, e.executor.Commands, 1)
}

func TestRun_ToolLaunchFailureAborts(t *testing.T) {
	e := newEnv()
	e.fixture("basics/a.rev", "// expect: 1\n", "1\n")
	e.fixture("basics/b.rev", "// expect: 2\n", "")
	e.fixture("basics/c.rev", "// expect: 3\n", "3\n")
	e.executor.AddResponse("rev -f basics/b.rev", nil, fs.ErrNotExist)

	stats, err := e.run(t, 1)
	require.Error(t, err)

	assert.Equal(t, errors.ExitToolFailed, errors.GetExitCode(err))
	assert.Equal(t, report.Stats{Total: 1, OK: 1}, stats)
	assert.NotContains(t, e.out.String(), "basics::c.rev")
}

func TestRun_NonZeroExitStillCompared(t *testing.T) {
	e := newEnv()
	e.fixture("errors/x.rev", "// error: boom\n", "")
	e.executor.Responses["rev -f errors/x.rev"] = system.MockResponse{
		Output: []byte("error: boom\n"),
		Err:    &system.MockExitError{Code: 65},
	}

	stats, err := e.run(t, 1)
	require.NoError(t, err)
	assert.Equal(t, report.Stats{Total: 1, OK: 1}, stats)
}

func TestRun_TimeoutFailsCase(t *testing.T) {
	e := newEnv()
	e.timeout = 20 * time.Millisecond
	e.fixture("basics/loop.rev", "// expect: never\n", "")
	e.fixture("basics/quick.rev", "// expect: 1\n", "1\n")
	e.executor.AddDelayedResponse("rev -f basics/loop.rev", []byte("never\n"), time.Hour)

	stats, err := e.run(t, 1)
	require.NoError(t, err)

	assert.Equal(t, report.Stats{Total: 2, OK: 1, KO: 1}, stats)
	assert.Contains(t, e.out.String(), "tool timed out")
}

func TestRun_Cancelled(t *testing.T) {
	e := newEnv()
	e.fixture("basics/a.rev", "// expect: 1\n", "1\n")

	suites, err := fixture.Discover(e.fs, "root", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := e.runner(t, 1).Run(ctx, suites)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, stats.Total)
}

func TestRun_PoolReportsInDiscoveryOrder(t *testing.T) {
	e := newEnv()
	for i := 0; i < 8; i++ {
		path := fmt.Sprintf("basics/case%d.rev", i)
		e.fixture(path, fmt.Sprintf("// expect: %d\n", i), "")
		// Earlier cases finish last.
		e.executor.Responses["rev -f "+path] = system.MockResponse{
			Output: []byte(fmt.Sprintf("%d\n", i)),
			Delay:  time.Duration(8-i) * 5 * time.Millisecond,
		}
	}

	stats, err := e.run(t, 4)
	require.NoError(t, err)
	assert.Equal(t, report.Stats{Total: 8, OK: 8}, stats)

	var order []string
	for _, line := range strings.Split(e.out.String(), "\n") {
		if strings.HasPrefix(line, "testing ") {
			order = append(order, line)
		}
	}
	require.Len(t, order, 8)
	for i, line := range order {
		assert.Equal(t, fmt.Sprintf("testing basics::case%d.rev... Ok", i), line)
	}
}

func TestRun_PoolMatchesSequential(t *testing.T) {
	build := func() *env {
		e := newEnv()
		e.fixture("a/1.rev", "// expect: 1\n", "1\n")
		e.fixture("a/2.rev", "// expect: 2\n", "3\n")
		e.fixture("a/3.rev", "// error\n", "")
		e.fixture("b/1.rev", "// error: e\n", "error: e\n")
		return e
	}

	seq := build()
	seqStats, err := seq.run(t, 1)
	require.NoError(t, err)

	pool := build()
	poolStats, err := pool.run(t, 3)
	require.NoError(t, err)

	assert.Equal(t, seqStats, poolStats)
	assert.Equal(t, seq.out.String(), pool.out.String())
}

func TestRun_PoolAbortsOnLaunchFailure(t *testing.T) {
	e := newEnv()
	e.fixture("basics/a.rev", "// expect: 1\n", "1\n")
	e.fixture("basics/b.rev", "// expect: 2\n", "")
	e.fixture("basics/c.rev", "// expect: 3\n", "")
	e.executor.AddResponse("rev -f basics/b.rev", nil, fs.ErrPermission)
	e.executor.AddDelayedResponse("rev -f basics/c.rev", []byte("3\n"), time.Hour)

	stats, err := e.run(t, 3)
	require.Error(t, err)

	assert.Equal(t, errors.ExitToolFailed, errors.GetExitCode(err))
	assert.Equal(t, 1, stats.Total)
}

func TestEvaluate_UnreadableFixture(t *testing.T) {
	e := newEnv()
	e.fixture("basics/a.rev", "// expect: 1\n", "1\n")
	suites, err := fixture.Discover(e.fs, "root", nil)
	require.NoError(t, err)

	e.fs.ReadFileErr = fs.ErrPermission
	o, err := e.runner(t, 1).Evaluate(context.Background(), suites[0].Cases[0])
	require.NoError(t, err)

	assert.ErrorIs(t, o.Fault, fs.ErrPermission)
	assert.False(t, o.Passed())
	assert.Equal(t, "rev -f basics/a.rev", o.Command)
}

func TestRun_Journal(t *testing.T) {
	e := newEnv()
	e.fixture("basics/add.rev", "print 40 + 2; // expect: 42\n", "42\n")
	e.fixture("basics/two.rev", "print 1; // expect: 1\nprint 2; // expect: 2\n", "1\n")
	e.fixture("broken/bare.rev", "print y; // error\n", "")

	journal := audit.NewLogger(filepath.Join(t.TempDir(), "journal.jsonl"))
	suites, err := fixture.Discover(e.fs, "root", nil)
	require.NoError(t, err)

	r := e.runner(t, 1)
	r.SetJournal(journal)
	_, err = r.Run(context.Background(), suites)
	require.NoError(t, err)

	events, err := journal.Events()
	require.NoError(t, err)

	var got []string
	for _, ev := range events {
		got = append(got, fmt.Sprintf("%s %s %s", ev.Type, ev.Case, ev.Verdict))
	}
	assert.Equal(t, []string{
		"run_start  ",
		"case basics::add.rev ok",
		"case basics::two.rev ko",
		"case broken::bare.rev ko",
		"run_end  ",
	}, got)
	assert.Equal(t, "suites=2 cases=3", events[0].Details)
	assert.Contains(t, events[2].Details, "results: expected 2")
	assert.Contains(t, events[3].Details, "malformed annotation")
	assert.Equal(t, "total=3 ok=1 ko=2", events[4].Details)
}

func TestRun_JournalRecordsAbort(t *testing.T) {
	e := newEnv()
	e.fixture("basics/add.rev", "// expect: 1\n", "")
	e.executor.AddResponse("rev -f basics/add.rev", nil, fs.ErrNotExist)

	journal := audit.NewLogger(filepath.Join(t.TempDir(), "journal.jsonl"))
	suites, err := fixture.Discover(e.fs, "root", nil)
	require.NoError(t, err)

	r := e.runner(t, 1)
	r.SetJournal(journal)
	_, err = r.Run(context.Background(), suites)
	require.Error(t, err)

	events, err := journal.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, audit.EventAbort, events[1].Type)
	assert.Contains(t, events[1].Details, "after 0 cases")
}
