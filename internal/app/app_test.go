package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/golden/internal/config"
	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/report"
	"github.com/firefly-engineering/golden/internal/system"
	"github.com/firefly-engineering/golden/internal/testutil"
)

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.FS == nil || app.Executor == nil || app.Out == nil {
		t.Errorf("New() left dependencies unset: %+v", app)
	}
}

func TestNew_WithOptions(t *testing.T) {
	mockFS := system.NewMockFS()
	mockExec := system.NewMockExecutor()
	var buf bytes.Buffer

	app := New(WithFS(mockFS), WithExecutor(mockExec), WithOutput(&buf))

	if app.FS != mockFS {
		t.Error("WithFS did not set the file system")
	}
	if app.Executor != mockExec {
		t.Error("WithExecutor did not set the executor")
	}
	if app.Out != &buf {
		t.Error("WithOutput did not set the output")
	}
}

func TestSetDefault(t *testing.T) {
	custom := New(WithExecutor(system.NewMockExecutor()))
	SetDefault(custom)
	defer ResetDefault()

	if Default != custom {
		t.Error("SetDefault did not set Default")
	}
}

func TestLoadConfig(t *testing.T) {
	tree := testutil.WriteTree(t, `
-- tests/golden.toml --
jobs = 2
`)

	cfg, err := New().LoadConfig(tree.Root, "")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2", cfg.Jobs)
	}
}

func TestLoadConfig_MissingExplicit(t *testing.T) {
	_, err := New().LoadConfig(t.TempDir(), filepath.Join(t.TempDir(), "missing.toml"))
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("LoadConfig() error = %v, want a config error", err)
	}
}

func TestSuites_RootConfigIsNotASuite(t *testing.T) {
	tree := testutil.WriteTree(t, testutil.PassingTree)
	if err := os.WriteFile(filepath.Join(tree.Root, config.DefaultConfigFile), []byte("jobs = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	suites, err := New().Suites(tree.Root, config.Default())
	if err != nil {
		t.Fatalf("Suites() error: %v", err)
	}
	if len(suites) != 1 || suites[0].Name != "basics" {
		t.Errorf("Suites() = %+v, want only basics", suites)
	}
}

func TestRunner_EndToEnd(t *testing.T) {
	tree := testutil.WriteTree(t, testutil.PassingTree)
	tree.WriteFakeTool(t)

	var buf bytes.Buffer
	a := New(WithOutput(&buf))
	cfg := config.Default()
	cfg.Tool = filepath.Join("..", "target", "debug", "rev")

	suites, err := a.Suites(tree.Root, cfg)
	if err != nil {
		t.Fatalf("Suites() error: %v", err)
	}
	runner, _, err := a.Runner(tree.Root, cfg, false)
	if err != nil {
		t.Fatalf("Runner() error: %v", err)
	}

	stats, err := runner.Run(context.Background(), suites)
	if err != nil {
		t.Fatalf("Run() error: %v\n%s", err, buf.String())
	}
	if stats != (report.Stats{Total: 2, OK: 2}) {
		t.Errorf("stats = %+v\n%s", stats, buf.String())
	}
}

func TestRunner_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Jobs = 0

	_, _, err := New().Runner(".", cfg, false)
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("Runner() error = %v, want a config error", err)
	}
}

func TestJournal(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		want    string
	}{
		{"disabled", "", ""},
		{"relative to root", "runs.jsonl", filepath.Join("fixtures", "runs.jsonl")},
		{"absolute", filepath.Join(string(filepath.Separator), "tmp", "runs.jsonl"), filepath.Join(string(filepath.Separator), "tmp", "runs.jsonl")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Journal = tt.journal

			j := Journal("fixtures", cfg)
			if tt.want == "" {
				if j != nil {
					t.Errorf("Journal() = %q, want nil", j.Path())
				}
				return
			}
			if j == nil {
				t.Fatal("Journal() = nil")
			}
			if j.Path() != tt.want {
				t.Errorf("Journal().Path() = %q, want %q", j.Path(), tt.want)
			}
		})
	}
}
