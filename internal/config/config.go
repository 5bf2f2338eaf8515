package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	shellquote "github.com/kballard/go-shellquote"
)

const (
	DefaultConfigFile   = "golden.toml"
	DefaultLanguage     = "Rev"
	DefaultFileFlag     = "-f"
	DefaultBenchmarkDir = "benchmark"
)

// DefaultTool is the tool location relative to the fixture root: the debug
// build output of the sibling cargo workspace.
func DefaultTool() string {
	tool := filepath.Join("..", "target", "debug", "rev")
	if runtime.GOOS == "windows" {
		tool += ".exe"
	}
	return tool
}

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the harness settings, loaded from golden.toml
type Config struct {
	Language string   `toml:"language"`
	Tool     string   `toml:"tool"`
	FileFlag string   `toml:"file_flag"`
	Skip     []string `toml:"skip"`
	Jobs     int      `toml:"jobs"`
	Timeout  Duration `toml:"timeout"`
	NoColor  bool     `toml:"no_color"`

	// Journal is a JSON Lines file that receives one event per case.
	// Relative paths resolve from the fixture root. Empty disables it.
	Journal string `toml:"journal"`
}

// Default returns the configuration that reproduces a flagless run:
// sequential, no timeout, benchmark directory skipped.
func Default() *Config {
	return &Config{
		Language: DefaultLanguage,
		Tool:     DefaultTool(),
		FileFlag: DefaultFileFlag,
		Skip:     []string{DefaultBenchmarkDir},
		Jobs:     1,
	}
}

// Load reads the config file at path over the defaults.
// A missing file yields the defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tool) == "" {
		return fmt.Errorf("tool is required")
	}

	if c.FileFlag == "" {
		return fmt.Errorf("file_flag is required")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}

	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	for _, name := range c.Skip {
		if name == "" || filepath.Base(name) != name {
			return fmt.Errorf("invalid skip entry %q: must be a directory name", name)
		}
	}

	if _, err := c.ToolArgv(); err != nil {
		return err
	}

	return nil
}

// ToolArgv splits the tool command into argv.
// A value without spaces or quotes is taken verbatim so Windows paths keep
// their backslashes; anything else is split with shell quoting rules.
func (c *Config) ToolArgv() ([]string, error) {
	if !strings.ContainsAny(c.Tool, " \t'\"") {
		return []string{c.Tool}, nil
	}

	argv, err := shellquote.Split(c.Tool)
	if err != nil {
		return nil, fmt.Errorf("invalid tool command %q: %w", c.Tool, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tool is required")
	}
	return argv, nil
}

// SkipSet returns the skipped directory names as a set.
func (c *Config) SkipSet() map[string]bool {
	set := make(map[string]bool, len(c.Skip))
	for _, name := range c.Skip {
		set[name] = true
	}
	return set
}
