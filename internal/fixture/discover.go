package fixture

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/system"
)

// Suite is one directory of cases under the fixture root.
type Suite struct {
	Name  string
	Cases []Case
}

// Case is a single fixture file.
type Case struct {
	Suite string
	Name  string

	// Path is relative to the fixture root and is what the tool receives.
	Path string

	// File is the resolved location used to read the fixture.
	File string
}

// ID identifies the case in reports, e.g. "basics::add.rev".
func (c Case) ID() string {
	return c.Suite + "::" + c.Name
}

// Load reads the fixture text.
func (c Case) Load(fsys system.FileSystem) (string, error) {
	data, err := fsys.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("failed to read fixture %s: %w", c.Path, err)
	}
	return string(data), nil
}

// Discover lists the suites under root and the cases in each, both in
// lexical order. Directories named in skip are left out entirely, files
// directly under root are ignored and nothing below one level is visited.
func Discover(fsys system.FileSystem, root string, skip map[string]bool) ([]Suite, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.DiscoveryFailed(root, err)
	}

	base, err := scopeRoot(root)
	if err != nil {
		return nil, errors.DiscoveryFailed(root, err)
	}

	var suites []Suite
	for _, entry := range sortedEntries(entries) {
		name := entry.Name()
		if skip[name] {
			continue
		}

		dir, err := securejoin.SecureJoinVFS(base, name, fsys)
		if err != nil {
			return nil, errors.DiscoveryFailed(root, err)
		}
		if !isDir(fsys, entry, dir) {
			continue
		}

		cases, err := discoverCases(fsys, base, name)
		if err != nil {
			return nil, err
		}
		suites = append(suites, Suite{Name: name, Cases: cases})
	}

	return suites, nil
}

func discoverCases(fsys system.FileSystem, root, suite string) ([]Case, error) {
	dir, err := securejoin.SecureJoinVFS(root, suite, fsys)
	if err != nil {
		return nil, errors.DiscoveryFailed(suite, err)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.DiscoveryFailed(dir, err)
	}

	var cases []Case
	for _, entry := range sortedEntries(entries) {
		file, err := securejoin.SecureJoinVFS(root, filepath.Join(suite, entry.Name()), fsys)
		if err != nil {
			return nil, errors.DiscoveryFailed(dir, err)
		}
		if !isRegular(fsys, entry, file) {
			continue
		}

		cases = append(cases, Case{
			Suite: suite,
			Name:  entry.Name(),
			Path:  filepath.Join(suite, entry.Name()),
			File:  file,
		})
	}

	return cases, nil
}

// scopeRoot cleans root for use as a securejoin scope, which must not
// contain "..": such a root is made absolute instead.
func scopeRoot(root string) (string, error) {
	clean := filepath.Clean(root)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return filepath.Abs(clean)
	}
	return clean, nil
}

// Count returns the number of cases across suites.
func Count(suites []Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Cases)
	}
	return n
}

func sortedEntries(entries []fs.DirEntry) []fs.DirEntry {
	sorted := make([]fs.DirEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	return sorted
}

// Symlinks are followed; the target was already confined to root by SecureJoinVFS.
func isDir(fsys system.FileSystem, entry fs.DirEntry, path string) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		return fsys.IsDir(path)
	}
	return entry.IsDir()
}

func isRegular(fsys system.FileSystem, entry fs.DirEntry, path string) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := fsys.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return entry.Type().IsRegular()
}
