package omex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Locations returns every manifest location in manifest order.
func (a *Archive) Locations() []string {
	locations := make([]string, 0, len(a.manifest.Contents))
	for _, c := range a.manifest.Contents {
		locations = append(locations, c.Location)
	}
	return locations
}

// EntryFormat returns the format recorded for a location.
func (a *Archive) EntryFormat(location string) (string, bool) {
	c, ok := a.manifest.find(location)
	if !ok {
		return "", false
	}
	return c.Format, true
}

// EntriesByFormat returns all entries whose manifest format matches.
// The filter accepts a known-format shorthand ("sbml") as well as a
// literal format string; it fails with ErrFormatNotFound when nothing
// matches.
func (a *Archive) EntriesByFormat(format string) ([]Entry, error) {
	resolved := format
	if f, err := ParseFormat(format); err == nil {
		resolved = f.URI()
	}

	var entries []Entry
	for _, c := range a.manifest.Contents {
		if c.Format != resolved {
			continue
		}
		entry, err := a.Entry(c.Location)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotFound, format)
	}
	return entries, nil
}

// ExtractAll returns the bytes of every readable entry, keyed by
// location. Manifest records without a backing member (such as a "."
// self-reference in archives produced elsewhere) are skipped.
func (a *Archive) ExtractAll() (map[string][]byte, error) {
	extracted := make(map[string][]byte, len(a.manifest.Contents))
	for _, c := range a.manifest.Contents {
		entry, err := a.Entry(c.Location)
		if errors.Is(err, ErrFileNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		extracted[c.Location] = entry.Data
	}
	return extracted, nil
}

// ExtractOption configures ExtractTo.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	workers   int
	overwrite bool
}

// ExtractWithWorkers sets the number of parallel extraction workers.
// Values <= 0 use one worker per CPU.
func ExtractWithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		c.workers = n
	}
}

// ExtractWithOverwrite allows overwriting existing files. By default,
// existing files are skipped.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractTo writes every readable entry beneath destDir, creating parent
// directories as needed. Entries are written in parallel; the archive
// must not be mutated while an extraction runs.
func (a *Archive) ExtractTo(destDir string, opts ...ExtractOption) error {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for _, location := range a.Locations() {
		location := location
		g.Go(func() error {
			entry, err := a.Entry(location)
			if errors.Is(err, ErrFileNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return writeExtracted(destDir, zipName(location), entry.Data, &cfg)
		})
	}
	return g.Wait()
}

// writeExtracted writes one entry under destDir, refusing names that
// would escape it.
func writeExtracted(destDir, name string, data []byte, cfg *extractConfig) error {
	rel := filepath.Clean(filepath.FromSlash(name))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("unsafe entry path: %s", name)
	}

	dest := filepath.Join(destDir, rel)
	if !cfg.overwrite {
		if _, err := os.Stat(dest); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
