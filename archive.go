package omex

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/combinekit/omex/internal/ziputil"
)

// Archive is a COMBINE Archive with staged, in-memory mutations.
//
// Adds and removes are tracked against the ZIP bytes the archive was
// loaded from (or last saved as) and merged into a fresh container on
// Save. The manifest decides entry existence; pending bytes and removal
// marks only affect which bytes a read returns.
//
// An Archive is not safe for concurrent use.
type Archive struct {
	manifest *Manifest
	path     string
	original []byte
	pending  map[string][]byte
	removed  map[string]struct{}
	dirty    bool
	logger   *slog.Logger
}

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets a logger for debug tracing of open and save
// operations. The archive is silent by default; errors are returned,
// never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New returns an empty archive with no bound path.
func New(opts ...Option) *Archive {
	a := &Archive{
		manifest: NewManifest(),
		pending:  map[string][]byte{},
		removed:  map[string]struct{}{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open reads an OMEX file from disk, decodes the ZIP container, and
// parses its manifest.xml. The path stays bound to the archive for
// SaveInPlace.
func Open(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	manifest, err := extractManifest(data)
	if err != nil {
		return nil, err
	}

	a := New(opts...)
	a.manifest = manifest
	a.path = path
	a.original = data
	a.logger.Debug("opened archive", "path", path, "entries", len(manifest.Contents))
	return a, nil
}

// extractManifest decodes ZIP bytes and parses the manifest.xml member.
func extractManifest(data []byte) (*Manifest, error) {
	zr, err := ziputil.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	raw, err := ziputil.ReadMember(zr, manifestName)
	if err != nil {
		return nil, fmt.Errorf("extract manifest: %w", err)
	}
	return ParseManifest(raw)
}

// Manifest returns the archive's manifest. It reflects all staged
// mutations and is the authoritative index of the archive.
func (a *Archive) Manifest() *Manifest {
	return a.manifest
}

// Path returns the bound filesystem path, if any.
func (a *Archive) Path() string {
	return a.path
}

// Dirty reports whether the archive has unsaved mutations.
func (a *Archive) Dirty() bool {
	return a.dirty
}

// zipName maps a manifest location to its ZIP member name by stripping
// one leading "./". No further canonicalization happens: locations like
// "./a/./b" or "a/../b" round-trip as given but are only retrievable
// under the exact key they were added with.
func zipName(location string) string {
	return strings.TrimPrefix(location, "./")
}

// AddEntry stages data for the given location.
//
// If the location is already indexed with the same format and master
// flag, the manifest record is kept and only the bytes are replaced. If
// the metadata differs, the old record is dropped and a new one is
// appended, moving the entry to the end of the manifest order.
func (a *Archive) AddEntry(location, format string, master bool, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read entry data: %w", err)
	}

	if existing, ok := a.manifest.find(location); ok {
		if existing.Format == format && existing.Master == master {
			a.stage(zipName(location), data)
			return nil
		}
		a.manifest.removeLocation(location)
	}

	// Cannot collide: any duplicate was removed above.
	if err := a.manifest.AddEntry(location, format, master); err != nil {
		return err
	}
	a.stage(zipName(location), data)
	return nil
}

// AddFile reads a file from disk and stages it at the given location.
func (a *Archive) AddFile(filePath, location, format string, master bool) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()
	return a.AddEntry(location, format, master, f)
}

// stage records bytes for a ZIP member and marks the archive dirty.
func (a *Archive) stage(name string, data []byte) {
	delete(a.removed, name)
	a.pending[name] = data
	a.dirty = true
}

// RemoveEntry drops the manifest record for the location and marks its
// ZIP member for removal. Removing an absent location is not an error.
// Removing the master entry leaves the archive without one.
func (a *Archive) RemoveEntry(location string) {
	name := zipName(location)
	a.manifest.removeLocation(location)
	a.removed[name] = struct{}{}
	delete(a.pending, name)
	a.dirty = true
}

// Entry returns the bytes and manifest record for a location. Staged
// writes win over the original container; locations absent from the
// manifest fail with ErrFileNotFound.
func (a *Archive) Entry(location string) (Entry, error) {
	content, ok := a.manifest.find(location)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrFileNotFound, location)
	}

	name := zipName(location)
	if data, ok := a.pending[name]; ok {
		return Entry{Content: *content, Data: slices.Clone(data)}, nil
	}

	// Unreachable while RemoveEntry drops the manifest record first;
	// kept so a manifest edit through Manifest() cannot resurrect bytes.
	if _, ok := a.removed[name]; ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrFileNotFound, location)
	}

	if a.original != nil {
		zr, err := ziputil.NewReader(a.original)
		if err != nil {
			return Entry{}, fmt.Errorf("decode archive: %w", err)
		}
		data, err := ziputil.ReadMember(zr, name)
		if err == nil {
			return Entry{Content: *content, Data: data}, nil
		}
		if !errors.Is(err, ziputil.ErrMemberNotFound) {
			return Entry{}, err
		}
	}

	return Entry{}, fmt.Errorf("%w: %s", ErrFileNotFound, location)
}

// Master returns the entry flagged as the archive's master file.
func (a *Archive) Master() (Entry, error) {
	content, ok := a.manifest.MasterFile()
	if !ok {
		return Entry{}, ErrMasterNotFound
	}
	return a.Entry(content.Location)
}

// Entries returns copies of all manifest records in manifest order.
func (a *Archive) Entries() []Content {
	return slices.Clone(a.manifest.Contents)
}

// HasEntry reports whether the manifest indexes the location.
func (a *Archive) HasEntry(location string) bool {
	return a.manifest.HasLocation(location)
}

// Bytes builds the merged ZIP container in memory and returns it. The
// archive's state is not changed.
func (a *Archive) Bytes() ([]byte, error) {
	return a.buildZip()
}

// Save writes the merged container to path and rebases the archive onto
// the written bytes: staged mutations are cleared and the path becomes
// the bound path. A failed save leaves the archive untouched, so the
// caller may retry.
func (a *Archive) Save(path string) error {
	data, err := a.buildZip()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	a.path = path
	a.original = data
	a.pending = map[string][]byte{}
	a.removed = map[string]struct{}{}
	a.dirty = false
	a.logger.Debug("saved archive", "path", path, "bytes", len(data), "entries", len(a.manifest.Contents))
	return nil
}

// SaveInPlace saves to the bound path. It fails with ErrNoPath if the
// archive was never opened from or saved to a file.
func (a *Archive) SaveInPlace() error {
	if a.path == "" {
		return ErrNoPath
	}
	return a.Save(a.path)
}
