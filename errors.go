package omex

import "errors"

// Sentinel errors. Operations attach context (the offending location or
// format) by wrapping these with fmt.Errorf("%w: ..."); match with
// errors.Is.
var (
	// ErrFileNotFound is returned when a location is not present in the
	// archive, or its bytes cannot be located.
	ErrFileNotFound = errors.New("omex: file not found")

	// ErrFormatNotFound is returned when no entry matches a format filter.
	ErrFormatNotFound = errors.New("omex: no entry with format")

	// ErrMasterNotFound is returned when no entry is flagged as master.
	ErrMasterNotFound = errors.New("omex: no master file")

	// ErrLocationExists is returned by Manifest.AddEntry when the location
	// is already indexed.
	ErrLocationExists = errors.New("omex: location already exists")

	// ErrNoPath is returned by SaveInPlace on an archive that was not
	// opened from (or previously saved to) a file.
	ErrNoPath = errors.New("omex: archive has no bound path")

	// ErrNotUTF8 is returned by Entry.Text when the entry bytes are not
	// valid UTF-8.
	ErrNotUTF8 = errors.New("omex: entry data is not valid UTF-8")
)
