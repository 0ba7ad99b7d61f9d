package omex

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Entry is a read result: one archived file's bytes together with its
// manifest record.
//
// An Entry is a snapshot by value. It stays valid (and unchanged) across
// subsequent mutations of the archive that produced it.
type Entry struct {
	// Content is a copy of the manifest record for this entry.
	Content Content

	// Data is the entry's raw bytes.
	Data []byte
}

// Bytes returns the raw entry data.
func (e Entry) Bytes() []byte {
	return e.Data
}

// Text returns the entry data as a string. It fails with ErrNotUTF8 if
// the data is not valid UTF-8.
func (e Entry) Text() (string, error) {
	if !utf8.Valid(e.Data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, e.Content.Location)
	}
	return string(e.Data), nil
}

// Reader returns a seekable reader over the entry data.
func (e Entry) Reader() *bytes.Reader {
	return bytes.NewReader(e.Data)
}
