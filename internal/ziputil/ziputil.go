// Package ziputil wraps archive/zip with klauspost's Deflate on both the
// read and write paths.
package ziputil

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// ErrMemberNotFound is returned by ReadMember for an unknown member name.
var ErrMemberNotFound = errors.New("ziputil: member not found")

// NewWriter returns a zip.Writer that compresses members with klauspost
// deflate at the default level. zip.Writer.Create already selects the
// Deflate method; only the implementation is swapped.
func NewWriter(w io.Writer) *zip.Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return zw
}

// NewReader decodes in-memory ZIP bytes. Member names containing ".."
// are tolerated here (zip.ErrInsecurePath is swallowed); path safety is
// the extractor's concern.
func NewReader(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, err
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
	return zr, nil
}

// ReadMember returns the decompressed bytes of the named member. Member
// names are matched exactly against the ZIP directory; no path
// normalization is applied.
func ReadMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open member %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read member %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
}
