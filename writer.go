package omex

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/combinekit/omex/internal/ziputil"
)

// buildZip merges the original container with the staged mutations.
//
// The output contains, in order: the original members that are neither
// removed, overwritten, nor the manifest; the pending members (sorted by
// name so repeated builds are deterministic); and exactly one trailing
// manifest.xml serialized from the current manifest. The trailing
// manifest always overrides whatever the original carried.
func (a *Archive) buildZip() ([]byte, error) {
	var buf bytes.Buffer
	zw := ziputil.NewWriter(&buf)

	if a.original != nil {
		zr, err := ziputil.NewReader(a.original)
		if err != nil {
			return nil, fmt.Errorf("decode archive: %w", err)
		}
		for _, f := range zr.File {
			name := f.Name
			if name == manifestName {
				continue
			}
			if _, ok := a.removed[name]; ok {
				continue
			}
			if _, ok := a.pending[name]; ok {
				continue
			}
			if err := copyMember(zw, f); err != nil {
				return nil, err
			}
		}
	}

	pendingNames := make([]string, 0, len(a.pending))
	for name := range a.pending {
		pendingNames = append(pendingNames, name)
	}
	slices.Sort(pendingNames)
	for _, name := range pendingNames {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("add member %s: %w", name, err)
		}
		if _, err := w.Write(a.pending[name]); err != nil {
			return nil, fmt.Errorf("write member %s: %w", name, err)
		}
	}

	manifest, err := a.manifest.XML()
	if err != nil {
		return nil, err
	}
	w, err := zw.Create(manifestName)
	if err != nil {
		return nil, fmt.Errorf("add member %s: %w", manifestName, err)
	}
	if _, err := w.Write(manifest); err != nil {
		return nil, fmt.Errorf("write member %s: %w", manifestName, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// copyMember re-encodes one original member into the output. Only the
// bytes are preserved, not the original encoding.
func copyMember(zw *zip.Writer, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer rc.Close()

	w, err := zw.Create(f.Name)
	if err != nil {
		return fmt.Errorf("add member %s: %w", f.Name, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copy member %s: %w", f.Name, err)
	}
	return nil
}
