package omex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/combinekit/omex/internal/ziputil"
)

// writeRawZip builds a ZIP file from raw members, bypassing the Archive
// writer. Used to model archives produced by other tools.
func writeRawZip(t *testing.T, members map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.omex")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := ziputil.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// writeFixture is writeRawZip plus a trailing manifest.xml member.
func writeFixture(t *testing.T, manifest string, members map[string][]byte) string {
	t.Helper()

	withManifest := make(map[string][]byte, len(members)+1)
	for name, data := range members {
		withManifest[name] = data
	}
	withManifest["manifest.xml"] = []byte(manifest)
	return writeRawZip(t, withManifest)
}
