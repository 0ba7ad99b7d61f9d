package ziputil

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := NewWriter(&buf)

	members := map[string][]byte{
		"a.txt":        []byte("alpha"),
		"dir/b.bin":    {0, 1, 2, 255},
		"manifest.xml": []byte("<omexManifest/>"),
	}
	for _, name := range []string{"a.txt", "dir/b.bin", "manifest.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(members[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	zr, err := NewReader(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	for name, want := range members {
		got, err := ReadMember(zr, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestMembersUseDeflate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := NewWriter(&buf)
	w, err := zw.Create("a.txt")
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("compress me "), 100))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := NewReader(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, zip.Deflate, zr.File[0].Method)
	assert.Less(t, zr.File[0].CompressedSize64, zr.File[0].UncompressedSize64)
}

func TestReadMemberNotFound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := NewWriter(&buf)
	_, err := zw.Create("a.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := NewReader(buf.Bytes())
	require.NoError(t, err)

	_, err = ReadMember(zr, "missing.txt")
	require.ErrorIs(t, err, ErrMemberNotFound)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestNewReaderRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewReader([]byte("definitely not a zip"))
	require.Error(t, err)
}

func TestNewReaderToleratesDotDotNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := NewWriter(&buf)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := NewReader(buf.Bytes())
	require.NoError(t, err)
	got, err := ReadMember(zr, "../escape.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}
