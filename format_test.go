package omex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
	}{
		{"sbml", FormatSBML},
		{"sedml", FormatSEDML},
		{"sbgn", FormatSBGN},
		{"http://identifiers.org/combine.specifications/sbml", FormatSBML},
		{"http://identifiers.org/combine.specifications/sed", FormatSEDML},
		{"http://identifiers.org/combine.specifications/sbgn", FormatSBGN},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseFormatUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseFormat("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")

	_, err = ParseFormat("")
	require.Error(t, err)
}

func TestFormatURI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://identifiers.org/combine.specifications/sbml", FormatSBML.URI())
	assert.Equal(t, "http://identifiers.org/combine.specifications/sed", FormatSEDML.URI())
	assert.Equal(t, "http://identifiers.org/combine.specifications/sbgn", FormatSBGN.URI())
	assert.Equal(t, FormatSBML.URI(), FormatSBML.String())
	assert.Equal(t, "unknown", Format(0).URI())
}
