package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[]", formatVector(nil))
	assert.Equal(t, "[0.500000,-0.250000,1.000000]", formatVector([]float64{0.5, -0.25, 1}))
}

func TestParseVector(t *testing.T) {
	values, err := parseVector("[0.5,-0.25,1]")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.25, 1}, values)

	values, err = parseVector(" [ 0.1 , 0.2 ] ")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, values)

	values, err = parseVector("[]")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = parseVector("[0.1,abc]")
	assert.Error(t, err)
}

func TestVectorRoundTrip(t *testing.T) {
	original := []float64{0.123456, -0.654321, 0.5}

	parsed, err := parseVector(formatVector(original))
	require.NoError(t, err)
	require.Len(t, parsed, len(original))
	for i := range original {
		assert.InDelta(t, original[i], parsed[i], 1e-6)
	}
}
