package vmpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeIsPositiveAndStable(t *testing.T) {
	s1 := Size()
	s2 := Size()
	assert.Greater(t, s1, 0)
	assert.Equal(t, s1, s2)
}

func TestRequestReturnsZeroFilledPages(t *testing.T) {
	b, err := Request(2)
	require.NoError(t, err)
	require.Len(t, b, 2*Size())

	for _, c := range b {
		require.Zero(t, c)
	}

	b[0] = 0xFF
	b[len(b)-1] = 0xAB
	assert.NoError(t, Release(b))
}

func TestRequestRejectsNonPositiveCount(t *testing.T) {
	_, err := Request(0)
	assert.Error(t, err)

	_, err = Request(-1)
	assert.Error(t, err)
}

func TestReleaseOfEmptySliceIsNoop(t *testing.T) {
	assert.NoError(t, Release(nil))
}
