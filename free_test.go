package structpool

import (
	"testing"

	"github.com/joshuapare/structpool/internal/glist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXFreeDoubleFreeReturnsError(t *testing.T) {
	m := New()
	require.NoError(t, m.Register("emp", 100))

	p, err := m.XCalloc("emp", 1)
	require.NoError(t, err)

	require.NoError(t, m.XFree(p))
	assert.ErrorIs(t, m.XFree(p), ErrDoubleFree)
}

// Freeing a middle block leaves it free with no adjacent frees yet;
// freeing its neighbours on both sides forward- and backward-coalesces
// it into one block.
func TestXFreeCoalescesForwardAndBackward(t *testing.T) {
	m := New()
	require.NoError(t, m.Register("emp", 100))

	var ptrs [5][]byte
	var err error
	for i := range ptrs {
		ptrs[i], err = m.XCalloc("emp", 1)
		require.NoError(t, err)
	}

	rec, ok := m.lookup("emp")
	require.True(t, ok)

	require.NoError(t, m.XFree(ptrs[2]))
	walkIntraPageChain(t, rec)
	assertFreeChainConsistent(t, rec)
	assert.Equal(t, 2, rec.freeChain.Len())

	require.NoError(t, m.XFree(ptrs[1]))
	require.NoError(t, m.XFree(ptrs[3]))
	walkIntraPageChain(t, rec)
	assertFreeChainConsistent(t, rec)

	// The merged middle block now spans 3 elements plus two swallowed
	// headers.
	found := false
	rec.freeChain.Each(func(n *glist.Node[*blockHeader]) bool {
		if n.Value().dataBlockSize == 3*100+2*blockHeaderSize {
			found = true
		}
		return true
	})
	assert.True(t, found)
}

// Freeing every allocation of a record returns its mapped page count to
// zero.
func TestXFreeEmptyPageIsReleased(t *testing.T) {
	m := New()
	require.NoError(t, m.Register("big", 2000))

	a, err := m.XCalloc("big", 2)
	require.NoError(t, err)
	b, err := m.XCalloc("big", 1)
	require.NoError(t, err)

	rec, ok := m.lookup("big")
	require.True(t, ok)
	require.Equal(t, 2, countPages(rec))

	require.NoError(t, m.XFree(a))
	assert.Equal(t, 1, countPages(rec))
	assertNoEmptyPages(t, rec)

	require.NoError(t, m.XFree(b))
	assert.Equal(t, 0, countPages(rec))
}

// Repeated alloc/free cycles for the same (record, units) return to an
// equivalent state every time: the emptied page is released, leaving no
// mapped pages and an empty free chain.
func TestAllocFreeRoundTripIsIdempotent(t *testing.T) {
	m := New()
	require.NoError(t, m.Register("emp", 100))

	rec, ok := m.lookup("emp")
	require.True(t, ok)

	for i := 0; i < 25; i++ {
		p, err := m.XCalloc("emp", 1)
		require.NoError(t, err)
		require.NoError(t, m.XFree(p))

		assert.Equal(t, 0, countPages(rec))
		assert.Equal(t, 0, rec.freeChain.Len())
	}
}

func TestFreeZeroLengthSliceIsNoop(t *testing.T) {
	m := New()
	require.NoError(t, m.Register("emp", 100))
	assert.NoError(t, m.XFree(nil))
}
