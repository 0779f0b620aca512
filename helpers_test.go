package structpool

import (
	"testing"

	"github.com/joshuapare/structpool/internal/glist"
)

// walkIntraPageChain checks, for every live page of rec, that offsets
// strictly increase with consistent prev/next links and that no two
// adjacent blocks are both free.
func walkIntraPageChain(t *testing.T, rec *recordDescriptor) {
	t.Helper()
	for pg := rec.pages; pg != nil; pg = pg.next {
		prev := (*blockHeader)(nil)
		for h := pg.first; h != nil; h = h.next {
			if h.prev != prev {
				t.Fatalf("chain broken: h.prev != actual predecessor")
			}
			if prev != nil {
				if h.offset <= prev.offset {
					t.Fatalf("offsets not strictly increasing: prev=%d h=%d", prev.offset, h.offset)
				}
				if prev.isFree && h.isFree {
					t.Fatalf("two adjacent free blocks at offsets %d,%d", prev.offset, h.offset)
				}
			}
			prev = h
		}
	}
}

// assertFreeChainConsistent checks that a block is in rec's free chain
// iff isFree is set, and that the chain is ordered non-increasing by
// size.
func assertFreeChainConsistent(t *testing.T, rec *recordDescriptor) {
	t.Helper()
	inChain := map[*blockHeader]bool{}
	last := int32(1<<31 - 1)
	rec.freeChain.Each(func(n *glist.Node[*blockHeader]) bool {
		h := n.Value()
		if h.dataBlockSize > last {
			t.Fatalf("free chain not non-increasing")
		}
		last = h.dataBlockSize
		inChain[h] = true
		return true
	})

	for pg := rec.pages; pg != nil; pg = pg.next {
		for h := pg.first; h != nil; h = h.next {
			if h.isFree != inChain[h] {
				t.Fatalf("block isFree=%v but chain membership=%v", h.isFree, inChain[h])
			}
		}
	}
}

func assertNoEmptyPages(t *testing.T, rec *recordDescriptor) {
	t.Helper()
	for pg := rec.pages; pg != nil; pg = pg.next {
		if isPageEmpty(pg) {
			t.Fatalf("empty page still mapped for record %q", rec.name)
		}
	}
}

func assertArenaCoverage(t *testing.T, m *Manager, rec *recordDescriptor) {
	t.Helper()
	capacity := payloadCapacityFor(m.PageSize())
	for pg := rec.pages; pg != nil; pg = pg.next {
		var sum int32
		for h := pg.first; h != nil; h = h.next {
			sum += blockHeaderSize + h.dataBlockSize
		}
		if sum != capacity+blockHeaderSize {
			t.Fatalf("arena coverage mismatch: got %d want %d", sum, capacity+blockHeaderSize)
		}
	}
}
