package structpool

import "github.com/joshuapare/structpool/internal/vmpage"

// XFree releases a payload slice previously returned by XCalloc. It
// returns ErrDoubleFree if the owning block is not currently marked
// allocated, the only debug-time check performed; anything else about a
// foreign or already-freed pointer is undefined behaviour by design and
// is not guarded against. Freeing a zero-length slice (from an
// XCalloc(name, 0) call) is a no-op.
func (m *Manager) XFree(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	h, ok := m.live[&p[0]]
	if !ok || h.isFree {
		return ErrDoubleFree
	}
	delete(m.live, &p[0])

	h.isFree = true
	page := pageOf(h)
	rec := page.record

	absorbSlack(page, h)

	if h.next != nil && h.next.isFree {
		forwardCoalesce(rec, h)
	}

	if h.prev != nil && h.prev.isFree {
		h = backwardCoalesce(rec, h)
	}

	if isPageEmpty(page) {
		detachPage(rec, page)
		logAlloc("releasing empty page", "record", rec.name)
		return vmpage.Release(page.arena)
	}

	h.glue = rec.freeChain.PriorityInsert(h, freeChainCmp)
	return nil
}

// absorbSlack reclaims hard-fragmentation bytes left invisible by a
// case-3 split: the gap between h's physical end and either its next
// neighbour's offset, or the page end if h is last.
func absorbSlack(page *dataPage, h *blockHeader) {
	var slack int32
	if h.next != nil {
		slack = h.next.offset - nextBySize(h)
	} else {
		slack = pageEnd(page) - nextBySize(h)
	}
	h.dataBlockSize += slack
}

// forwardCoalesce merges h with its free intra-page successor, removing
// the successor from rec's free chain and splicing its own successor in.
func forwardCoalesce(rec *recordDescriptor, h *blockHeader) {
	n := h.next
	rec.freeChain.Remove(n.glue)

	h.dataBlockSize += blockHeaderSize + n.dataBlockSize
	h.next = n.next
	if n.next != nil {
		n.next.prev = h
	}
}

// backwardCoalesce merges h into its free intra-page predecessor. The
// predecessor is already present in rec's free chain, but its size (and
// therefore its ranking) is about to change, so it must be removed before
// its data_block_size is mutated and only re-inserted once, by XFree
// itself after any coalescing is finished. Returns the surviving,
// now-larger predecessor header.
func backwardCoalesce(rec *recordDescriptor, h *blockHeader) *blockHeader {
	p := h.prev
	rec.freeChain.Remove(p.glue)
	p.glue = nil

	p.dataBlockSize += blockHeaderSize + h.dataBlockSize
	p.next = h.next
	if h.next != nil {
		h.next.prev = p
	}
	return p
}

// detachPage unlinks an emptied page from rec's data-page list.
func detachPage(rec *recordDescriptor, page *dataPage) {
	if page.prev != nil {
		page.prev.next = page.next
	} else {
		rec.pages = page.next
	}
	if page.next != nil {
		page.next.prev = page.prev
	}
}
