package structpool

import (
	"fmt"

	"github.com/joshuapare/structpool/internal/vmpage"
)

// XCalloc allocates units contiguous elements of the named registered
// record, zero-filled, and returns the payload slice. It returns
// ErrNotRegistered if name was never registered, ErrRequestTooLarge if
// units*size exceeds one page's payload capacity, or a wrapped
// vmpage.ErrOutOfMemory if a fresh page could not be mapped.
func (m *Manager) XCalloc(name string, units uint32) ([]byte, error) {
	rec, ok := m.lookup(name)
	if !ok {
		return nil, ErrNotRegistered
	}

	req := int32(units) * int32(rec.size)
	if req > payloadCapacityFor(m.pageSize) {
		return nil, ErrRequestTooLarge
	}

	candidate := rec.freeChain.Front()
	var h *blockHeader
	if candidate == nil || candidate.Value().dataBlockSize < req {
		page, err := m.growRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("structpool: grow record %q: %w", name, err)
		}
		logAlloc("grew record", "record", name, "req", req)
		h = page.first
	} else {
		h = candidate.Value()
	}

	m.splitForAllocation(rec, h, req)

	payload := h.payload()
	for i := range payload {
		payload[i] = 0
	}
	if len(payload) > 0 {
		m.live[&payload[0]] = h
	}
	return payload, nil
}

// growRecord maps one fresh page for rec, attaches it at the head of
// rec's data-page list, and returns it with a single free block spanning
// the full payload capacity.
func (m *Manager) growRecord(rec *recordDescriptor) (*dataPage, error) {
	arena, err := vmpage.Request(1)
	if err != nil {
		return nil, err
	}

	page := &dataPage{record: rec, arena: arena}
	first := &blockHeader{
		page:          page,
		isFree:        true,
		dataBlockSize: payloadCapacityFor(m.pageSize),
		offset:        headerPreambleSize,
	}
	page.first = first

	page.next = rec.pages
	if rec.pages != nil {
		rec.pages.prev = page
	}
	rec.pages = page

	first.glue = rec.freeChain.PriorityInsert(first, freeChainCmp)

	return page, nil
}

// splitForAllocation implements the four-case split protocol for a
// candidate free block b against request req.
func (m *Manager) splitForAllocation(rec *recordDescriptor, b *blockHeader, req int32) {
	if b.isFree {
		rec.freeChain.Remove(b.glue)
		b.glue = nil
	}
	b.isFree = false

	rem := b.dataBlockSize - req
	b.dataBlockSize = req

	const s = blockHeaderSize

	// Cases 2 ("soft" internal fragmentation, S < rem < S+E) and 4 (full
	// split, rem >= S+E) are behaviourally identical: both splice a new
	// free block F in, differing only in whether the remainder could host
	// another element of rec. Case 1 (rem == 0) and case 3 ("hard"
	// fragmentation, rem < S) create nothing new; rem == S is treated as
	// case 3, since it leaves no room for a header plus any payload.
	switch {
	case rem == 0:
	case rem <= s:
		// The rem bytes are invisible until b is freed; see free.go's
		// slack absorption.
	default:
		f := &blockHeader{
			page:          b.page,
			isFree:        true,
			dataBlockSize: rem - s,
			offset:        b.offset + s + b.dataBlockSize,
			prev:          b,
			next:          b.next,
		}
		if b.next != nil {
			b.next.prev = f
		}
		b.next = f
		f.glue = rec.freeChain.PriorityInsert(f, freeChainCmp)
	}
}
