// Package structpool is a user-space dynamic memory manager that sits
// directly atop the operating system's anonymous virtual-memory mapping
// primitive. Callers first register a named record type with a fixed
// element size, then request arrays of that element with XCalloc and
// release them with XFree.
//
// The manager carves OS-backed pages into variable-sized blocks with
// inline metadata, tracks free blocks per record via a largest-block-first
// priority chain, splits blocks to satisfy requests, coalesces adjacent
// free blocks eagerly, and reclaims a page to the OS the moment it holds
// no live blocks. The bytes it hands back to callers always come from a
// whole page requested through internal/vmpage; on unix builds that is an
// anonymous mmap, on other platforms an ordinary Go byte slice.
//
// A *Manager is not safe for concurrent use. Callers needing concurrent
// access must synchronize externally; a lock per record descriptor plus
// one covering registry growth is sufficient, but structpool does not
// build one in.
package structpool

import "github.com/joshuapare/structpool/internal/vmpage"

// Manager is the single encapsulation of what the allocator treats as
// process-wide state: the page size read once at construction and the
// head of the registry spine. Construct one with New.
type Manager struct {
	pageSize          int
	registry          *registryPage
	maxRecordsPerPage int

	// live maps a payload's first byte to its owning header. The C
	// original recovers a block header by subtracting sizeof(header)
	// from the freed pointer; structpool keeps headers as ordinary Go
	// structs (see layout.go), so XFree instead looks the header up by
	// the address of the payload's first byte, which XCalloc records
	// here at allocation time and XFree removes.
	live map[*byte]*blockHeader
}

// New constructs a Manager, reading the system page size once.
func New() *Manager {
	pageSize := vmpage.Size()
	return &Manager{
		pageSize:          pageSize,
		maxRecordsPerPage: maxRecordsPerPage(pageSize),
		live:              make(map[*byte]*blockHeader),
	}
}

// PageSize returns the system page size this Manager was constructed with.
func (m *Manager) PageSize() int { return m.pageSize }
