package structpool

import (
	"unsafe"

	"github.com/joshuapare/structpool/internal/glist"
	"github.com/joshuapare/structpool/internal/vmpage"
)

// recordDescriptor holds everything the allocator tracks for one
// registered record type: its fixed element size, the head of its
// data-page list, and its free-block priority chain.
type recordDescriptor struct {
	name      string
	size      uint32
	pages     *dataPage
	freeChain *glist.List[*blockHeader]
}

// registryPage is one spine link. Its descriptor slots and next-pointer
// are ordinary Go fields (see layout.go's note on why block/page/registry
// metadata can't be packed into a raw mmap'd region in Go); osPage is held
// only to account for the page-granularity mapping event the C original
// performs for registry growth, reproducing its in-band-storage behaviour
// without literally placing GC-tracked pointers in unsafely-cast bytes.
type registryPage struct {
	records [MaxRecordsPerPageHint]recordDescriptor
	count   int
	next    *registryPage
	osPage  []byte
}

// MaxRecordsPerPageHint is the static upper bound on descriptors per
// registry page and the length of each page's descriptor array.
// Manager.maxRecordsPerPage (computed at New() from the live page size and
// unsafe.Sizeof(recordDescriptor{})) is the enforced capacity per page; it
// is clamped to this bound, so on pages that could hold more descriptors
// only MaxRecordsPerPageHint of them are used.
const MaxRecordsPerPageHint = 64

func maxRecordsPerPage(pageSize int) int {
	n := pageSize / int(unsafe.Sizeof(recordDescriptor{}))
	if n > MaxRecordsPerPageHint {
		n = MaxRecordsPerPageHint
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Register creates a new record descriptor named name with fixed element
// size. It returns ErrElementTooLarge if size is zero or exceeds the
// system page size, or ErrDuplicateRecord if name is already registered
// anywhere in the spine.
func (m *Manager) Register(name string, size uint32) error {
	if size == 0 || int(size) > m.pageSize {
		return ErrElementTooLarge
	}
	if len(name) > MaxStructNameSize {
		name = name[:MaxStructNameSize]
	}
	if _, ok := m.lookup(name); ok {
		return ErrDuplicateRecord
	}

	if m.registry == nil || m.registry.count >= m.maxRecordsPerPage {
		fresh, err := m.newRegistryPage()
		if err != nil {
			return err
		}
		fresh.next = m.registry
		m.registry = fresh
	}

	slot := &m.registry.records[m.registry.count]
	slot.name = name
	slot.size = size
	slot.pages = nil
	slot.freeChain = glist.New[*blockHeader]()
	m.registry.count++

	return nil
}

func (m *Manager) newRegistryPage() (*registryPage, error) {
	page, err := vmpage.Request(1)
	if err != nil {
		return nil, err
	}
	return &registryPage{osPage: page}, nil
}

// lookup performs a bounded linear scan across the registry spine and
// each page's slots.
func (m *Manager) lookup(name string) (*recordDescriptor, bool) {
	if len(name) > MaxStructNameSize {
		name = name[:MaxStructNameSize]
	}
	for rp := m.registry; rp != nil; rp = rp.next {
		for i := 0; i < rp.count; i++ {
			if rp.records[i].name == name {
				return &rp.records[i], true
			}
		}
	}
	return nil, false
}
