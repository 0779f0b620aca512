package structpool

import "github.com/joshuapare/structpool/internal/glist"

// blockHeaderSize is the notional, reserved span a block header consumes
// at the front of its slot in a page's arena. Unlike the teacher's
// on-disk cell format, structpool keeps no persistent wire format, so
// block metadata lives in ordinary Go structs (blockHeader) rather than
// packed bytes; ordinary Go pointers inside a raw mmap'd region are not
// tracked by the garbage collector, so they cannot live there safely.
// blockHeaderSize still reserves real, unused arena bytes at every
// header's offset so address arithmetic (nextBySize, slack absorption,
// arena-coverage) stays physically faithful: a payload slice never
// overlaps another block's reserved header span.
const blockHeaderSize = 40

// headerPreambleSize is the fixed, page-base region (back-pointer to the
// owning record plus the record's intra-record prev/next links) that
// precedes the first block header. Like blockHeaderSize, these fields
// exist for real on dataPage as Go struct fields, not as packed arena
// bytes; this constant only reserves the equivalent arena span so offset
// arithmetic lines up with the page's layout.
const headerPreambleSize = 24

// MaxStructNameSize bounds a registered record's name, mirroring the C
// original's MAX_STRUCT_NAME_SIZE.
const MaxStructNameSize = 32

// dataPage is one page-granularity unit owned by exactly one
// recordDescriptor. arena is the raw, pointer-free byte region returned
// by internal/vmpage, the only part of this struct backed by an OS
// mapping.
type dataPage struct {
	record *recordDescriptor
	prev   *dataPage
	next   *dataPage
	first  *blockHeader
	arena  []byte
}

// blockHeader is a header+payload span inside one dataPage's arena.
// offset is the byte offset from the page base (byte 0 of arena) to
// this header.
type blockHeader struct {
	page          *dataPage
	isFree        bool
	dataBlockSize int32
	offset        int32
	prev          *blockHeader
	next          *blockHeader
	glue          *glist.Node[*blockHeader]
}

// payloadCapacityFor returns the page-payload capacity for a page of the
// given total size: the bytes available to the first block's payload on
// a fresh page.
func payloadCapacityFor(pageSize int) int32 {
	return int32(pageSize) - headerPreambleSize - blockHeaderSize
}

// payload returns the live byte slice backing h's data, sliced out of the
// owning page's arena at h's reserved offset.
func (h *blockHeader) payload() []byte {
	start := int(h.offset) + blockHeaderSize
	return h.page.arena[start : start+int(h.dataBlockSize)]
}

// nextBySize returns the byte offset (from page base) of the physical
// next block header, i.e. the address immediately following h's header
// and payload span. It may or may not coincide with h.next's offset; see
// free.go's slack absorption for when the two diverge.
func nextBySize(h *blockHeader) int32 {
	return h.offset + blockHeaderSize + h.dataBlockSize
}

// pageEnd returns the byte offset one past the end of p's usable arena.
func pageEnd(p *dataPage) int32 {
	return int32(len(p.arena))
}

// pageOf recovers the owning page of a header. In the C original this is
// pointer arithmetic against h.offset; here it is simply a stored
// back-pointer field, since Go's GC-managed, independently-mapped pages
// cannot be treated as offsets from one shared base the way C pointer
// subtraction works within a single heap.
func pageOf(h *blockHeader) *dataPage {
	return h.page
}

// isPageEmpty reports whether p's only block is its first block, free,
// with no intra-page neighbours.
func isPageEmpty(p *dataPage) bool {
	f := p.first
	return f.prev == nil && f.next == nil && f.isFree
}

// freeChainCmp orders the free-block priority chain by descending
// data_block_size: cmp(a, b) < 0 means a outranks b.
func freeChainCmp(a, b *blockHeader) int {
	switch {
	case a.dataBlockSize > b.dataBlockSize:
		return -1
	case a.dataBlockSize < b.dataBlockSize:
		return 1
	default:
		return 0
	}
}
