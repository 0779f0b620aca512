package structpool

import (
	"errors"

	"github.com/joshuapare/structpool/internal/vmpage"
)

// ErrOutOfMemory is returned (wrapped) by XCalloc when the OS refuses to
// map a fresh page. It is an alias for internal/vmpage's sentinel so
// callers outside this module can still errors.Is against it without
// importing an internal package.
var ErrOutOfMemory = vmpage.ErrOutOfMemory

var (
	// ErrNotRegistered is returned by XCalloc when the given record name has
	// not been registered.
	ErrNotRegistered = errors.New("structpool: record not registered")

	// ErrRequestTooLarge is returned by XCalloc when units*size exceeds the
	// page payload capacity, even for a single fresh page.
	ErrRequestTooLarge = errors.New("structpool: request exceeds page payload capacity")

	// ErrElementTooLarge is returned by Register when size exceeds the
	// system page size. Register also returns it for a size of zero.
	ErrElementTooLarge = errors.New("structpool: element size exceeds page size")

	// ErrDuplicateRecord is returned by Register when the name already has
	// a descriptor anywhere in the registry spine.
	ErrDuplicateRecord = errors.New("structpool: record already registered")

	// ErrDoubleFree is returned by XFree when the block at the given
	// payload pointer is not currently marked allocated. This is the only
	// debug-time check performed; everything else about a foreign or
	// already-freed pointer is undefined behaviour by design.
	ErrDoubleFree = errors.New("structpool: free of a block that is not allocated")
)
