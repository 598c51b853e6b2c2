package gc

import "github.com/IDWMaster/GC/api"
import s "github.com/bnclabs/gosettings"

// Init create a heap with `generations` generations, using default
// settings otherwise.
func Init(generations int) *Heap {
	setts := s.Settings{"generations": int64(generations)}
	return NewHeap("", setts)
}

// Allocate an object of `size` bytes with `n` interior references from
// heap h. Refer Heap.Allocate.
func Allocate(h *Heap, size, n int64) (data, table api.Addr, err error) {
	return h.Allocate(size, n)
}

// Mark register slot with the object it refers to, and add slot to the
// root set if isroot. Refer Heap.Mark.
func Mark(h *Heap, slot api.Addr, isroot bool) error {
	return h.Mark(slot, isroot)
}

// Unmark undo Mark. Refer Heap.Unmark.
func Unmark(h *Heap, slot api.Addr, isroot bool) {
	h.Unmark(slot, isroot)
}

// Collect young generation, or all generations if full. Refer
// Heap.Collect.
func Collect(h *Heap, full bool) {
	h.Collect(full)
}

var _ api.Collector = &Heap{}
