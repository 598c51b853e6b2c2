// Package api define types and interfaces shared by the collector and the
// memory arenas backing it.
package api

import "fmt"

// Addr is an address in the collector's virtual address space. Managed
// pointers, slot addresses and block addresses are all Addr values,
// stored in memory as little-endian words.
type Addr uint64

// Nil address, never mapped.
const Nil = Addr(0)

// Wordsize of a stored address, all block offsets are multiples of it.
const Wordsize = int64(8)

func (addr Addr) String() string {
	return fmt.Sprintf("0x%x", uint64(addr))
}

// Add return addr offset by n bytes.
func (addr Addr) Add(n int64) Addr {
	return Addr(int64(addr) + n)
}

// Collector interface implemented by a garbage collected heap. None of
// the methods are safe for concurrent use, callers sharing a heap across
// goroutines must serialize all calls.
type Collector interface {
	// Allocate an object of `size` bytes with `n` embedded managed
	// references. Return the object's data pointer and the address of
	// its interior-reference table.
	Allocate(size, n int64) (data, table Addr, err error)

	// Mark register `slot`, which must currently hold a data pointer, as
	// a reference to that object. If isroot, slot is also added to the
	// root set.
	Mark(slot Addr, isroot bool) error

	// Unmark undo a previous Mark for `slot`.
	Unmark(slot Addr, isroot bool)

	// Collect garbage from the youngest generation, or from all
	// generations if full is true.
	Collect(full bool)

	// Available bytes in the youngest generation.
	Available() int64

	// Load the word stored at addr.
	Load(addr Addr) Addr

	// Store value as a word at addr.
	Store(addr, value Addr)

	// Stats return a set of collector statistics.
	Stats() (map[string]interface{}, error)

	// Validate check whether heap is in sane state, panic otherwise.
	Validate()

	// Destroy the heap and release its memory.
	Destroy()
}
