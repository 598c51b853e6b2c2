package api

// Mallocer interface for the fixed size arenas backing a generation.
// Memory is carved from the free tail, there is no per-chunk free; space
// is given back only by truncating the allocated range.
type Mallocer interface {
	// Alloc carve `n` bytes from the free tail, n must be a multiple of
	// Wordsize. Return false if the arena cannot satisfy the request.
	Alloc(n int64) (Addr, bool)

	// Base return the first address of the arena.
	Base() Addr

	// Top return the address one byte past the allocated range.
	Top() Addr

	// Truncate the allocated range so that Top() == top.
	Truncate(top Addr)

	// Contains return whether addr falls within [Base(), Top()).
	Contains(addr Addr) bool

	// Capacity of the arena in bytes.
	Capacity() int64

	// Allocated bytes, same as Top() - Base().
	Allocated() int64

	// Available bytes, same as Capacity() - Allocated().
	Available() int64

	// Memory return memory taken from the Go runtime and overhead of
	// managing it.
	Memory() (overhead, useful int64)

	// Release arena and its memory.
	Release()
}
