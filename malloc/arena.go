package malloc

import "unsafe"

import "github.com/IDWMaster/GC/api"
import s "github.com/bnclabs/gosettings"

// Arena defines a fixed size region of memory carved from its free tail.
// [Base, Top) is in use and [Top, Base+Capacity) is free.
type Arena struct {
	space  *Space
	region *Region
	marker int64 // offset of the free tail

	// configuration
	capacity int64 // memory capacity managed by this arena
}

// NewArena create a new memory arena, mapped in `space`.
func NewArena(space *Space, name string, setts s.Settings) *Arena {
	capacity := setts.Int64("capacity")
	if capacity <= 0 || capacity > Maxarenasize {
		panicerr("arena capacity %v outside (0, %v]", capacity, Maxarenasize)
	} else if (capacity % Alignment) != 0 {
		panicerr("arena capacity %v is not multiple of %v", capacity, Alignment)
	}
	arena := &Arena{space: space, capacity: capacity}
	arena.region = space.Map(name, capacity)
	return arena
}

//---- operations

// Alloc implement api.Mallocer{} interface.
func (arena *Arena) Alloc(n int64) (api.Addr, bool) {
	if arena.region == nil {
		panicerr("%w: arena released", api.ErrorReleased)
	} else if n <= 0 || (n%Alignment) != 0 {
		panicerr("Alloc size %v is not a positive multiple of %v", n, Alignment)
	}
	if n > arena.Available() {
		return api.Nil, false
	}
	addr := arena.region.Base().Add(arena.marker)
	initblock(arena.region, addr, n)
	arena.marker += n
	return addr, true
}

// Truncate implement api.Mallocer{} interface.
func (arena *Arena) Truncate(top api.Addr) {
	base := arena.Base()
	if top < base || top > arena.Top() {
		panicerr("%w: truncate %v outside [%v,%v]", api.ErrorCorrupted, top, base, arena.Top())
	} else if (int64(top-base) % Alignment) != 0 {
		panicerr("%w: truncate %v is not aligned", api.ErrorCorrupted, top)
	}
	arena.marker = int64(top - base)
}

// Release implement api.Mallocer{} interface.
func (arena *Arena) Release() {
	if arena.region != nil {
		arena.space.Unmap(arena.region)
	}
	arena.region, arena.marker = nil, 0
}

//---- address and accounting

// Region backing this arena.
func (arena *Arena) Region() *Region {
	return arena.region
}

// Base implement api.Mallocer{} interface.
func (arena *Arena) Base() api.Addr {
	return arena.region.Base()
}

// Top implement api.Mallocer{} interface.
func (arena *Arena) Top() api.Addr {
	return arena.region.Base().Add(arena.marker)
}

// Contains implement api.Mallocer{} interface.
func (arena *Arena) Contains(addr api.Addr) bool {
	if arena.region == nil {
		return false
	}
	return addr >= arena.Base() && addr < arena.Top()
}

// Capacity implement api.Mallocer{} interface.
func (arena *Arena) Capacity() int64 {
	return arena.capacity
}

// Allocated implement api.Mallocer{} interface.
func (arena *Arena) Allocated() int64 {
	return arena.marker
}

// Available implement api.Mallocer{} interface.
func (arena *Arena) Available() int64 {
	return arena.capacity - arena.marker
}

// Memory implement api.Mallocer{} interface.
func (arena *Arena) Memory() (overhead, useful int64) {
	overhead = int64(unsafe.Sizeof(*arena))
	if arena.region != nil {
		overhead += int64(unsafe.Sizeof(*arena.region))
		useful = arena.region.Size()
	}
	return overhead, useful
}
