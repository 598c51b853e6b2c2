package malloc

import "sort"

import "github.com/IDWMaster/GC/api"

// Pagesize regions are mapped at multiples of Pagesize, with at least one
// unmapped page between two regions.
const Pagesize = int64(4096)

// Spacebase is the base address of the first mapped region, low
// addresses are never mapped so that small integers are never mistaken
// for addresses.
const Spacebase = api.Addr(0x100000)

// Space is a private virtual address space made of regions.
type Space struct {
	regions  []*Region // sorted by base address
	nextbase api.Addr
	mapped   int64
}

// NewSpace create an empty address space.
func NewSpace() *Space {
	return &Space{regions: make([]*Region, 0, 4), nextbase: Spacebase}
}

// Map a new region of `size` bytes, size is rounded up to Alignment.
func (space *Space) Map(name string, size int64) *Region {
	if size <= 0 {
		panicerr("cannot map region %q of size %v", name, size)
	}
	size = roundup(size, Alignment)
	region := newregion(name, space.nextbase, size)
	space.regions = append(space.regions, region)
	space.mapped += size
	limit := int64(region.Limit())
	space.nextbase = api.Addr(roundup(limit, Pagesize) + Pagesize)
	return region
}

// Unmap region from address space, any further access into region's
// addresses will panic.
func (space *Space) Unmap(region *Region) {
	for i, r := range space.regions {
		if r == region {
			copy(space.regions[i:], space.regions[i+1:])
			space.regions[len(space.regions)-1] = nil
			space.regions = space.regions[:len(space.regions)-1]
			space.mapped -= region.Size()
			return
		}
	}
	panicerr("%w: region %q not mapped", api.ErrorUnmapped, region.Name())
}

// Region return the region mapping addr, nil if addr is not mapped.
func (space *Space) Region(addr api.Addr) *Region {
	i := sort.Search(len(space.regions), func(i int) bool {
		return space.regions[i].Limit() > addr
	})
	if i < len(space.regions) && space.regions[i].Contains(addr) {
		return space.regions[i]
	}
	return nil
}

// Load the word stored at addr.
func (space *Space) Load(addr api.Addr) api.Addr {
	region := space.Region(addr)
	if region == nil {
		panicerr("%w: load from %v", api.ErrorUnmapped, addr)
	}
	return region.Word(addr)
}

// Store value as a word at addr.
func (space *Space) Store(addr, value api.Addr) {
	region := space.Region(addr)
	if region == nil {
		panicerr("%w: store to %v", api.ErrorUnmapped, addr)
	}
	region.Setword(addr, value)
}

// Mapped return number of bytes mapped in this space.
func (space *Space) Mapped() int64 {
	return space.mapped
}

// Regions return number of regions mapped in this space.
func (space *Space) Regions() int {
	return len(space.regions)
}
