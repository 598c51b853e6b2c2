package gc

import "fmt"
import "time"

import "github.com/IDWMaster/GC/api"
import "github.com/IDWMaster/GC/lib"
import "github.com/IDWMaster/GC/malloc"
import s "github.com/bnclabs/gosettings"

// Heap is a garbage collected heap made of a chain of generations.
type Heap struct {
	heapstats
	h_pauses    *lib.HistogramInt64 // collection pause, in microseconds
	a_reclaimed *lib.AverageInt64   // bytes reclaimed per collection

	name       string
	space      *malloc.Space
	young      *generation
	gens       []*generation // gens[0] is young
	hosts      map[api.Addr]*malloc.Region
	finalizers map[uint64]Finalizer
	nextfin    uint64
	pins       []api.Addr
	stack      []api.Addr // mark stack
	borntime   time.Time
	collecting bool
	finalizing bool
	dead       bool

	// settings
	ngens     int64
	retry     bool
	maxheap   int64
	gensize   int64
	setts     s.Settings
	logprefix string
}

// NewHeap create a new garbage collected heap. If name is empty a random
// name is generated. Refer Defaultsettings() for settings.
func NewHeap(name string, setts s.Settings) *Heap {
	if name == "" {
		name = newname()
	}
	h := &Heap{
		name:       name,
		hosts:      make(map[api.Addr]*malloc.Region),
		finalizers: make(map[uint64]Finalizer),
		nextfin:    1,
		pins:       make([]api.Addr, 0, 4),
		stack:      make([]api.Addr, 0, 1024),
		borntime:   time.Now(),
	}
	h.logprefix = fmt.Sprintf("GC [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	h.readsettings(setts)
	h.setts = setts

	h.space = malloc.NewSpace()
	arenasetts := setts.Section("arena.").Trim("arena.")
	var prev *generation
	for i := 0; i < int(h.ngens); i++ {
		g := newgeneration(h.space, name, i, arenasetts)
		if prev == nil {
			h.young = g
		} else {
			prev.next = g
		}
		h.gens = append(h.gens, g)
		prev = g
	}

	h.h_pauses = lib.NewhistorgramInt64(100, 10000, 100)
	h.a_reclaimed = &lib.AverageInt64{}

	infof("%v started with %v generations of %v bytes\n", h.logprefix, h.ngens, h.gensize)
	return h
}

func (h *Heap) readsettings(setts s.Settings) {
	h.ngens = setts.Int64("generations")
	h.retry = setts.Bool("collect.retry")
	h.maxheap = setts.Int64("maxheap")
	h.gensize = setts.Int64("arena.capacity")
	if h.ngens < 1 {
		panicerr("generations %v shall be atleast 1", h.ngens)
	} else if reserved := h.ngens * h.gensize; reserved > h.maxheap {
		panicerr("%v generations of %v bytes exceed maxheap %v", h.ngens, h.gensize, h.maxheap)
	}
}

func newname() string {
	uuid, err := lib.Allocuuid(8)
	if err != nil {
		panic(err)
	}
	return uuid.String()
}

//---- exported methods

// Name of the heap.
func (h *Heap) Name() string {
	return h.name
}

// Generations return number of generations chained to this heap.
func (h *Heap) Generations() int {
	return len(h.gens)
}

// Available implement api.Collector{} interface.
func (h *Heap) Available() int64 {
	h.checkalive()
	return h.young.arena.Available()
}

// Load implement api.Collector{} interface.
func (h *Heap) Load(addr api.Addr) api.Addr {
	h.checkalive()
	return h.space.Load(addr)
}

// Store implement api.Collector{} interface.
func (h *Heap) Store(addr, value api.Addr) {
	h.checkalive()
	h.space.Store(addr, value)
}

// NewRegion map `nwords` words of host memory, return the base address.
// Slots holding managed pointers outside of objects, like globals and
// host structures, shall live in host regions.
func (h *Heap) NewRegion(nwords int64) api.Addr {
	h.checkalive()
	name := fmt.Sprintf("%v-host%v", h.name, len(h.hosts))
	region := h.space.Map(name, nwords*api.Wordsize)
	h.hosts[region.Base()] = region
	return region.Base()
}

// FreeRegion unmap a host region created by NewRegion. All slots within
// the region shall be unmarked before freeing it.
func (h *Heap) FreeRegion(base api.Addr) {
	h.checkalive()
	region, ok := h.hosts[base]
	if !ok {
		panicerr("%w: no host region at %v", api.ErrorUnmapped, base)
	}
	delete(h.hosts, base)
	h.space.Unmap(region)
}

// SegmentOf return the block address for object's data pointer.
func (h *Heap) SegmentOf(data api.Addr) api.Addr {
	h.checkalive()
	_, addr := h.segmentof(data)
	return addr
}

// Interior return the address of object's interior table and the number
// of references it can hold.
func (h *Heap) Interior(data api.Addr) (api.Addr, int64) {
	h.checkalive()
	g, addr := h.segmentof(data)
	blk := g.block(addr)
	return blk.interior(), blk.interiorcount()
}

// Bytes return object's data as byte-slice, valid until the next call
// that can collect.
func (h *Heap) Bytes(data api.Addr) []byte {
	h.checkalive()
	g, addr := h.segmentof(data)
	return g.region.Bytes(data, g.block(addr).datasize())
}

// Allocate implement api.Collector{} interface. Return the data pointer
// and the address of the interior table. If young generation is exhausted
// a collection is attempted before failing with api.ErrorOutofMemory.
func (h *Heap) Allocate(size, n int64) (data, table api.Addr, err error) {
	h.checkalive()
	if size < 0 || n < 0 {
		panicerr("invalid allocation size:%v interior:%v", size, n)
	}

	g, capacity := h.young, h.young.arena.Capacity()
	if size > capacity || n > capacity/api.Wordsize {
		h.n_ooms++
		warnf("%v allocation size:%v interior:%v exceeds generation\n",
			h.logprefix, size, n)
		return api.Nil, api.Nil, api.ErrorOutofMemory
	}
	total := Blocksize(size, n)
	if total > capacity {
		h.n_ooms++
		warnf("%v allocation of %v bytes exceeds generation\n", h.logprefix, total)
		return api.Nil, api.Nil, api.ErrorOutofMemory
	}
	addr, ok := g.arena.Alloc(total)
	if !ok && h.retry && !h.collecting {
		h.collect(1)
		addr, ok = g.arena.Alloc(total)
	}
	if !ok {
		h.n_ooms++
		warnf("%v out of memory allocating %v bytes\n", h.logprefix, total)
		return api.Nil, api.Nil, api.ErrorOutofMemory
	}
	data = InitBlock(g.region, addr, size, n)
	h.n_allocs++
	return data, g.block(addr).interior(), nil
}

// Mark implement api.Collector{} interface. Slot shall hold a data
// pointer, and shall be a host slot or a slot in an interior table. If growing the back-pointer table of referred object fails,
// return api.ErrorOutofMemory and leave the heap unchanged.
func (h *Heap) Mark(slot api.Addr, isroot bool) error {
	h.checkalive()
	value := h.space.Load(slot)
	if value == api.Nil {
		corrupted("mark slot %v holding nil", slot)
	}
	g, addr := h.segmentof(value)

	if x := h.inarena(slot); x != nil && isroot {
		corrupted("root slot %v inside gen%v", slot, x.id)
	} else if x != nil {
		h.checkinterior(x, slot)
	}
	inserted := false
	if isroot {
		inserted = g.roots.insert(slot)
	}
	if err := h.registerReference(g, addr, slot); err != nil {
		if inserted {
			g.roots.remove(slot)
		}
		return err
	}
	h.n_marks++
	return nil
}

// Unmark implement api.Collector{} interface. A non-root slot that was
// cleared because its object died is silently ignored.
func (h *Heap) Unmark(slot api.Addr, isroot bool) {
	h.checkalive()
	value := h.space.Load(slot)
	if value == api.Nil {
		if isroot {
			corrupted("unmark root slot %v holding nil", slot)
		}
		return
	}
	g, addr := h.segmentof(value)
	if isroot && !g.roots.remove(slot) {
		corrupted("unmark root slot %v is not a root", slot)
	}
	h.deregisterReference(g, addr, slot)
	h.n_unmarks++
}

// Collect implement api.Collector{} interface.
func (h *Heap) Collect(full bool) {
	h.checkalive()
	upto := 1
	if full {
		upto = len(h.gens)
	}
	h.collect(upto)
}

// Destroy implement api.Collector{} interface.
func (h *Heap) Destroy() {
	if h.dead {
		return
	}
	for _, g := range h.gens {
		g.release()
	}
	for base, region := range h.hosts {
		h.space.Unmap(region)
		delete(h.hosts, base)
	}
	h.young, h.gens, h.dead = nil, nil, true
	infof("%v destroyed\n", h.logprefix)
}

//---- local functions

func (h *Heap) checkalive() {
	if h.dead {
		panicerr("%w: heap %v destroyed", api.ErrorReleased, h.name)
	}
}

// generationof return the generation whose [base, marker) contains addr.
func (h *Heap) generationof(addr api.Addr) *generation {
	for g := h.young; g != nil; g = g.next {
		if g.Contains(addr) {
			return g
		}
	}
	return nil
}

// inarena return the generation whose arena maps addr, allocated or not.
func (h *Heap) inarena(addr api.Addr) *generation {
	for g := h.young; g != nil; g = g.next {
		if g.region.Contains(addr) {
			return g
		}
	}
	return nil
}

// segmentof return the generation and block for a data pointer.
func (h *Heap) segmentof(data api.Addr) (*generation, api.Addr) {
	g := h.generationof(data)
	if g == nil {
		corrupted("data pointer %v outside all generations", data)
	}
	seg := data.Add(-api.Wordsize)
	if !g.Contains(seg) {
		corrupted("data pointer %v has no segment word", data)
	}
	addr := g.region.Word(seg)
	if !g.Contains(addr) || addr >= data {
		corrupted("data pointer %v has bad segment %v", data, addr)
	} else if blk := g.block(addr); blk.isfree() || blk.datapointer() != data {
		corrupted("data pointer %v does not match block %v", data, addr)
	}
	return g, addr
}

// checkinterior panic unless slot lies within the interior table of an
// allocated block in generation g, only those slots follow their block
// when it moves.
func (h *Heap) checkinterior(g *generation, slot api.Addr) {
	owner := g.blockat(slot)
	if owner == api.Nil {
		corrupted("slot %v outside allocated blocks of gen%v", slot, g.id)
	}
	blk := g.block(owner)
	interior := blk.interior()
	limit := interior.Add(blk.interiorcount() * api.Wordsize)
	if blk.isfree() || slot < interior || slot >= limit {
		corrupted("slot %v not in interior table of block %v", slot, owner)
	}
}

func (h *Heap) pin(addr api.Addr) {
	g := h.generationof(addr)
	g.block(addr).setflag(flagPinned)
	h.pins = append(h.pins, addr)
}

func (h *Heap) unpin(addr api.Addr) {
	found := false
	for i := len(h.pins) - 1; i >= 0; i-- {
		if h.pins[i] == addr && !found {
			copy(h.pins[i:], h.pins[i+1:])
			h.pins = h.pins[:len(h.pins)-1]
			found = true
		} else if h.pins[i] == addr {
			return // still pinned
		}
	}
	if !found {
		corrupted("unpin %v, block not pinned", addr)
	}
	h.generationof(addr).block(addr).clearflag(flagPinned)
}
