package gc

import "fmt"

import "github.com/IDWMaster/GC/api"
import "github.com/IDWMaster/GC/malloc"
import s "github.com/bnclabs/gosettings"

// generation is an arena of blocks, along with the roots and the
// finalization queue of blocks allocated in it.
type generation struct {
	id     int
	arena  *malloc.Arena
	region *malloc.Region
	roots  *rootset
	finq   []api.Addr // block addresses, FIFO
	next   *generation
}

func newgeneration(space *malloc.Space, name string, id int, setts s.Settings) *generation {
	arenaname := fmt.Sprintf("%v-gen%v", name, id)
	g := &generation{id: id, roots: newrootset(), finq: make([]api.Addr, 0)}
	g.arena = malloc.NewArena(space, arenaname, setts)
	g.region = g.arena.Region()
	return g
}

// Contains return whether addr falls within [base, marker).
func (g *generation) Contains(addr api.Addr) bool {
	return g.arena.Contains(addr)
}

func (g *generation) block(addr api.Addr) block {
	return block{r: g.region, addr: addr}
}

// blocksize validate and return the size of block at addr.
func (g *generation) blocksize(addr api.Addr) int64 {
	size := g.block(addr).totalsize()
	if size < Minblocksize || (size%api.Wordsize) != 0 {
		corrupted("gen%v block %v has size %v", g.id, addr, size)
	} else if addr.Add(size) > g.arena.Top() {
		corrupted("gen%v block %v size %v beyond %v", g.id, addr, size, g.arena.Top())
	}
	return size
}

// walk blocks in address order, callback may not change the layout
// of blocks.
func (g *generation) walk(callb func(blk block) bool) {
	top := g.arena.Top()
	for addr := g.arena.Base(); addr < top; {
		size := g.blocksize(addr)
		if !callb(g.block(addr)) {
			return
		}
		addr = addr.Add(size)
	}
}

// blockat return the block containing addr, addr must be inside
// the arena.
func (g *generation) blockat(addr api.Addr) api.Addr {
	var owner api.Addr
	g.walk(func(blk block) bool {
		if addr >= blk.addr && addr < blk.limit() {
			owner = blk.addr
			return false
		}
		return true
	})
	return owner
}

func (g *generation) enqueue(addr api.Addr) {
	g.finq = append(g.finq, addr)
}

// requeue replace the queue entry for a moved block.
func (g *generation) requeue(from, to api.Addr) {
	for i, addr := range g.finq {
		if addr == from {
			g.finq[i] = to
			return
		}
	}
	corrupted("gen%v queued block %v missing in finalizer queue", g.id, from)
}

func (g *generation) release() {
	g.arena.Release()
	g.region, g.roots, g.finq = nil, nil, nil
}
