package gc

import "github.com/IDWMaster/GC/api"

// registerReference append slot to the back-pointer table of block at
// addr, growing the table when full.
func (h *Heap) registerReference(g *generation, addr, slot api.Addr) error {
	blk := g.block(addr)
	if blk.bpcount() == blk.bpcapacity() {
		naddr, nslot, err := h.growtable(g, addr, slot)
		if err != nil {
			return err
		}
		blk, slot = g.block(naddr), nslot
	}
	n := blk.bpcount()
	blk.setbpslot(n, slot)
	blk.setbpcount(n + 1)
	return nil
}

// deregisterReference remove slot from the back-pointer table of block
// at addr.
func (h *Heap) deregisterReference(g *generation, addr, slot api.Addr) {
	blk := g.block(addr)
	n := blk.bpcount()
	for i := int64(0); i < n; i++ {
		if blk.bpslot(i) != slot {
			continue
		}
		for j := i + 1; j < n; j++ {
			blk.setbpslot(j-1, blk.bpslot(j))
		}
		blk.setbpslot(n-1, api.Nil)
		blk.setbpcount(n - 1)
		return
	}
	corrupted("slot %v not registered with block %v", slot, addr)
}

// rebind replace slot `from` with `to` in block's back-pointer table,
// without growing the table.
func (h *Heap) rebind(g *generation, addr, from, to api.Addr) {
	blk := g.block(addr)
	n := blk.bpcount()
	for i := int64(0); i < n; i++ {
		if blk.bpslot(i) == from {
			blk.setbpslot(i, to)
			return
		}
	}
	corrupted("slot %v not registered with block %v", from, addr)
}

// growtable relocate block at addr to the tail of the arena with
// twice the back-pointer capacity. Return the new block address and slot,
// slot changes if it was inside the relocated block.
func (h *Heap) growtable(g *generation, addr, slot api.Addr) (api.Addr, api.Addr, error) {
	blk := g.block(addr)
	total, capacity := blk.totalsize(), blk.bpcapacity()
	size := total + capacity*api.Wordsize

	naddr, ok := g.arena.Alloc(size)
	if !ok && h.retry && !h.collecting {
		// neither the block nor the slot's owner shall move or die.
		owner := api.Nil
		if x := h.generationof(slot); x != nil {
			owner = x.blockat(slot)
		}
		h.pin(addr)
		if owner != api.Nil {
			h.pin(owner)
		}
		h.collect(g.id + 1)
		if owner != api.Nil {
			h.unpin(owner)
		}
		h.unpin(addr)
		naddr, ok = g.arena.Alloc(size)
	}
	if !ok {
		h.n_ooms++
		warnf("%v out of memory growing back-pointers of %v to %v\n",
			h.logprefix, addr, capacity*2)
		return api.Nil, api.Nil, api.ErrorOutofMemory
	}

	dp := blk.datapointer()
	h.moveBlock(g, naddr, addr, capacity)
	ndp := g.block(naddr).datapointer()
	if slot >= addr && slot < addr.Add(total) {
		slot = slot.Add(int64(ndp) - int64(dp))
	}
	writefiller(g.region, addr, total)
	h.space.Store(slot, ndp)
	h.n_grows++
	debugf("%v grow %v -> %v capacity %v\n", h.logprefix, addr, naddr, capacity*2)
	return naddr, slot, nil
}
