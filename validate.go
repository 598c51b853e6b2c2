package gc

import "github.com/IDWMaster/GC/api"

// Validate implement api.Collector{} interface. Walk every generation
// and panic with api.ErrorCorrupted on the first broken invariant.
//
// * block sizes add up to the arena's allocated bytes.
// * segment word and data pointer agree, no block is left marked.
// * every back-pointer slot holds the block's data pointer.
// * every interior reference is registered with its target.
// * every root refers to a block that registered it.
// * every queued block is in its generation's finalizer queue.
func (h *Heap) Validate() {
	h.checkalive()
	for _, g := range h.gens {
		h.validategen(g)
	}
}

func (h *Heap) validategen(g *generation) {
	sum, queued := int64(0), 0
	g.walk(func(blk block) bool {
		sum += blk.totalsize()
		if blk.isfree() && blk.flags().Ones() != 1 {
			corrupted("gen%v free block %v has flags %v", g.id, blk.addr, blk.flags())
		} else if blk.isfree() {
			return true
		}
		h.validateblock(g, blk)
		if blk.isset(flagQueued) {
			queued++
		}
		return true
	})
	if x := g.arena.Allocated(); sum != x {
		corrupted("gen%v blocks add up to %v, allocated %v", g.id, sum, x)
	} else if queued != len(g.finq) {
		corrupted("gen%v %v queued blocks, queue has %v", g.id, queued, len(g.finq))
	}

	for _, addr := range g.finq {
		if blk := g.block(addr); blk.isfree() || !blk.isset(flagQueued) {
			corrupted("gen%v finalizer queue has stale block %v", g.id, addr)
		}
	}
	for _, slot := range g.roots.slots {
		if h.inarena(slot) != nil {
			corrupted("root slot %v inside arena", slot)
		}
		tg, target := h.segmentof(h.space.Load(slot))
		if tg != g {
			corrupted("root slot %v in gen%v refers gen%v", slot, g.id, tg.id)
		} else if !h.isregistered(tg.block(target), slot) {
			corrupted("root slot %v not registered with %v", slot, target)
		}
	}
}

func (h *Heap) validateblock(g *generation, blk block) {
	dp := blk.datapointer()
	if dp <= blk.addr || dp >= blk.limit() {
		corrupted("block %v data pointer %v outside block", blk.addr, dp)
	} else if seg := blk.segment(); seg != blk.addr {
		corrupted("block %v segment word %v", blk.addr, seg)
	} else if blk.ismarked() {
		corrupted("block %v left marked", blk.addr)
	} else if n := blk.bpcount(); n > blk.bpcapacity() {
		corrupted("block %v has %v back-pointers, capacity %v", blk.addr, n, blk.bpcapacity())
	} else if blk.datasize() < 0 {
		corrupted("block %v interior table overlaps data", blk.addr)
	}

	for i, n := int64(0), blk.bpcount(); i < n; i++ {
		slot := blk.bpslot(i)
		if value := h.space.Load(slot); value != dp {
			corrupted("block %v slot %v holds %v", blk.addr, slot, value)
		}
	}
	for i, n := int64(0), blk.interiorcount(); i < n; i++ {
		slot := blk.interiorslot(i)
		value := g.region.Word(slot)
		if value == api.Nil {
			continue
		}
		tg, target := h.segmentof(value)
		if !h.isregistered(tg.block(target), slot) {
			corrupted("interior slot %v not registered with %v", slot, target)
		}
	}
}

func (h *Heap) isregistered(blk block, slot api.Addr) bool {
	for i, n := int64(0), blk.bpcount(); i < n; i++ {
		if blk.bpslot(i) == slot {
			return true
		}
	}
	return false
}
