package gc

import "github.com/IDWMaster/GC/api"

// markphase mark every block reachable from roots, pinned blocks and
// queued blocks of generations [0, upto).
func (h *Heap) markphase(upto int) {
	for _, g := range h.gens[:upto] {
		for _, slot := range g.roots.slots {
			value := h.space.Load(slot)
			if value == api.Nil {
				corrupted("root slot %v holding nil", slot)
			}
			tg, addr := h.segmentof(value)
			h.markfrom(tg, addr, upto)
		}
		for _, addr := range g.finq {
			h.markfrom(g, addr, upto)
		}
	}
	for _, addr := range h.pins {
		if g := h.generationof(addr); g.id < upto {
			h.markfrom(g, addr, upto)
		}
	}
}

// markfrom mark block at addr and everything reachable from it, depth
// first. Blocks already marked are not traversed again.
func (h *Heap) markfrom(g *generation, addr api.Addr, upto int) {
	if g.id >= upto {
		return
	}
	blk := g.block(addr)
	if blk.ismarked() {
		return
	}
	blk.setflag(flagMark)

	h.stack = append(h.stack[:0], addr)
	for len(h.stack) > 0 {
		addr = h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		blk := h.generationof(addr).block(addr)
		interior, n := blk.interior(), blk.interiorcount()
		for i := int64(0); i < n; i++ {
			value := h.space.Load(interior.Add(i * api.Wordsize))
			if value == api.Nil {
				continue
			}
			tg, target := h.segmentof(value)
			if tg.id >= upto {
				continue
			}
			if tblk := tg.block(target); !tblk.ismarked() {
				tblk.setflag(flagMark)
				h.stack = append(h.stack, target)
			}
		}
	}
}
