package gc

import "github.com/IDWMaster/GC/api"

// moveBlock relocate block from src to dst within generation g, growing
// its back-pointer table by `delta` entries. Every registered slot is
// rewritten with the new data pointer, and every slot in the moved
// block's interior table is re-registered at its new address. With
// delta == 0 the ranges may overlap.
func (h *Heap) moveBlock(g *generation, dst, src api.Addr, delta int64) {
	r, old := g.region, g.block(src)
	total, dp, count := old.totalsize(), old.datapointer(), old.bpcount()
	n, queued := old.interiorcount(), old.isset(flagQueued)
	hdrsize := int64(dp - src)
	oldinterior := old.interior()

	if dst == src && delta == 0 {
		return
	}
	ntotal := total + delta*api.Wordsize
	ndp := dst.Add(hdrsize + delta*api.Wordsize)
	if delta == 0 {
		r.Move(dst, src, total)
	} else if dst.Add(ntotal) <= src || dst >= src.Add(total) {
		// header and table upto the segment word, then the tail.
		r.Move(dst, src, hdrsize-api.Wordsize)
		r.Move(ndp, dp, total-hdrsize)
		r.Zero(dst.Add(hdrsize-api.Wordsize), delta*api.Wordsize)
	} else {
		corrupted("growing move from %v to %v overlaps", src, dst)
	}
	nblk := g.block(dst)
	nblk.setword(hdrTotalsize, api.Addr(ntotal))
	nblk.setword(hdrDatapointer, ndp)
	nblk.setbpcount(count)
	r.Setword(ndp.Add(-api.Wordsize), dst)

	shift := int64(ndp) - int64(dp)
	for i := int64(0); i < count; i++ {
		slot := nblk.bpslot(i)
		if slot >= src && slot < src.Add(total) {
			slot = slot.Add(shift)
			nblk.setbpslot(i, slot)
		}
		h.space.Store(slot, ndp)
	}

	ninterior := nblk.interior()
	for i := int64(0); i < n; i++ {
		slot := ninterior.Add(i * api.Wordsize)
		value := r.Word(slot)
		// self references are either rewritten above or not yet
		// registered.
		if value == api.Nil || value == ndp || value == dp {
			continue
		}
		tg, target := h.segmentof(value)
		h.rebind(tg, target, oldinterior.Add(i*api.Wordsize), slot)
	}

	if queued {
		g.requeue(src, dst)
	}
	tracef("%v gen%v move %v -> %v delta %v\n", h.logprefix, g.id, src, dst, delta)
	for i, addr := range h.pins {
		if addr == src {
			h.pins[i] = dst
		}
	}
	h.n_moves++
}
