package gc

import "github.com/IDWMaster/GC/api"

// Finalizer is called with the data pointer of an object that became
// unreachable. The object stays in place until the finalizer returns,
// and is reclaimed by a later collection unless the finalizer makes it
// reachable again.
type Finalizer func(h *Heap, data api.Addr)

// SetFinalizer attach fn to object, replacing the previous finalizer if
// any. Passing nil for fn remove the finalizer.
func (h *Heap) SetFinalizer(data api.Addr, fn Finalizer) {
	h.checkalive()
	g, addr := h.segmentof(data)
	blk := g.block(addr)
	if id := blk.finalizer(); id != 0 {
		delete(h.finalizers, id)
		blk.setfinalizer(0)
	}
	if fn == nil {
		return
	}
	id := h.nextfin
	h.nextfin++
	h.finalizers[id] = fn
	blk.setfinalizer(id)
}

// Pending return the number of objects waiting for their finalizer.
func (h *Heap) Pending() (n int) {
	h.checkalive()
	for _, g := range h.gens {
		n += len(g.finq)
	}
	return n
}

// RunFinalizers call the finalizer of every queued object, oldest first,
// and return the number of finalizers called. Calls made while finalizers
// are running return 0.
func (h *Heap) RunFinalizers() (count int) {
	h.checkalive()
	if h.finalizing {
		return 0
	}
	h.finalizing = true
	defer func() { h.finalizing = false }()

	for _, g := range h.gens {
		for len(g.finq) > 0 {
			blk := g.block(g.finq[0])
			data, id := blk.datapointer(), blk.finalizer()
			blk.setfinalizer(0)
			fn := h.finalizers[id]
			delete(h.finalizers, id)
			if fn != nil {
				fn(h, data)
			}
			// finq[0] tracks the block if fn caused it to move.
			blk = g.block(g.finq[0])
			blk.clearflag(flagQueued)
			g.finq = g.finq[1:]
			h.n_finalized++
			count++
		}
	}
	if count > 0 {
		debugf("%v ran %v finalizers\n", h.logprefix, count)
	}
	return count
}
