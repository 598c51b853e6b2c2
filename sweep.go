package gc

import "time"

import "github.com/IDWMaster/GC/api"
import humanize "github.com/dustin/go-humanize"

// collect generations [0, upto). Stop the world, single pass of mark,
// finalizer discovery, release and compaction.
func (h *Heap) collect(upto int) {
	if h.collecting {
		corrupted("collection while collecting")
	}
	h.collecting = true
	defer func() { h.collecting = false }()

	start, before := time.Now(), h.allocated(upto)

	h.markphase(upto)
	queued := h.discover(upto)
	freed := h.releasephase(upto)
	for _, g := range h.gens[:upto] {
		h.compact(g)
	}

	elapsed := time.Since(start)
	reclaimed := before - h.allocated(upto)
	h.n_collects++
	h.h_pauses.Add(int64(elapsed / time.Microsecond))
	h.a_reclaimed.Add(reclaimed)

	fmsg := "%v collected %v generations in %v, freed %v blocks, " +
		"queued %v, reclaimed %v\n"
	debugf(fmsg, h.logprefix, upto, elapsed, freed, queued,
		humanize.Bytes(uint64(reclaimed)))
}

func (h *Heap) allocated(upto int) (n int64) {
	for _, g := range h.gens[:upto] {
		n += g.arena.Allocated()
	}
	return n
}

// discover unreachable blocks that have a finalizer, queue them, and mark
// them along with everything reachable from them.
func (h *Heap) discover(upto int) (queued int) {
	for _, g := range h.gens[:upto] {
		g.walk(func(blk block) bool {
			if blk.isfree() || blk.ismarked() || blk.finalizer() == 0 {
				return true
			} else if blk.isset(flagQueued) {
				return true
			}
			blk.setflag(flagQueued)
			g.enqueue(blk.addr)
			h.markfrom(g, blk.addr, upto)
			queued++
			return true
		})
	}
	return queued
}

// releasephase turn every unmarked block into a free block. Interior
// references to live blocks are deregistered, and slots still referring
// to the dying block are cleared.
func (h *Heap) releasephase(upto int) (freed int) {
	for _, g := range h.gens[:upto] {
		g.walk(func(blk block) bool {
			if blk.isfree() || blk.ismarked() {
				return true
			} else if blk.isfenced() {
				corrupted("gen%v fenced block %v not marked", g.id, blk.addr)
			}
			h.release(g, blk, upto)
			freed++
			return true
		})
	}
	return freed
}

func (h *Heap) release(g *generation, blk block, upto int) {
	interior, n := blk.interior(), blk.interiorcount()
	for i := int64(0); i < n; i++ {
		slot := interior.Add(i * api.Wordsize)
		value := g.region.Word(slot)
		if value == api.Nil {
			continue
		}
		tg, target := h.segmentof(value)
		if tg.id >= upto || tg.block(target).ismarked() {
			h.deregisterReference(tg, target, slot)
		}
		g.region.Setword(slot, api.Nil)
	}

	dp := blk.datapointer()
	for i, count := int64(0), blk.bpcount(); i < count; i++ {
		if slot := blk.bpslot(i); h.space.Load(slot) == dp {
			h.space.Store(slot, api.Nil)
		}
	}

	if id := blk.finalizer(); id != 0 {
		delete(h.finalizers, id)
	}
	writefiller(g.region, blk.addr, blk.totalsize())
	h.n_frees++
}

// compact slide live blocks towards the base of the arena. Blocks that
// are pinned or queued stay in place, free space before them becomes a
// single free block. Free space at the end is given back to the arena.
func (h *Heap) compact(g *generation) {
	extent, inextent := api.Nil, false
	top := g.arena.Top()
	for cur := g.arena.Base(); cur < top; {
		size := g.blocksize(cur)
		blk := g.block(cur)
		switch {
		case blk.isfree():
			if !inextent {
				extent, inextent = cur, true
			}

		case blk.isfenced():
			if inextent {
				writefiller(g.region, extent, int64(cur-extent))
				inextent = false
			}
			blk.clearflag(flagMark)

		case blk.ismarked():
			if inextent {
				h.moveBlock(g, extent, cur, 0)
				g.block(extent).clearflag(flagMark)
				extent = extent.Add(size)
			} else {
				blk.clearflag(flagMark)
			}

		default:
			corrupted("gen%v unmarked block %v after release", g.id, cur)
		}
		cur = cur.Add(size)
	}
	if inextent {
		g.arena.Truncate(extent)
		verbosef("%v gen%v truncated %v -> %v\n", h.logprefix, g.id, top, extent)
	}
}
