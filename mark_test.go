package gc

import "testing"

import "github.com/IDWMaster/GC/api"

func TestMarkReachable(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	// a -> b -> c, d unreachable, e -> e
	a, atable := allocate(t, h, 8, 2)
	b, btable := allocate(t, h, 8, 1)
	c, _ := allocate(t, h, 8, 0)
	d, dtable := allocate(t, h, 8, 1)
	e, etable := allocate(t, h, 8, 1)
	link(t, h, atable, b, false)
	link(t, h, btable, c, false)
	link(t, h, dtable, a, false)
	link(t, h, etable, e, false)
	host := h.NewRegion(2)
	link(t, h, host, h.Load(dtable), true)
	link(t, h, host.Add(8), e, true)

	// a and e are relocated by growing their back-pointer tables.
	a, e = h.Load(host), h.Load(host.Add(8))
	atable, _ = h.Interior(a)

	h.markphase(1)
	g := h.young
	marked := func(data api.Addr) bool {
		return g.block(h.SegmentOf(data)).ismarked()
	}
	for _, data := range []api.Addr{a, b, c, e} {
		if !marked(data) {
			t.Errorf("expected %v to be marked", data)
		}
	}
	if marked(d) {
		t.Errorf("expected %v to be unmarked", d)
	}
	if x := h.Load(atable); x != b {
		t.Errorf("expected %v, got %v", b, x)
	}

	// marking again does not traverse.
	h.markfrom(g, h.SegmentOf(a), 1)
	if x := len(h.stack); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}

	h.releasephase(1)
	if x := BackPointerLength(g.region, h.SegmentOf(a)); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	h.compact(g)
	h.Validate()
}

func TestMarkCycle(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	x, xtable := allocate(t, h, 8, 2)
	y, ytable := allocate(t, h, 8, 1)
	link(t, h, xtable, x, false)
	link(t, h, xtable.Add(8), y, false)
	link(t, h, ytable, h.Load(xtable), false)

	host := h.NewRegion(1)
	link(t, h, host, h.Load(ytable), true)

	h.markphase(1)
	g := h.young
	n := 0
	g.walk(func(blk block) bool {
		if blk.ismarked() {
			n++
		}
		return true
	})
	if n != 2 {
		t.Errorf("expected %v, got %v", 2, n)
	}
	h.releasephase(1)
	h.compact(g)
	h.Validate()
}

func TestMarkPinned(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	x, xtable := allocate(t, h, 8, 1)
	y, _ := allocate(t, h, 8, 0)
	link(t, h, xtable, y, false)

	g := h.young
	h.pin(h.SegmentOf(x))
	h.markphase(1)
	if !g.block(h.SegmentOf(x)).ismarked() {
		t.Errorf("expected pinned block to be marked")
	} else if !g.block(h.SegmentOf(y)).ismarked() {
		t.Errorf("expected referred block to be marked")
	}
	h.releasephase(1)
	h.compact(g)
	h.unpin(h.SegmentOf(x))
	h.Validate()

	expectcorrupted(t, func() { h.unpin(h.SegmentOf(x)) })
}
