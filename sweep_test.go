package gc

import "testing"

import "github.com/IDWMaster/GC/api"
import "github.com/IDWMaster/GC/malloc"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestCollectReclaim(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	host := h.NewRegion(10)
	for i := int64(0); i < 10; i++ {
		data, _ := allocate(t, h, 16, 0)
		h.Bytes(data)[0] = byte(i)
		if (i % 2) == 0 {
			link(t, h, host.Add(i*8), data, true)
		}
	}
	require.Equal(t, int64(4096-800), h.Available())

	h.Collect(false)
	h.Validate()
	assert.Equal(t, int64(4096-400), h.Available())
	values := []api.Addr{}
	for i := int64(0); i < 10; i += 2 {
		data := h.Load(host.Add(i * 8))
		assert.Equal(t, malloc.Spacebase.Add((i/2)*80+40), data)
		assert.Equal(t, byte(i), h.Bytes(data)[0])
		values = append(values, data)
	}

	// idempotent
	h.Collect(false)
	h.Validate()
	assert.Equal(t, int64(4096-400), h.Available())
	for i := int64(0); i < 10; i += 2 {
		assert.Equal(t, values[i/2], h.Load(host.Add(i*8)))
	}

	stats, _ := h.Stats()
	assert.Equal(t, int64(2), stats["n_collects"])
	assert.Equal(t, int64(5), stats["n_frees"])
	assert.Equal(t, int64(4), stats["n_moves"])
}

func TestCollectReuse(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	for i := 0; i < 10; i++ {
		allocate(t, h, 16, 0)
	}
	h.Collect(true)
	h.Validate()
	require.Equal(t, int64(4096), h.Available())
	data, _ := allocate(t, h, 16, 0)
	assert.Equal(t, malloc.Spacebase.Add(40), data)
}

func TestCollectWeak(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	x, _ := allocate(t, h, 8, 0)
	y, _ := allocate(t, h, 8, 0)
	host := h.NewRegion(2)
	link(t, h, host, x, false)
	link(t, h, host.Add(8), y, true)

	h.Collect(false)
	h.Validate()
	assert.Equal(t, api.Nil, h.Load(host))
	assert.Equal(t, malloc.Spacebase.Add(40), h.Load(host.Add(8)))
	h.Unmark(host, false)
	assert.Equal(t, int64(4096-72), h.Available())
}

func TestCollectDeadToLive(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	live, _ := allocate(t, h, 8, 0)
	host := h.NewRegion(1)
	link(t, h, host, live, true)
	_, dtable := allocate(t, h, 8, 2)
	link(t, h, dtable, h.Load(host), false)
	link(t, h, dtable.Add(8), h.Load(host), false)

	live = h.Load(host)
	require.Equal(t, int64(3), BackPointerLength(h.young.region, h.SegmentOf(live)))

	h.Collect(false)
	h.Validate()
	live = h.Load(host)
	assert.Equal(t, int64(1), BackPointerLength(h.young.region, h.SegmentOf(live)))
	assert.Equal(t, malloc.Spacebase.Add(64), live)
	assert.Equal(t, int64(4096-96), h.Available())
}

func TestCollectDeadCycle(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	a, atable := allocate(t, h, 8, 1)
	b, btable := allocate(t, h, 8, 1)
	link(t, h, atable, b, false)
	link(t, h, btable, a, false)
	host := h.NewRegion(1)
	link(t, h, host, a, false) // weak

	h.Collect(false)
	h.Validate()
	assert.Equal(t, int64(4096), h.Available())
	assert.Equal(t, api.Nil, h.Load(host))
}

func TestCollectPinned(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	allocate(t, h, 16, 0)
	p, _ := allocate(t, h, 16, 0)
	allocate(t, h, 16, 0)
	live, _ := allocate(t, h, 16, 0)
	host := h.NewRegion(1)
	link(t, h, host, live, true)

	paddr := h.SegmentOf(p)
	h.pin(paddr)
	h.Collect(false)
	h.Validate()
	// filler, p, live
	assert.Equal(t, int64(4096-240), h.Available())
	assert.Equal(t, paddr, h.SegmentOf(p))
	assert.Equal(t, malloc.Spacebase.Add(160+40), h.Load(host))
	assert.True(t, h.young.block(malloc.Spacebase).isfree())

	h.unpin(paddr)
	h.Collect(false)
	h.Validate()
	assert.Equal(t, int64(4096-80), h.Available())
	assert.Equal(t, malloc.Spacebase.Add(40), h.Load(host))
}

func TestCompactCorrupted(t *testing.T) {
	h := testheap(4096)
	defer h.Destroy()

	garbage, _ := allocate(t, h, 8, 0)
	data, _ := allocate(t, h, 16, 0)
	g := h.young
	// unmarked block during compaction.
	expectcorrupted(t, func() { h.compact(g) })

	// free block carrying other flags.
	addr := h.SegmentOf(garbage)
	writefiller(g.region, addr, Blocksize(8, 0))
	h.Validate()
	g.block(addr).setflag(flagPinned)
	expectcorrupted(t, func() { h.Validate() })
	g.block(addr).clearflag(flagPinned)
	h.Validate()

	// zero sized block.
	g.region.Setword(h.SegmentOf(data), 0)
	expectcorrupted(t, func() { h.Validate() })
}
