package gc

import "fmt"
import "strings"

import "github.com/IDWMaster/GC/lib"
import humanize "github.com/dustin/go-humanize"

type heapstats struct {
	n_allocs    int64
	n_marks     int64
	n_unmarks   int64
	n_grows     int64
	n_moves     int64
	n_frees     int64
	n_collects  int64
	n_finalized int64
	n_ooms      int64
}

// Stats implement api.Collector{} interface.
func (h *Heap) Stats() (map[string]interface{}, error) {
	h.checkalive()
	stats := map[string]interface{}{
		"n_allocs":    h.n_allocs,
		"n_marks":     h.n_marks,
		"n_unmarks":   h.n_unmarks,
		"n_grows":     h.n_grows,
		"n_moves":     h.n_moves,
		"n_frees":     h.n_frees,
		"n_collects":  h.n_collects,
		"n_finalized": h.n_finalized,
		"n_ooms":      h.n_ooms,
		"n_pending":   h.Pending(),
		"n_pinned":    len(h.pins),
		"n_hosts":     len(h.hosts),
		"mapped":      h.space.Mapped(),
	}
	for _, g := range h.gens {
		prefix := fmt.Sprintf("gen%v.", g.id)
		overhead, useful := g.arena.Memory()
		stats[prefix+"overhead"] = overhead
		stats[prefix+"useful"] = useful
		stats[prefix+"allocated"] = g.arena.Allocated()
		stats[prefix+"available"] = g.arena.Available()
		stats[prefix+"roots"] = g.roots.len()
	}
	stats["h_pauses"] = h.h_pauses.Fullstats()
	stats["a_reclaimed"] = h.a_reclaimed.Stats()
	return stats, nil
}

// Log vital information about the heap.
func (h *Heap) Log(humanize bool) {
	stats, _ := h.Stats()
	dohumanize := func(arg interface{}) interface{} {
		if humanize {
			return humanizebytes(arg.(int64))
		}
		return arg
	}

	lines := []string{}
	for _, g := range h.gens {
		prefix := fmt.Sprintf("gen%v.", g.id)
		fmsg := "%v gen%v allocated:%v available:%v roots:%v"
		lines = append(lines, fmt.Sprintf(fmsg, h.logprefix, g.id,
			dohumanize(stats[prefix+"allocated"]),
			dohumanize(stats[prefix+"available"]), stats[prefix+"roots"]))
	}
	infof("%v\n", strings.Join(lines, "\n"))

	fmsg := "%v allocs:%v marks:%v unmarks:%v grows:%v moves:%v frees:%v\n"
	infof(fmsg, h.logprefix, h.n_allocs, h.n_marks, h.n_unmarks, h.n_grows,
		h.n_moves, h.n_frees)
	fmsg = "%v collects:%v finalized:%v pending:%v ooms:%v\n"
	infof(fmsg, h.logprefix, h.n_collects, h.n_finalized, stats["n_pending"],
		h.n_ooms)
	infof("%v pauses(us) %v\n", h.logprefix, h.h_pauses.Logstring())
	infof("%v reclaimed %v\n", h.logprefix,
		lib.Prettystats(stats["a_reclaimed"].(map[string]interface{}), false))
}

func humanizebytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}
