package gc

import "github.com/IDWMaster/GC/malloc"
import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Defaultgensize default capacity of each generation.
const Defaultgensize = int64(512 * 1024)

// Defaultsettings for a garbage collected heap.
//
// "generations" (int64, default: 1)
//		Number of generations chained from young to old. Objects are
//		always allocated in the young generation.
//
// "collect.retry" (bool, default: true)
//		When an allocation, or growth of a back-pointer table, cannot
//		be satisfied, collect the young generation and retry once.
//
// "maxheap" (int64, default: <free RAM>)
//		Upper limit on memory reserved for all generations put together.
//
// "arena.capacity" (int64, default: <Defaultgensize>)
//		Capacity of each generation, refer malloc.Defaultsettings.
//
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	setts := s.Settings{
		"generations":   int64(1),
		"collect.retry": true,
		"maxheap":       int64(free),
	}
	arenasetts := malloc.Defaultsettings(Defaultgensize).AddPrefix("arena.")
	return setts.Mixin(arenasetts)
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
