package main

import "os"
import "fmt"
import "flag"
import "time"
import "runtime/pprof"

import gc "github.com/IDWMaster/GC"
import "github.com/IDWMaster/GC/lib"
import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

var options struct {
	scenarios   []string
	n           int
	size        int
	gensize     int
	generations int
	log         string
	pprof       string
	stats       bool
}

func argParse() {
	var scenarios string

	flag.StringVar(&scenarios, "scenarios", "a,b,c,d",
		"comma separated list of scenarios to run")
	flag.IntVar(&options.n, "n", 900000,
		"number of objects to churn in scenario a")
	flag.IntVar(&options.size, "size", 50,
		"size of each object in bytes")
	flag.IntVar(&options.gensize, "gensize", int(gc.Defaultgensize),
		"capacity of each generation in bytes")
	flag.IntVar(&options.generations, "generations", 1,
		"number of generations")
	flag.StringVar(&options.log, "log", "ignore",
		"log level, one of ignore,info,verbose,debug")
	flag.StringVar(&options.pprof, "pprof", "",
		"dump cpu-profile to file")
	flag.BoolVar(&options.stats, "stats", false,
		"dump heap statistics after each scenario")
	flag.Parse()

	options.scenarios = lib.Parsecsv(scenarios)
}

func main() {
	argParse()
	logsetts := map[string]interface{}{
		"log.level":      options.log,
		"log.colorfatal": "red",
		"log.colorerror": "hired",
		"log.colorwarn":  "yellow",
	}
	log.SetLogger(nil, logsetts)
	gc.LogComponents("all")

	if options.pprof != "" {
		fd, err := os.Create(options.pprof)
		if err != nil {
			fmt.Printf("unable to create %q: %v\n", options.pprof, err)
			os.Exit(1)
		}
		defer fd.Close()
		pprof.StartCPUProfile(fd)
		defer pprof.StopCPUProfile()
	}

	for _, name := range options.scenarios {
		fn, ok := scenarios[name]
		if !ok {
			fmt.Printf("unknown scenario %q\n", name)
			continue
		}
		h := newheap(name)
		now := time.Now()
		err := fn(h)
		elapsed := time.Since(now)
		if err != nil {
			fmt.Printf("scenario %v failed after %v: %v\n", name, elapsed, err)
		} else {
			fmt.Printf("scenario %v took %v\n", name, elapsed)
		}
		printutilization(h)
		h.Destroy()
	}
}

func newheap(name string) *gc.Heap {
	setts := s.Settings{
		"generations":    int64(options.generations),
		"arena.capacity": int64(options.gensize),
	}
	return gc.NewHeap("gcload-"+name, setts)
}

func printutilization(h *gc.Heap) {
	stats, _ := h.Stats()
	for i := 0; i < h.Generations(); i++ {
		prefix := fmt.Sprintf("gen%v.", i)
		alloc := humanize.Bytes(uint64(stats[prefix+"allocated"].(int64)))
		avail := humanize.Bytes(uint64(stats[prefix+"available"].(int64)))
		fmsg := "  gen%v{allocated:%v available:%v roots:%v}\n"
		fmt.Printf(fmsg, i, alloc, avail, stats[prefix+"roots"])
	}
	fmsg := "  allocs:%v collects:%v moves:%v grows:%v frees:%v ooms:%v\n"
	fmt.Printf(fmsg, stats["n_allocs"], stats["n_collects"], stats["n_moves"],
		stats["n_grows"], stats["n_frees"], stats["n_ooms"])
	if options.stats {
		fmt.Println(lib.Prettystats(stats, true))
	}
	h.Log(true)
}
