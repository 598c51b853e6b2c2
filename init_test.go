package gc

import "fmt"
import "errors"
import "testing"

import "github.com/IDWMaster/GC/api"
import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"

var _ = fmt.Sprintf("dummy")

func init() {
	setts := map[string]interface{}{
		"log.level":      "ignore",
		"log.colorfatal": "red",
		"log.colorerror": "hired",
		"log.colorwarn":  "yellow",
	}
	log.SetLogger(nil, setts)
	LogComponents("self")
}

func testheap(gensize int64) *Heap {
	return NewHeap("test", s.Settings{"arena.capacity": gensize})
}

// allocate or fail the test.
func allocate(t *testing.T, h *Heap, size, n int64) (api.Addr, api.Addr) {
	t.Helper()
	data, table, err := h.Allocate(size, n)
	if err != nil {
		t.Fatalf("allocate(%v, %v): %v", size, n, err)
	}
	return data, table
}

// link store value in slot and mark it.
func link(t *testing.T, h *Heap, slot, value api.Addr, isroot bool) {
	t.Helper()
	h.Store(slot, value)
	if err := h.Mark(slot, isroot); err != nil {
		t.Fatalf("mark(%v, %v): %v", slot, isroot, err)
	}
}

func expectcorrupted(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic")
		} else if err, ok := r.(error); !ok || !errors.Is(err, api.ErrorCorrupted) {
			t.Errorf("expected %v, got %v", api.ErrorCorrupted, r)
		}
	}()
	fn()
}

func statsof(h *Heap, key string) interface{} {
	stats, _ := h.Stats()
	return stats[key]
}
