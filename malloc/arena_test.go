package malloc

import "fmt"
import "errors"
import "testing"

import "github.com/IDWMaster/GC/api"
import s "github.com/bnclabs/gosettings"

var _ = fmt.Sprintf("dummy")

func TestNewArena(t *testing.T) {
	space := NewSpace()
	arena := NewArena(space, "gen0", Defaultsettings(512*1024))
	if x := arena.Capacity(); x != 512*1024 {
		t.Errorf("expected %v, got %v", 512*1024, x)
	} else if x := arena.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := arena.Available(); x != 512*1024 {
		t.Errorf("expected %v, got %v", 512*1024, x)
	} else if arena.Base() != Spacebase {
		t.Errorf("expected %v, got %v", Spacebase, arena.Base())
	} else if arena.Top() != arena.Base() {
		t.Errorf("expected %v, got %v", arena.Base(), arena.Top())
	}
	overhead, useful := arena.Memory()
	if overhead <= 0 {
		t.Errorf("unexpected overhead %v", overhead)
	} else if useful != 512*1024 {
		t.Errorf("unexpected useful %v", useful)
	}
	arena.Release()
	if x := space.Regions(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena(space, "odd", s.Settings{"capacity": int64(1001)})
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena(space, "huge", s.Settings{"capacity": Maxarenasize + 8})
	}()
}

func TestArenaAlloc(t *testing.T) {
	space := NewSpace()
	arena := NewArena(space, "gen0", Defaultsettings(1024))
	defer arena.Release()

	addrs := []api.Addr{}
	for i := 0; i < 16; i++ {
		addr, ok := arena.Alloc(64)
		if !ok {
			t.Fatalf("unexpected allocation failure at %v", i)
		}
		addrs = append(addrs, addr)
	}
	for i, addr := range addrs {
		if x := arena.Base().Add(int64(i) * 64); x != addr {
			t.Errorf("expected %v, got %v", x, addr)
		} else if !arena.Contains(addr) {
			t.Errorf("expected %v to be in arena", addr)
		}
	}
	if _, ok := arena.Alloc(8); ok {
		t.Errorf("expected arena to be exhausted")
	} else if arena.Contains(arena.Top()) {
		t.Errorf("top %v shall not be contained", arena.Top())
	}

	// give back half of it.
	arena.Truncate(addrs[8])
	if x := arena.Allocated(); x != 512 {
		t.Errorf("expected %v, got %v", 512, x)
	} else if x := arena.Available(); x != 512 {
		t.Errorf("expected %v, got %v", 512, x)
	} else if arena.Contains(addrs[8]) {
		t.Errorf("expected %v to be outside arena", addrs[8])
	}
	// fresh allocation is zeroed
	arena.Region().Setword(addrs[8], api.Addr(0xdead))
	arena.Truncate(addrs[8])
	addr, _ := arena.Alloc(64)
	if x := arena.Region().Word(addr); x != 0 && x != api.Addr(0xffffffffffffffff) {
		t.Errorf("unexpected stale word %v", x)
	}

	// panic cases
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Errorf("expected panic")
			} else if err, ok := r.(error); !ok || !errors.Is(err, api.ErrorCorrupted) {
				t.Errorf("unexpected %v", r)
			}
		}()
		arena.Truncate(arena.Top().Add(8))
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Alloc(12)
	}()
}

func TestArenaReleased(t *testing.T) {
	arena := NewArena(NewSpace(), "gen0", Defaultsettings(1024))
	arena.Release()
	if arena.Contains(Spacebase) {
		t.Errorf("released arena shall not contain any address")
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic")
		} else if err, ok := r.(error); !ok || !errors.Is(err, api.ErrorReleased) {
			t.Errorf("unexpected %v", r)
		}
	}()
	arena.Alloc(64)
}

func BenchmarkArenaAlloc(b *testing.B) {
	arena := NewArena(NewSpace(), "bench", Defaultsettings(1024*1024))
	defer arena.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := arena.Alloc(64); !ok {
			arena.Truncate(arena.Base())
		}
	}
}
