package malloc

import "fmt"

import s "github.com/bnclabs/gosettings"

// Alignment arena capacity and allocation sizes should be multiples of
// Alignment.
const Alignment = int64(8)

// Maxarenasize maximum size of a memory arena.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024)

// Defaultsettings for an arena.
//
// "capacity" (int64, default: <capacity>)
//		Size of the arena in bytes, shall be a multiple of Alignment
//		and shall not exceed Maxarenasize.
func Defaultsettings(capacity int64) s.Settings {
	if capacity <= 0 || capacity > Maxarenasize {
		panic(fmt.Errorf("capacity(%v) outside (0, %v]", capacity, Maxarenasize))
	}
	return s.Settings{
		"capacity": capacity,
	}
}
