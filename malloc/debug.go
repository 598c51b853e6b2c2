//go:build debug
// +build debug

package malloc

import "github.com/IDWMaster/GC/api"

func initblock(region *Region, addr api.Addr, size int64) {
	dst := region.Bytes(addr, size)
	for len(dst) > 0 {
		dst = dst[copy(dst, poolblkinit):]
	}
}
