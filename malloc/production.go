//go:build !debug
// +build !debug

package malloc

import "github.com/IDWMaster/GC/api"

func initblock(region *Region, addr api.Addr, size int64) {
	dst := region.Bytes(addr, size)
	for i := range dst {
		dst[i] = 0
	}
}
