package malloc

import "fmt"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

func roundup(n, multiple int64) int64 {
	if r := n % multiple; r != 0 {
		return n + (multiple - r)
	}
	return n
}

var poolblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}
