package gc

import "fmt"

import "github.com/IDWMaster/GC/api"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

// corrupted heap, fatal.
func corrupted(fmsg string, args ...interface{}) {
	err := fmt.Errorf("%w: "+fmsg, append([]interface{}{api.ErrorCorrupted}, args...)...)
	errorf("%v\n", err)
	panic(err)
}

func roundup(n, multiple int64) int64 {
	if r := n % multiple; r != 0 {
		return n + (multiple - r)
	}
	return n
}
