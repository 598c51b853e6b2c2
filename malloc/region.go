package malloc

import "encoding/binary"

import "github.com/IDWMaster/GC/api"

// Region is a contiguous chunk of memory mapped at a fixed base address.
// All word and byte access into collector memory go through Region.
type Region struct {
	name string
	base api.Addr
	mem  []byte
}

func newregion(name string, base api.Addr, size int64) *Region {
	return &Region{name: name, base: base, mem: make([]byte, size)}
}

// Name of the region, used in logs and errors.
func (r *Region) Name() string {
	return r.name
}

// Base address of the region.
func (r *Region) Base() api.Addr {
	return r.base
}

// Limit return the address one byte past the region.
func (r *Region) Limit() api.Addr {
	return r.base.Add(int64(len(r.mem)))
}

// Size of the region in bytes.
func (r *Region) Size() int64 {
	return int64(len(r.mem))
}

// Contains return whether addr is mapped by this region.
func (r *Region) Contains(addr api.Addr) bool {
	return addr >= r.base && addr < r.Limit()
}

// Addr return the address of nth word in this region.
func (r *Region) Addr(nth int64) api.Addr {
	addr := r.base.Add(nth * api.Wordsize)
	r.offset(addr, api.Wordsize)
	return addr
}

// Word load the word stored at addr.
func (r *Region) Word(addr api.Addr) api.Addr {
	off := r.wordoffset(addr)
	return api.Addr(binary.LittleEndian.Uint64(r.mem[off : off+8]))
}

// Setword store value as a word at addr.
func (r *Region) Setword(addr, value api.Addr) {
	off := r.wordoffset(addr)
	binary.LittleEndian.PutUint64(r.mem[off:off+8], uint64(value))
}

// Move n bytes from src to dst, regions may overlap.
func (r *Region) Move(dst, src api.Addr, n int64) {
	if n == 0 {
		return
	}
	doff, soff := r.offset(dst, n), r.offset(src, n)
	copy(r.mem[doff:doff+n], r.mem[soff:soff+n])
}

// Bytes return n bytes starting at addr, as a slice into region memory.
// Don't hold on to the slice across collections.
func (r *Region) Bytes(addr api.Addr, n int64) []byte {
	off := r.offset(addr, n)
	return r.mem[off : off+n : off+n]
}

// Zero n bytes starting from addr.
func (r *Region) Zero(addr api.Addr, n int64) {
	buf := r.Bytes(addr, n)
	for i := range buf {
		buf[i] = 0
	}
}

func (r *Region) offset(addr api.Addr, n int64) int64 {
	if n < 0 || addr < r.base || addr.Add(n) > r.Limit() {
		fmsg := "%w: access %v+%v outside region %q [%v,%v)"
		panicerr(fmsg, api.ErrorUnmapped, addr, n, r.name, r.base, r.Limit())
	}
	return int64(addr - r.base)
}

func (r *Region) wordoffset(addr api.Addr) int64 {
	off := r.offset(addr, api.Wordsize)
	if (off % api.Wordsize) != 0 {
		fmsg := "%w: unaligned word access %v in region %q"
		panicerr(fmsg, api.ErrorCorrupted, addr, r.name)
	}
	return off
}
