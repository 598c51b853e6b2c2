package gc

import "github.com/IDWMaster/GC/api"
import "github.com/IDWMaster/GC/lib"
import "github.com/IDWMaster/GC/malloc"

// header words.
const (
	hdrTotalsize   int64 = 0
	hdrDatapointer int64 = 1
	hdrBpcount     int64 = 2
	hdrBptable     int64 = 3
)

// footer words, counted backwards from the end of the block.
const (
	ftrFinalizer     int64 = 3
	ftrFlags         int64 = 2
	ftrInteriorcount int64 = 1
)

const headerwords = int64(4) // totalsize, datapointer, bpcount, segment
const footerwords = int64(3)

// block flags, bit positions in the footer's flags word.
const (
	flagMark uint8 = iota
	flagQueued
	flagPinned
	flagFree
)

// Initbpcapacity initial capacity of back-pointer table.
const Initbpcapacity = int64(1)

// Minblocksize smallest block, a back-pointer table of one entry, no data
// and no interior table.
const Minblocksize = (headerwords + Initbpcapacity + footerwords) * 8

// Blocksize return the size of a block, in bytes, for an object of `size`
// bytes with `n` interior references.
func Blocksize(size, n int64) int64 {
	return blocksize(size, n, Initbpcapacity)
}

func blocksize(size, n, capacity int64) int64 {
	hdr := (headerwords + capacity) * api.Wordsize
	return hdr + roundup(size, api.Wordsize) + n*api.Wordsize +
		footerwords*api.Wordsize
}

// block at addr within a generation's region.
type block struct {
	r    *malloc.Region
	addr api.Addr
}

// InitBlock lay out a fresh block at addr, of `size` data bytes and `n`
// interior references. Return the data pointer.
func InitBlock(r *malloc.Region, addr api.Addr, size, n int64) api.Addr {
	total := Blocksize(size, n)
	dp := addr.Add((headerwords + Initbpcapacity) * api.Wordsize)
	r.Setword(addr, api.Addr(total))
	r.Setword(addr.Add(hdrDatapointer*api.Wordsize), dp)
	r.Setword(addr.Add(hdrBpcount*api.Wordsize), 0)
	r.Zero(addr.Add(hdrBptable*api.Wordsize), Initbpcapacity*api.Wordsize)
	r.Setword(dp.Add(-api.Wordsize), addr)

	blk := block{r: r, addr: addr}
	blk.setfooter(ftrFinalizer, 0)
	blk.setfooter(ftrFlags, 0)
	blk.setfooter(ftrInteriorcount, api.Addr(n))
	r.Zero(blk.interior(), n*api.Wordsize)
	return dp
}

// DataPointerOf return the data pointer of block at addr.
func DataPointerOf(r *malloc.Region, addr api.Addr) api.Addr {
	return block{r: r, addr: addr}.datapointer()
}

// DataSize of block at addr, rounded up to word size.
func DataSize(r *malloc.Region, addr api.Addr) int64 {
	return block{r: r, addr: addr}.datasize()
}

// BackPointerCapacity of block at addr.
func BackPointerCapacity(r *malloc.Region, addr api.Addr) int64 {
	return block{r: r, addr: addr}.bpcapacity()
}

// BackPointerLength number of slots registered with block at addr.
func BackPointerLength(r *malloc.Region, addr api.Addr) int64 {
	return block{r: r, addr: addr}.bpcount()
}

// writefiller turn [addr, addr+size) into a free block.
func writefiller(r *malloc.Region, addr api.Addr, size int64) {
	if size < Minblocksize || (size%api.Wordsize) != 0 {
		corrupted("filler of %v bytes at %v", size, addr)
	}
	r.Setword(addr, api.Addr(size))
	r.Setword(addr.Add(hdrDatapointer*api.Wordsize), api.Nil)
	r.Setword(addr.Add(hdrBpcount*api.Wordsize), 0)
	blk := block{r: r, addr: addr}
	blk.setfooter(ftrFinalizer, 0)
	blk.setfooter(ftrFlags, api.Addr(lib.Bit8(0).Setbit(flagFree)))
	blk.setfooter(ftrInteriorcount, 0)
}

//---- header

func (blk block) word(off int64) api.Addr {
	return blk.r.Word(blk.addr.Add(off * api.Wordsize))
}

func (blk block) setword(off int64, value api.Addr) {
	blk.r.Setword(blk.addr.Add(off*api.Wordsize), value)
}

func (blk block) totalsize() int64 {
	return int64(blk.word(hdrTotalsize))
}

func (blk block) limit() api.Addr {
	return blk.addr.Add(blk.totalsize())
}

func (blk block) datapointer() api.Addr {
	return blk.word(hdrDatapointer)
}

func (blk block) bpcount() int64 {
	return int64(blk.word(hdrBpcount))
}

func (blk block) setbpcount(n int64) {
	blk.setword(hdrBpcount, api.Addr(n))
}

func (blk block) bpcapacity() int64 {
	return int64(blk.datapointer()-blk.addr)/api.Wordsize - headerwords
}

func (blk block) bpslot(i int64) api.Addr {
	return blk.word(hdrBptable + i)
}

func (blk block) setbpslot(i int64, slot api.Addr) {
	blk.setword(hdrBptable+i, slot)
}

func (blk block) segment() api.Addr {
	return blk.r.Word(blk.datapointer().Add(-api.Wordsize))
}

//---- footer

func (blk block) footer(off int64) api.Addr {
	return blk.r.Word(blk.addr.Add(blk.totalsize() - off*api.Wordsize))
}

func (blk block) setfooter(off int64, value api.Addr) {
	blk.r.Setword(blk.addr.Add(blk.totalsize()-off*api.Wordsize), value)
}

func (blk block) finalizer() uint64 {
	return uint64(blk.footer(ftrFinalizer))
}

func (blk block) setfinalizer(id uint64) {
	blk.setfooter(ftrFinalizer, api.Addr(id))
}

func (blk block) interiorcount() int64 {
	return int64(blk.footer(ftrInteriorcount))
}

// interior return the address of interior table.
func (blk block) interior() api.Addr {
	n := blk.interiorcount()
	return blk.addr.Add(blk.totalsize() - (footerwords+n)*api.Wordsize)
}

func (blk block) interiorslot(i int64) api.Addr {
	return blk.interior().Add(i * api.Wordsize)
}

func (blk block) datasize() int64 {
	return int64(blk.interior() - blk.datapointer())
}

//---- flags

func (blk block) flags() lib.Bit8 {
	return lib.Bit8(blk.footer(ftrFlags))
}

func (blk block) isset(flag uint8) bool {
	return blk.flags().Isset(flag)
}

func (blk block) setflag(flag uint8) {
	blk.setfooter(ftrFlags, api.Addr(blk.flags().Setbit(flag)))
}

func (blk block) clearflag(flag uint8) {
	blk.setfooter(ftrFlags, api.Addr(blk.flags().Clearbit(flag)))
}

func (blk block) isfree() bool {
	return blk.isset(flagFree)
}

func (blk block) ismarked() bool {
	return blk.isset(flagMark)
}

// isfenced blocks are never moved by the compactor.
func (blk block) isfenced() bool {
	return blk.isset(flagPinned) || blk.isset(flagQueued)
}
