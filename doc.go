// Package gc implement an embeddable, compacting, tracing garbage
// collector for hosts that manage their own object graph.
//
// The collector owns a private address space, see malloc.Space, in which
// each generation is a fixed size arena carved by a bump allocator.
// Objects are never addressed directly by the host, instead the host keeps
// managed pointers in slots, words in memory mapped by the heap, and tells
// the collector about each slot using Mark. Every block remembers the
// slots referring to it in a back-pointer table, so that when the
// compactor relocates a block all the slots are rewritten with the new
// data pointer.
//
// Block layout, in words from the block address:
//
//	totalsize | datapointer | bpcount | bptable ... | segment |
//	data ... | interior table ... | finalizer | flags | interiorcount
//
// ABI:
//
// Init, Allocate, Mark, Unmark and Collect are thin wrappers over Heap
// methods. A heap is not safe for concurrent use, hosts sharing a heap
// across goroutines shall serialize all calls.
//
// Embedded references from one object to another shall live in the
// object's interior table, returned by Allocate, and like any other slot
// shall be registered with Mark after storing the data pointer.
//
// Non-root slots are weak references, when the referred object becomes
// unreachable the slot is set to api.Nil.
package gc
