package gc

import "sort"

import "github.com/IDWMaster/GC/api"

// rootset is a sorted set of root slots.
type rootset struct {
	slots []api.Addr
}

func newrootset() *rootset {
	return &rootset{slots: make([]api.Addr, 0, 16)}
}

// search return the lower bound of slot.
func (rs *rootset) search(slot api.Addr) int {
	return sort.Search(len(rs.slots), func(i int) bool {
		return rs.slots[i] >= slot
	})
}

// insert slot, return false if slot is already a root.
func (rs *rootset) insert(slot api.Addr) bool {
	i := rs.search(slot)
	if i < len(rs.slots) && rs.slots[i] == slot {
		return false
	}
	rs.slots = append(rs.slots, api.Nil)
	copy(rs.slots[i+1:], rs.slots[i:])
	rs.slots[i] = slot
	return true
}

// remove slot, return false if slot is not a root.
func (rs *rootset) remove(slot api.Addr) bool {
	i := rs.search(slot)
	if i == len(rs.slots) || rs.slots[i] != slot {
		return false
	}
	copy(rs.slots[i:], rs.slots[i+1:])
	rs.slots = rs.slots[:len(rs.slots)-1]
	return true
}

func (rs *rootset) has(slot api.Addr) bool {
	i := rs.search(slot)
	return i < len(rs.slots) && rs.slots[i] == slot
}

func (rs *rootset) len() int {
	return len(rs.slots)
}
