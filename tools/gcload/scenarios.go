package main

import "fmt"
import "errors"

import gc "github.com/IDWMaster/GC"
import "github.com/IDWMaster/GC/api"

var scenarios = map[string]func(h *gc.Heap) error{
	"a": churn,
	"b": rootedcycle,
	"c": unrootedcycle,
	"d": exhaust,
}

// churn allocate, root and unroot objects one after the other.
func churn(h *gc.Heap) error {
	host := h.NewRegion(1)
	defer h.FreeRegion(host)

	for i := 0; i < options.n; i++ {
		data, _, err := gc.Allocate(h, int64(options.size), 0)
		if err != nil {
			return fmt.Errorf("allocate %v: %w", i, err)
		}
		h.Store(host, data)
		if err := gc.Mark(h, host, true); err != nil {
			return fmt.Errorf("mark %v: %w", i, err)
		}
		gc.Unmark(h, host, true)
	}
	h.Validate()
	return nil
}

// rootedcycle self referring object, rooted, survive full collection.
func rootedcycle(h *gc.Heap) error {
	data, table, err := gc.Allocate(h, int64(options.size), 1)
	if err != nil {
		return err
	}
	h.Store(table, data)
	if err := gc.Mark(h, table, false); err != nil {
		return err
	}
	host := h.NewRegion(1)
	h.Store(host, data)
	if err := gc.Mark(h, host, true); err != nil {
		return err
	}
	gc.Collect(h, true)
	h.Validate()

	data = h.Load(host)
	table, _ = h.Interior(data)
	if x := h.Load(table); x != data {
		return fmt.Errorf("cycle broken, expected %v got %v", data, x)
	}
	gc.Unmark(h, host, true)
	h.FreeRegion(host)
	return nil
}

// unrootedcycle self referring object is reclaimed and memory reused.
func unrootedcycle(h *gc.Heap) error {
	data, table, err := gc.Allocate(h, int64(options.size), 1)
	if err != nil {
		return err
	}
	h.Store(table, data)
	if err := gc.Mark(h, table, false); err != nil {
		return err
	}
	gc.Collect(h, false)
	h.Validate()

	data2, _, err := gc.Allocate(h, int64(options.size), 1)
	if err != nil {
		return err
	} else if data2 != data {
		return fmt.Errorf("memory not reused, expected %v got %v", data, data2)
	}
	return nil
}

// exhaust allocate rooted objects until out of memory.
func exhaust(h *gc.Heap) error {
	slots := []api.Addr{}
	for {
		data, _, err := gc.Allocate(h, int64(options.size), 0)
		if errors.Is(err, api.ErrorOutofMemory) {
			break
		} else if err != nil {
			return err
		}
		slot := h.NewRegion(1)
		h.Store(slot, data)
		if err := gc.Mark(h, slot, true); err != nil {
			return err
		}
		slots = append(slots, slot)
	}
	h.Validate()
	fmt.Printf("  exhausted after %v objects\n", len(slots))

	for _, slot := range slots[:len(slots)/2] {
		gc.Unmark(h, slot, true)
		h.FreeRegion(slot)
	}
	if _, _, err := gc.Allocate(h, int64(options.size), 0); err != nil {
		return fmt.Errorf("allocate after release: %w", err)
	}
	h.Validate()
	return nil
}
