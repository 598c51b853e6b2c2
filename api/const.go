package api

import "errors"

// ErrorOutofMemory allocation cannot be satisfied even after a garbage
// collection.
var ErrorOutofMemory = errors.New("gc.outofmemory")

// ErrorCorrupted heap invariant is violated, this is fatal and reported
// only through panic.
var ErrorCorrupted = errors.New("gc.corrupted")

// ErrorUnmapped address does not fall within any mapped region.
var ErrorUnmapped = errors.New("gc.unmapped")

// ErrorReleased operation on a released heap or arena.
var ErrorReleased = errors.New("gc.released")
