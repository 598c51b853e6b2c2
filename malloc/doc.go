// Package malloc supplies the raw memory underneath the collector, with a
// limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * Memory is addressed by api.Addr values in a private virtual address
//    space, Space, never by Go pointers. Regions of the space are plain
//    byte slices mapped at page aligned base addresses.
//  * Region is the only place where addresses are turned into byte
//    offsets. Every access is bounds checked and word accesses must be
//    aligned to api.Wordsize.
//  * Arena is a fixed capacity region carved by a monotonically
//    increasing marker. There is no free, space is handed back by
//    truncating the marker, which the compactor does after sliding live
//    blocks to the left.
//  * Memory handed out by Arena is always 64-bit aligned.
//
// Build with `-tags debug` to fill fresh allocations with 0xff instead of
// zeros, which helps catching reads of uninitialized block fields.
package malloc
