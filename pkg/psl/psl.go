// Package psl is the platform software layer: the byte-level memory
// operations the queue engine consumes but does not implement itself.
//
// It mirrors a classic embedded split where the engine core is written
// against a tiny, swappable platform shim rather than against libc
// directly, so the engine can run unmodified on hosts that don't have one.
// On Go there is exactly one implementation: a plain loop over the slice
// for Memset and the copy builtin for Memcpy.
package psl

// Memset fills block with the byte value c.
func Memset(block []byte, c byte) {
	for i := range block {
		block[i] = c
	}
}

// Memcpy copies min(len(dst), len(src)) bytes from src to dst and returns
// the number of bytes copied.
func Memcpy(dst, src []byte) int {
	return copy(dst, src)
}
