package htable

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/xxHash/xxHash32"
)

// Hasher produces the 32-bit digest used to place a key. It must be
// deterministic: equal byte ranges always produce equal digests.
type Hasher func(b []byte) uint32

// XXHash32 is the default Hasher: XXH32 with a zero seed.
func XXHash32(b []byte) uint32 {
	return xxHash32.Checksum(b, 0)
}

// XXHash64Fold is xxHash64 with a zero seed, folded to 32 bits. It is faster
// than XXHash32 on long keys.
func XXHash64Fold(b []byte) uint32 {
	h := xxhash.Sum64(b)
	return uint32(h) ^ uint32(h>>32)
}

const (
	offset32 = 2166136261
	prime32  = 16777619
)

// FNV1a32 computes a 32-bit FNV-1a hash of b.
func FNV1a32(b []byte) uint32 {
	hash := uint32(offset32)
	for _, c := range b {
		hash ^= uint32(c)
		hash *= prime32
	}
	return hash
}

// bytesOf views the memory of *p as a byte slice of unsafe.Sizeof(*p) bytes.
// Callers only use it for plain types (see layout.go), so the view never
// hides pointers from the garbage collector.
func bytesOf[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}
