package table

import "bytes"

const (
	// stringHashMultiplier is the polynomial rolling hash base used for
	// string and byte-slice keys.
	stringHashMultiplier = 37

	// FNV-1a parameters for 32-bit hashing of fixed-width integer keys.
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// HashString is the built-in string hash: a polynomial rolling hash over
// the raw bytes, h = h*37 + b, with uint32 wraparound.
func HashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*stringHashMultiplier + uint32(s[i])
	}
	return h
}

// EqualString is byte-wise string equality.
func EqualString(a, b string) bool { return a == b }

// HashBytes applies the same polynomial rolling hash to a byte slice, so a
// []byte key and a string key with identical bytes hash identically.
func HashBytes(b []byte) uint32 {
	var h uint32
	for i := 0; i < len(b); i++ {
		h = h*stringHashMultiplier + uint32(b[i])
	}
	return h
}

// EqualBytes is byte-wise slice equality. Nil and empty compare equal.
func EqualBytes(a, b []byte) bool { return bytes.Equal(a, b) }

// HashUint32 hashes the four little-endian bytes of k with FNV-1a.
func HashUint32(k uint32) uint32 {
	h := uint32(fnvOffset32)
	for i := 0; i < 4; i++ {
		h ^= (k >> (8 * i)) & 0xff
		h *= fnvPrime32
	}
	return h
}

// EqualUint32 compares two uint32 keys.
func EqualUint32(a, b uint32) bool { return a == b }

// NewStrings creates a string-keyed table using HashString/EqualString.
func NewStrings[V any](cfg *Config) *Table[string, V] {
	return New[string, V](HashString, EqualString, cfg)
}

// NewBytes creates a []byte-keyed table. Key identity is byte content,
// not slice identity. Callers must not mutate a key slice while its entry
// is live.
func NewBytes[V any](cfg *Config) *Table[[]byte, V] {
	return New[[]byte, V](HashBytes, EqualBytes, cfg)
}

// NewUint32s creates a uint32-keyed table using HashUint32/EqualUint32.
func NewUint32s[V any](cfg *Config) *Table[uint32, V] {
	return New[uint32, V](HashUint32, EqualUint32, cfg)
}
