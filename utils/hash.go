package utils

import (
	"fmt"
	"hash/fnv"
)

// FNV-1a 32-bit parameters used for statement fingerprints.
const (
	OffsetBasis32 uint32 = 2166136261
	Prime32       uint32 = 16777619
)

// Mix32 folds h into the running accumulator acc.
func Mix32(acc, h uint32) uint32 {
	return acc*Prime32 ^ h
}

// U32 returns the FNV-1a hash of s.
func U32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Hasher is implemented by anything that contributes a structural hash.
type Hasher interface {
	Hash() uint32
}

// ListHash folds the hashes of items in order, starting from the offset basis.
// An empty or nil list hashes to OffsetBasis32.
func ListHash[T Hasher](items []T) uint32 {
	acc := OffsetBasis32
	for _, it := range items {
		acc = Mix32(acc, it.Hash())
	}
	return acc
}

// ValueHash hashes an opaque literal by its dynamic type and formatted value,
// so equal literals of the same type always hash equal.
func ValueHash(v any) uint32 {
	switch val := v.(type) {
	case string:
		return Mix32(U32("string"), U32(val))
	case []byte:
		return Mix32(U32("[]uint8"), U32(string(val)))
	case fmt.Stringer:
		// fmt recovers a panicking String on a nil receiver and prints <nil>
		return Mix32(U32(fmt.Sprintf("%T", v)), U32(fmt.Sprint(val)))
	default:
		return U32(fmt.Sprintf("%T:%v", v, v))
	}
}
