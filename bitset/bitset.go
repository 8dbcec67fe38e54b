// Package bitset implements a compact, growable bit vector used as the
// hash-map key identifying a subset-construction state: a set of original
// NFA state indices.
//
// A dense bit vector beats a sorted slice of indices on both hash cost and
// memory for the moderately dense subsets seen in practice (see spec.md
// §9), which is why this package exists alongside
// internal/sparse.SparseSet -- that type is bounded-universe and
// index-stable (used for the parallel determinizer's small, fixed-size
// shard-liveness set), while BitSet grows to an arbitrary, a-priori
// unknown universe size (the NFA's state count) and is built for
// structural hashing rather than O(1) deletion.
package bitset

import (
	"math/bits"
)

// BitSet represents a subset of [0, N) for some N determined by use.
// The zero value is the empty set and is ready to use.
type BitSet struct {
	words []byte
}

// Empty returns a BitSet equal to ∅.
func Empty() BitSet {
	return BitSet{}
}

// FromSlice builds a BitSet containing exactly the given indices.
func FromSlice(indices []int) BitSet {
	var b BitSet
	for _, i := range indices {
		b.Set(i)
	}
	return b
}

// Set inserts i into the set, growing the backing storage if needed.
// Idempotent. Panics if i < 0.
func (b *BitSet) Set(i int) {
	if i < 0 {
		panic("bitset: negative index")
	}
	byteIdx := i / 8
	if byteIdx >= len(b.words) {
		grown := make([]byte, byteIdx+1)
		copy(grown, b.words)
		b.words = grown
	}
	b.words[byteIdx] |= 1 << uint(i%8)
}

// Contains reports whether i is a member. Returns false for i beyond the
// current storage or i < 0, matching the "false for out-of-range" contract
// in spec.md §4.1.
func (b BitSet) Contains(i int) bool {
	if i < 0 {
		return false
	}
	byteIdx := i / 8
	if byteIdx >= len(b.words) {
		return false
	}
	return b.words[byteIdx]&(1<<uint(i%8)) != 0
}

// IsEmpty reports whether the set has no members.
func (b BitSet) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IterAscending calls f once for every member index in ascending order,
// stopping early if f returns false. Restartable: it reads b without
// mutating it.
func (b BitSet) IterAscending(f func(i int) bool) {
	for byteIdx, w := range b.words {
		for w != 0 {
			bit := bits.TrailingZeros8(w)
			i := byteIdx*8 + bit
			if !f(i) {
				return
			}
			w &^= 1 << uint(bit)
		}
	}
}

// Slice returns the member indices in ascending order as a plain slice,
// a convenience wrapper over IterAscending for callers that want to range
// over the result more than once.
func (b BitSet) Slice() []int {
	out := make([]int, 0, b.PopCount())
	b.IterAscending(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// PopCount returns the number of members. Dispatch always goes through
// math/bits (which itself lowers to a POPCNT instruction on platforms
// that have one); hasPOPCNT in cpu.go only drives a diagnostic log line in
// the CLI, not a second code path -- see DESIGN.md.
func (b BitSet) PopCount() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount8(w)
	}
	return n
}

// trim drops trailing zero bytes, the canonicalization rule required by
// spec.md §3/§9: two BitSets representing the same set of indices must
// compare and hash equal regardless of trailing zero bytes.
func trim(words []byte) []byte {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return words[:n]
}

// Canonicalize returns b with trailing zero bytes removed. Equal and Key
// apply this implicitly, so callers normally never need to call it
// directly; it is exposed for callers that want a stable byte
// representation (e.g. to embed in a larger key).
func (b BitSet) Canonicalize() BitSet {
	return BitSet{words: append([]byte(nil), trim(b.words)...)}
}

// Key returns a string suitable for use as a Go map key, canonicalized so
// that sets differing only by trailing zero bytes produce the same key.
// Go map lookups on string keys already give BitSet the equal+hash
// semantics spec.md §4.1 asks for, without a custom Hash method.
func (b BitSet) Key() string {
	return string(trim(b.words))
}

// Equal reports whether a and b represent the same set of indices,
// ignoring trailing zero bytes.
func (a BitSet) Equal(b BitSet) bool {
	ta, tb := trim(a.words), trim(b.words)
	if len(ta) != len(tb) {
		return false
	}
	for i := range ta {
		if ta[i] != tb[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b; mutating the clone never affects b.
func (b BitSet) Clone() BitSet {
	return BitSet{words: append([]byte(nil), b.words...)}
}

// Union returns a new BitSet containing every index in a or b.
func (a BitSet) Union(b BitSet) BitSet {
	if len(b.words) > len(a.words) {
		a, b = b, a
	}
	out := append([]byte(nil), a.words...)
	for i, w := range b.words {
		out[i] |= w
	}
	return BitSet{words: out}
}
