package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

const (
	signatureWords = 4
	bitsPerWord    = 64

	// MaxComponentTypes is the number of distinct component types one
	// registry can hold, fixed by the signature width.
	MaxComponentTypes = signatureWords * bitsPerWord
)

// Signature is a fixed-width bitmask with one bit per registered component
// type. An entity's signature is derived from its access record on demand;
// the only signatures stored durably are each system's required signature.
type Signature [signatureWords]uint64

func (s *Signature) set(id ComponentID) {
	s[id/bitsPerWord] |= 1 << (id % bitsPerWord)
}

func (s *Signature) unset(id ComponentID) {
	s[id/bitsPerWord] &^= 1 << (id % bitsPerWord)
}

// Has reports whether the bit for id is set.
func (s Signature) Has(id ComponentID) bool {
	if int(id) >= MaxComponentTypes {
		return false
	}
	return s[id/bitsPerWord]&(1<<(id%bitsPerWord)) != 0
}

// ContainsAll reports whether every bit set in other is also set in s.
func (s Signature) ContainsAll(other Signature) bool {
	for w := range s {
		if s[w]&other[w] != other[w] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no bits are set.
func (s Signature) IsEmpty() bool {
	for w := range s {
		if s[w] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (s Signature) Count() int {
	n := 0
	for w := range s {
		n += bits.OnesCount64(s[w])
	}
	return n
}

// String renders the set bit positions, e.g. "{0 3 7}".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for w := 0; w < signatureWords; w++ {
		word := s[w]
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			word &= word - 1
			if !first {
				b.WriteByte(' ')
			}
			first = false
			b.WriteString(strconv.Itoa(w*bitsPerWord + bit))
		}
	}
	b.WriteByte('}')
	return b.String()
}

func makeSignature(ids ...ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s.set(id)
	}
	return s
}
