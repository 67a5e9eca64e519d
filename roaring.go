package rank9sel

import "github.com/RoaringBitmap/roaring/v2"

// FromRoaring builds a SuccinctBitVector spanning size bits from a
// roaring bitmap, the way vecgo's metadata filters use roaring as an
// alternative sparse encoding of the same ID universe a succinct bit
// vector indexes densely. size is rounded up to a whole number of
// words; the caller does not need to pad rb's contents, since every
// bit beyond size is left zero by construction.
func FromRoaring(rb *roaring.Bitmap, size uint64, opts ...Option) *SuccinctBitVector {
	words := make([]uint64, ceilDiv(size, wordBits))
	it := rb.Iterator()
	for it.HasNext() {
		pos := uint64(it.Next())
		if pos >= size {
			break
		}
		words[pos/wordBits] |= 1 << (pos % wordBits)
	}
	return Prepare(words, opts...)
}

// ToRoaring walks sv's raw words and returns a roaring bitmap
// containing the position of every set bit.
func ToRoaring(sv *SuccinctBitVector) *roaring.Bitmap {
	rb := roaring.New()
	for wi, word := range sv.words {
		base := uint32(wi) * wordBits
		for word != 0 {
			pos, rest := nextSetBit(word)
			word = rest
			rb.Add(base + uint32(pos))
		}
	}
	return rb
}
