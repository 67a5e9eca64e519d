// Package rank9sel implements a succinct bit vector: an immutable
// sequence of bits augmented with a compact auxiliary index that
// answers rank and select queries in effectively constant time.
//
// The index is Sebastiano Vigna's Rank9/Select9 broadword layout
// ("Broadword Implementation of Rank/Select Queries"): a two-level
// packed rank table partitions the bit array into 512-bit basic
// blocks so rank resolves in about three memory accesses, and a
// density-adaptive select inventory samples every 512th 1-bit and
// refines within each sample using whichever encoding best fits the
// local 1-bit density.
//
// A SuccinctBitVector is built once from a padded array of 64-bit
// words and never mutated afterward; any number of goroutines may
// call its query methods concurrently without synchronization.
package rank9sel

import "github.com/sirupsen/logrus"

// SuccinctBitVector is an immutable bit vector with a Rank9/Select9
// index. The zero value is not usable; construct one with Prepare or
// PrepareConcurrent.
type SuccinctBitVector struct {
	words     []uint64 // B: the raw padded word array, owned exclusively
	size      uint64   // len(words) * 64
	numOnes   uint64   // total popcount of words
	numBlocks uint64   // ceil(len(words) / 8)
	rankTable []uint64 // R
	primary   []uint64 // P
	secondary []uint64 // S
	offsets   []uint64 // per-primary-slot start index into secondary
}

// Prepare takes ownership of a padded array of 64-bit words and
// builds a SuccinctBitVector over it in a single serial pass. Any
// bits beyond the logical size in the final word must already be
// zero; the caller guarantees this padding. An empty word array
// yields the unique empty succinct vector: size 0, Rank(0) == 0, and
// every other query out of range.
func Prepare(words []uint64, opts ...Option) *SuccinctBitVector {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(o)
	}
	return prepare(words, o)
}

func prepare(words []uint64, o *buildOptions) *SuccinctBitVector {
	size := uint64(len(words)) * wordBits
	numBlocks := ceilDiv(uint64(len(words)), blockWords)

	rankTable := buildRank9Table(words)
	numOnes := rankTable[2*numBlocks]
	o.logger.WithFields(logrus.Fields{
		"words":  len(words),
		"blocks": numBlocks,
		"bits":   size,
	}).Debug("rank9 table built")

	inv := buildSelect9(words, size, rankTable, numBlocks)
	o.logger.WithFields(logrus.Fields{
		"ones":    numOnes,
		"samples": len(inv.primary),
	}).Debug("select9 inventory built")

	return &SuccinctBitVector{
		words:     words,
		size:      size,
		numOnes:   numOnes,
		numBlocks: numBlocks,
		rankTable: rankTable,
		primary:   inv.primary,
		secondary: inv.secondary,
		offsets:   inv.offsets,
	}
}

// Size returns the number of bits in the vector (len(B) * 64).
func (sv *SuccinctBitVector) Size() uint64 {
	return sv.size
}

// NumOnes returns the total number of set bits.
func (sv *SuccinctBitVector) NumOnes() uint64 {
	return sv.numOnes
}

// Index returns the bit at position n, or ErrOutOfRange if n is not
// in [0, Size()).
func (sv *SuccinctBitVector) Index(n uint64) (bool, error) {
	if n >= sv.size {
		return false, ErrOutOfRange
	}
	return sv.UncheckedIndex(n), nil
}

// UncheckedIndex returns the bit at position n. The caller must
// guarantee 0 <= n < Size(); behavior is undefined otherwise.
func (sv *SuccinctBitVector) UncheckedIndex(n uint64) bool {
	w := n / wordBits
	b := n % wordBits
	return (sv.words[w]>>b)&1 == 1
}

// Rank returns the number of 1-bits in [0, p), or ErrOutOfRange if p
// is not in [0, Size()].
func (sv *SuccinctBitVector) Rank(p uint64) (uint64, error) {
	if p > sv.size {
		return 0, ErrOutOfRange
	}
	return sv.UncheckedRank(p), nil
}

// UncheckedRank returns the number of 1-bits in [0, p). The caller
// must guarantee 0 <= p <= Size(); behavior is undefined otherwise.
func (sv *SuccinctBitVector) UncheckedRank(p uint64) uint64 {
	return rank9Query(sv.rankTable, sv.words, p)
}

// Select returns the position of the n-th (0-indexed) 1-bit, or
// ErrOutOfRange if n >= NumOnes().
//
// Select narrows to a basic block using the primary sample bracket
// and the resident rank9 table, then finishes with a broadword scan;
// for the three explicit-position encoding tiers it reads the answer
// directly out of the secondary inventory instead.
func (sv *SuccinctBitVector) Select(n uint64) (uint64, error) {
	if n >= sv.numOnes {
		return 0, ErrOutOfRange
	}
	return sv.UncheckedSelect(n), nil
}

// UncheckedSelect returns the position of the n-th (0-indexed) 1-bit.
// The caller must guarantee 0 <= n < NumOnes(); behavior is undefined
// otherwise.
func (sv *SuccinctBitVector) UncheckedSelect(n uint64) uint64 {
	k := n / selectSampleRate
	start := sv.primary[k]
	end := sv.primary[k+1]
	within := n % selectSampleRate

	a := start / blockBits
	b := end / blockBits
	if b > sv.numBlocks {
		b = sv.numBlocks
	}
	var span uint64
	if b > a {
		span = b - a
	}

	if span >= 64 {
		rec := sv.secondary[sv.offsets[k]:sv.offsets[k+1]]
		switch {
		case span < 128:
			word := rec[within/4]
			return start + uint64(uint16(word>>(16*(within%4))))
		case span < 256:
			word := rec[within/2]
			return start + uint64(uint32(word>>(32*(within%2))))
		default:
			return rec[within]
		}
	}

	// Block b itself can still hold ones before end, so it stays in
	// range unless it lies past the last real block.
	upper := b
	if upper >= sv.numBlocks && upper > a {
		upper = sv.numBlocks - 1
	}
	m := sv.narrowBlock(a, upper, n)
	remain := n - sv.rankTable[2*m]
	return sv.scanBlockForSelect(m, remain)
}

// narrowBlock finds the largest basic block index m in [lo,hi] such
// that the cumulative rank before m is <= n.
func (sv *SuccinctBitVector) narrowBlock(lo, hi, n uint64) uint64 {
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if sv.rankTable[2*mid] <= n {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// scanBlockForSelect finds the position of the remain-th (0-indexed)
// 1-bit within basic block blockIdx, counting from that block's own
// start.
func (sv *SuccinctBitVector) scanBlockForSelect(blockIdx, remain uint64) uint64 {
	base := blockIdx * blockWords
	for w := uint64(0); w < blockWords; w++ {
		idx := base + w
		var word uint64
		if idx < uint64(len(sv.words)) {
			word = sv.words[idx]
		}
		c := popcountFast(word)
		if c > remain {
			return idx*wordBits + uint64(selectInWord(word, int(remain)))
		}
		remain -= c
	}
	return blockIdx*blockBits + blockBits
}
