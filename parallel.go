package rank9sel

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PrepareConcurrent builds a SuccinctBitVector the same way Prepare
// does, except the rank9 table's per-block popcounts are computed
// across WithConcurrency strides in parallel before being folded into
// the running first-level sums serially. The fold is inherently
// sequential — the design's concurrency model only promises the
// built structure needs no synchronization for readers, not that the
// builder itself can't use goroutines — so this only pays off for
// large inputs where the popcount pass dominates construction time.
//
// PrepareConcurrent always produces byte-identical rankTable,
// primary, secondary, and offsets arrays to Prepare on the same
// input.
func PrepareConcurrent(words []uint64, opts ...Option) *SuccinctBitVector {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.concurrency <= 1 || len(words) < blockWords*strideMinBlocks {
		return prepare(words, o)
	}

	size := uint64(len(words)) * wordBits
	numBlocks := ceilDiv(uint64(len(words)), blockWords)
	rankTable := buildRank9TableConcurrent(words, numBlocks, o.concurrency)
	numOnes := rankTable[2*numBlocks]

	o.logger.WithFields(logrus.Fields{
		"words":       len(words),
		"blocks":      numBlocks,
		"bits":        size,
		"concurrency": o.concurrency,
	}).Debug("rank9 table built concurrently")

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

// strideMinBlocks is the minimum number of basic blocks the whole
// input must have before PrepareConcurrent takes the parallel path;
// smaller inputs are built serially by prepare.
const strideMinBlocks = 4096

// blockTotals holds, for one stride of basic blocks, the packed
// second-level word and total popcount of each block in the stride.
type blockTotals struct {
	packed []uint64 // one packed second-level word per block in the stride
	totals []uint64 // one full-block popcount per block in the stride
}

// buildRank9TableConcurrent computes the same table as
// buildRank9Table, but computes each stride's per-block popcounts
// concurrently via errgroup before folding the running first-level
// cumulative sum serially.
func buildRank9TableConcurrent(words []uint64, numBlocks uint64, concurrency int) []uint64 {
	table := make([]uint64, 2*numBlocks+1)
	if numBlocks == 0 {
		return table
	}

	strideBlocks := ceilDiv(numBlocks, uint64(concurrency))
	numStrides := int(ceilDiv(numBlocks, strideBlocks))
	results := make([]blockTotals, numStrides)

	g, _ := errgroup.WithContext(context.Background())
	for s := 0; s < numStrides; s++ {
		s := s
		g.Go(func() error {
			lo := uint64(s) * strideBlocks
			hi := lo + strideBlocks
			if hi > numBlocks {
				hi = numBlocks
			}
			results[s] = computeBlockTotals(words, lo, hi)
			return nil
		})
	}
	_ = g.Wait() // computeBlockTotals never errors; kept for the fan-out idiom

	var cumulative uint64
	q := uint64(0)
	for _, r := range results {
		for i := range r.totals {
			table[2*q] = cumulative
			table[2*q+1] = r.packed[i]
			cumulative += r.totals[i]
			q++
		}
	}
	table[2*numBlocks] = cumulative
	return table
}

func computeBlockTotals(words []uint64, lo, hi uint64) blockTotals {
	packed := make([]uint64, 0, hi-lo)
	totals := make([]uint64, 0, hi-lo)
	for q := lo; q < hi; q++ {
		base := q * blockWords
		var running uint64
		var p uint64
		for k := uint64(0); k < blockWords; k++ {
			var c uint64
			if idx := base + k; idx < uint64(len(words)) {
				c = popcountFast(words[idx])
			}
			if k >= 1 && k <= 7 {
				p |= running << ((k - 1) * rank9FieldBits)
			}
			running += c
		}
		packed = append(packed, p)
		totals = append(totals, running)
	}
	return blockTotals{packed: packed, totals: totals}
}
