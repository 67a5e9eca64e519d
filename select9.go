package rank9sel

// select9 holds the Select9 primary/secondary inventory together with
// an explicit offset table that addresses each pair's variable-length
// secondary record: offsets[k] gives the start index of pair k's
// record directly, so a reader never has to re-derive it from record
// lengths.
type select9 struct {
	primary   []uint64 // P: strictly increasing sampled positions, sentinel = size
	secondary []uint64 // S: concatenated per-pair records
	offsets   []uint64 // offsets[k] = start index of pair k's record in secondary; len(offsets) == len(primary)
}

// buildSelect9 builds the primary and secondary inventories from the
// raw words, given the already-built rank9 table (reused to compute
// the coarse/fine deltas of the secondary records).
func buildSelect9(words []uint64, size uint64, rankTable []uint64, numBlocks uint64) *select9 {
	primary := buildPrimaryInventory(words, size)
	numPairs := len(primary) - 1

	offsets := make([]uint64, len(primary))
	var secondary []uint64
	for k := 0; k < numPairs; k++ {
		start := primary[k]
		end := primary[k+1]
		a := start / blockBits
		b := end / blockBits
		if b > numBlocks {
			b = numBlocks
		}
		var span uint64
		if b > a {
			span = b - a
		}

		offsets[k] = uint64(len(secondary))
		rec := buildSecondaryRecord(words, rankTable, numBlocks, start, end, a, b, span)
		secondary = append(secondary, rec...)
	}
	offsets[numPairs] = uint64(len(secondary))

	return &select9{primary: primary, secondary: secondary, offsets: offsets}
}

// buildPrimaryInventory samples the position of every 512th 1-bit
// (0-indexed: the 0th, 512th, 1024th, ...) and terminates with a
// sentinel equal to size.
func buildPrimaryInventory(words []uint64, size uint64) []uint64 {
	var primary []uint64
	var oneIndex uint64
	for wi, word := range words {
		base := uint64(wi) * wordBits
		for word != 0 {
			pos, rest := nextSetBit(word)
			word = rest
			if oneIndex%selectSampleRate == 0 {
				primary = append(primary, base+uint64(pos))
			}
			oneIndex++
		}
	}
	primary = append(primary, size)
	return primary
}

// buildSecondaryRecord builds the 2*span-word record for the pair
// (start, end) spanning basic blocks [a,b), following the
// density-adaptive encoding table in the design.
func buildSecondaryRecord(words []uint64, rankTable []uint64, numBlocks, start, end, a, b, span uint64) []uint64 {
	if span == 0 {
		return nil
	}
	rec := make([]uint64, 2*span)
	switch {
	case span < 8:
		fillCoarse(rec, rankTable, numBlocks, a)
	case span < 64:
		fillCoarse(rec, rankTable, numBlocks, a)
		fillFine(rec, rankTable, numBlocks, a)
	case span < 128:
		fillExplicit16(rec, words, a, b, start, end)
	case span < 256:
		fillExplicit32(rec, words, a, b, start, end)
	default:
		fillExplicit64(rec, words, a, b, start, end)
	}
	return rec
}

// coarseCount returns R[2j], or the 16-bit all-ones sentinel when j
// falls beyond the last real basic block.
func coarseCount(rankTable []uint64, numBlocks, j uint64) uint64 {
	if j >= numBlocks {
		return 0xFFFF
	}
	return rankTable[2*j]
}

// delta16 returns count(a+offset) - count(a) truncated to 16 bits, or
// the sentinel when a+offset has no corresponding real block.
func delta16(rankTable []uint64, numBlocks, a, offset, countA uint64) uint16 {
	j := a + offset
	if j >= numBlocks {
		return 0xFFFF
	}
	return uint16(rankTable[2*j] - countA)
}

// fillCoarse packs the four-block-stride deltas (offsets 0,4,8,12 into
// word 0; offsets 16,20,24,28 into word 1) shared by both the
// coarse-only and coarse+mid encodings.
func fillCoarse(rec []uint64, rankTable []uint64, numBlocks, a uint64) {
	countA := coarseCount(rankTable, numBlocks, a)
	if len(rec) >= 1 {
		var w uint64
		for i, off := range [4]uint64{0, 4, 8, 12} {
			w |= uint64(delta16(rankTable, numBlocks, a, off, countA)) << (16 * uint(i))
		}
		rec[0] = w
	}
	if len(rec) >= 2 {
		var w uint64
		for i, off := range [4]uint64{16, 20, 24, 28} {
			w |= uint64(delta16(rankTable, numBlocks, a, off, countA)) << (16 * uint(i))
		}
		rec[1] = w
	}
}

// fillFine packs one 16-bit delta per basic block, for offsets 0..63,
// into words 2..17 (four per word), truncated to whatever fits in
// rec.
func fillFine(rec []uint64, rankTable []uint64, numBlocks, a uint64) {
	countA := coarseCount(rankTable, numBlocks, a)
	for i := 2; i <= 17 && i < len(rec); i++ {
		var w uint64
		for j := uint64(0); j < 4; j++ {
			off := 4*uint64(i-2) + j
			w |= uint64(delta16(rankTable, numBlocks, a, off, countA)) << (16 * j)
		}
		rec[i] = w
	}
}

// onesInSpan returns, in order, the positions of 1-bits in [start,end)
// relative to start. It scans block-aligned words starting at block a
// and stops once it passes end or exhausts the underlying array.
func onesInSpan(words []uint64, a, b, start, end uint64) []uint64 {
	var ones []uint64
	loWord := a * blockWords
	hiWord := (b + 1) * blockWords
	for wi := loWord; wi < hiWord; wi++ {
		if wi >= uint64(len(words)) {
			break
		}
		word := words[wi]
		base := wi * wordBits
		for word != 0 {
			pos, rest := nextSetBit(word)
			word = rest
			abs := base + uint64(pos)
			if abs < start {
				continue
			}
			if abs >= end {
				return ones
			}
			ones = append(ones, abs-start)
		}
	}
	return ones
}

// fillExplicit16 packs four 16-bit relative positions per word.
func fillExplicit16(rec []uint64, words []uint64, a, b, start, end uint64) {
	ones := onesInSpan(words, a, b, start, end)
	for i := range rec {
		var w uint64
		for j := uint64(0); j < 4; j++ {
			idx := 4*i + int(j)
			var v uint16
			if idx < len(ones) {
				v = uint16(ones[idx])
			}
			w |= uint64(v) << (16 * j)
		}
		rec[i] = w
	}
}

// fillExplicit32 packs two 32-bit relative positions per word.
func fillExplicit32(rec []uint64, words []uint64, a, b, start, end uint64) {
	ones := onesInSpan(words, a, b, start, end)
	for i := range rec {
		var w uint64
		for j := uint64(0); j < 2; j++ {
			idx := 2*i + int(j)
			var v uint32
			if idx < len(ones) {
				v = uint32(ones[idx])
			}
			w |= uint64(v) << (32 * j)
		}
		rec[i] = w
	}
}

// fillExplicit64 packs one absolute position per word.
func fillExplicit64(rec []uint64, words []uint64, a, b, start, end uint64) {
	ones := onesInSpan(words, a, b, start, end)
	for i := range rec {
		if i < len(ones) {
			rec[i] = start + ones[i]
		}
	}
}
