package rank9sel

const (
	// wordBits is the width of the raw storage word. Only 64-bit words
	// are supported.
	wordBits = 64

	// blockWords is the number of words in a Rank9 basic block.
	blockWords = 8

	// blockBits is the number of bits in a basic block (512).
	blockBits = blockWords * wordBits

	// rank9FieldBits is the width of each packed second-level field in
	// R[2q+1]. Seven fields of 9 bits each leave the top bit unused.
	rank9FieldBits = 9

	// rank9FieldMask isolates one 9-bit field.
	rank9FieldMask = (1 << rank9FieldBits) - 1

	// selectSampleRate is the number of 1-bits between consecutive
	// Select9 primary samples.
	selectSampleRate = 512
)
