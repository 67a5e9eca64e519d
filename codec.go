package rank9sel

import "github.com/ugorji/go/codec"

// MarshalBinary encodes the vector's owned arrays (words, rank table,
// primary and secondary select inventories, and the select offset
// table) into a compact binary form: one msgpack-encoded field after
// another written to a growing byte buffer.
func (sv *SuccinctBitVector) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)

	for _, v := range []any{
		sv.words,
		sv.size,
		sv.numOnes,
		sv.numBlocks,
		sv.rankTable,
		sv.primary,
		sv.secondary,
		sv.offsets,
	} {
		if err = enc.Encode(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalBinary decodes a SuccinctBitVector from bytes produced by
// MarshalBinary. The receiver must be the zero value.
func (sv *SuccinctBitVector) UnmarshalBinary(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)

	for _, v := range []any{
		&sv.words,
		&sv.size,
		&sv.numOnes,
		&sv.numBlocks,
		&sv.rankTable,
		&sv.primary,
		&sv.secondary,
		&sv.offsets,
	} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}
	return nil
}
