package rank9sel

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor shrinks and restores an already-serialized snapshot. It
// mirrors the Codec interface convention vecgo centralizes its
// payload encoders behind, but operates on bytes rather than
// arbitrary values: MarshalBinary already produced the msgpack form,
// a Compressor only squeezes that further before a blob store gets
// it.
//
// Compressing here never touches the in-memory word array B; it only
// shrinks the wire encoding, so it does not reintroduce the
// bit-compression this package's core explicitly leaves out.
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CompressorByName returns a built-in Compressor by its stable name,
// for self-describing snapshot headers that record which one was
// used.
func CompressorByName(name string) (Compressor, bool) {
	switch name {
	case "zstd":
		return ZstdCompressor{}, true
	case "lz4":
		return LZ4Compressor{}, true
	default:
		return nil, false
	}
}

// ZstdCompressor compresses with github.com/klauspost/compress/zstd.
type ZstdCompressor struct{}

func (ZstdCompressor) Name() string { return "zstd" }

func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// LZ4Compressor compresses with github.com/pierrec/lz4/v4. Since
// LZ4's block API needs to know the decompressed size up front, the
// original length is stored as a uvarint header in front of the
// block, followed by a one-byte flag: lz4FlagRaw when the block
// didn't shrink and the original bytes follow uncompressed,
// lz4FlagCompressed when an LZ4 block follows.
type LZ4Compressor struct{}

const (
	lz4FlagRaw        = 0
	lz4FlagCompressed = 1
)

func (LZ4Compressor) Name() string { return "lz4" }

func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var header [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(header[:], uint64(len(data)))

	dst := make([]byte, n+1+lz4.CompressBlockBound(len(data)))
	copy(dst, header[:n])

	var c lz4.Compressor
	written, err := c.CompressBlock(data, dst[n+1:])
	if err != nil {
		return nil, err
	}
	if written == 0 && len(data) > 0 {
		dst[n] = lz4FlagRaw
		copy(dst[n+1:], data)
		return dst[:n+1+len(data)], nil
	}
	dst[n] = lz4FlagCompressed
	return dst[:n+1+written], nil
}

func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("rank9sel: malformed lz4 header")
	}
	if len(data) < n+1 {
		return nil, fmt.Errorf("rank9sel: malformed lz4 header")
	}
	flag := data[n]
	body := data[n+1:]

	if flag == lz4FlagRaw {
		dst := make([]byte, size)
		copy(dst, body)
		return dst, nil
	}

	dst := make([]byte, size)
	written, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		return nil, err
	}
	return dst[:written], nil
}
