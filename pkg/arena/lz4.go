package arena

import (
	"bytes"

	gitbinary "github.com/go-git/go-git/v6/utils/binary"
	"github.com/pierrec/lz4/v4"
)

// maxVarintBytes bounds how many bytes the packfile variable-width integer
// encoding can spend on a single uint32: 32 bits at 7 payload bits per byte
// needs at most 5 bytes.
const maxVarintBytes = 5

// CompressUInt32Slice varint-encodes data with the same packfile
// variable-width integer framing pkg/arena/allocator.go uses for its
// on-disk headers, then LZ4-block-compresses the result. Handle columns
// and gap sets are dominated by small, often-repeated values, so most
// elements collapse to a single byte before LZ4 ever sees them. Returns
// nil if encoding or compression fails, which Hibernate treats as an empty
// column.
func CompressUInt32Slice(data []uint32) []byte {
	raw := new(bytes.Buffer)

	for _, v := range data {
		if err := gitbinary.WriteVariableWidthInt(raw, int64(v)); err != nil {
			return nil
		}
	}

	compressed := make([]byte, lz4.CompressBlockBound(raw.Len()))

	n, err := lz4.CompressBlock(raw.Bytes(), compressed, nil)
	if err != nil || n == 0 {
		return nil
	}

	return compressed[:n]
}

// DecompressUInt32Slice reverses CompressUInt32Slice into result, which
// must already be sized to the expected element count.
func DecompressUInt32Slice(data []byte, result []uint32) {
	raw := make([]byte, len(result)*maxVarintBytes)

	n, err := lz4.UncompressBlock(data, raw)
	if err != nil {
		return
	}

	r := bytes.NewReader(raw[:n])

	for idx := range result {
		v, err := gitbinary.ReadVariableWidthInt(r)
		if err != nil {
			return
		}

		result[idx] = uint32(v)
	}
}
