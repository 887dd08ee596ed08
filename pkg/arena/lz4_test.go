package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redblack-systems/rbtree/pkg/arena"
)

func TestCompressDecompressUInt32Slice(t *testing.T) {
	t.Parallel()

	data := make([]uint32, 1000)
	for idx := range data {
		data[idx] = 7
	}

	packed := arena.CompressUInt32Slice(data)
	assert.NotNil(t, packed)
	assert.NotEmpty(t, packed)

	for idx := range data {
		data[idx] = 0
	}

	arena.DecompressUInt32Slice(packed, data)

	for idx, v := range data {
		assert.Equal(t, uint32(7), v, "value at index %d", idx)
	}
}

func TestCompressDecompressUInt32Slice_Empty(t *testing.T) {
	t.Parallel()

	var data []uint32

	packed := arena.CompressUInt32Slice(data)
	arena.DecompressUInt32Slice(packed, data)
}
