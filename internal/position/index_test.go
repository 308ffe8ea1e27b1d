package position_test

import (
	"testing"

	"bennypowers.dev/jsxtree/internal/position"
	"github.com/stretchr/testify/assert"
)

func TestIndexPosition(t *testing.T) {
	ix := position.NewIndex("ab\ncd\n\nef")
	assert.Equal(t, 4, ix.Lines())

	tests := []struct {
		offset, line, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{4, 1, 1},
		{6, 2, 0},
		{7, 3, 0},
		{9, 3, 2},
		{100, 3, 2},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		line, col := ix.Position(tt.offset)
		assert.Equal(t, tt.line, line, "line of offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "column of offset %d", tt.offset)
	}
}

func TestIndexOffset(t *testing.T) {
	ix := position.NewIndex("ab\ncd\n")
	assert.Equal(t, 0, ix.Offset(0, 0))
	assert.Equal(t, 4, ix.Offset(1, 1))
	assert.Equal(t, 6, ix.Offset(9, 0))
	assert.Equal(t, 0, ix.Offset(-1, 3))
}

func TestIndexUTF16(t *testing.T) {
	// "é" is 2 bytes and 1 UTF-16 unit, "😀" is 4 bytes and 2 units.
	text := "x\né😀y"
	ix := position.NewIndex(text)

	line, char := ix.UTF16Position(len("x\né😀"))
	assert.Equal(t, uint32(1), line)
	assert.Equal(t, uint32(3), char)

	assert.Equal(t, len("x\né😀"), ix.UTF16Offset(1, 3))
	assert.Equal(t, len("x\né"), ix.UTF16Offset(1, 2), "inside a surrogate pair clamps to the rune start")
	assert.Equal(t, len(text), ix.UTF16Offset(5, 0))
}

func TestUTF16Conversions(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, 0, position.UTF16ToByteOffset(s, 0))
	assert.Equal(t, 1, position.UTF16ToByteOffset(s, 1))
	assert.Equal(t, 5, position.UTF16ToByteOffset(s, 3))
	assert.Equal(t, 6, position.UTF16ToByteOffset(s, 4))

	assert.Equal(t, 3, position.ByteOffsetToUTF16(s, 5))
	assert.Equal(t, 1, position.ByteOffsetToUTF16(s, 3), "mid-rune offsets stop at the rune start")
	assert.Equal(t, 4, position.ByteOffsetToUTF16(s, 99))
}
