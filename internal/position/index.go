// Package position converts between byte offsets and line/column
// positions. Columns are either bytes (syntax tree locations) or UTF-16
// code units (LSP positions).
package position

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Index maps offsets in one text to positions and back.
type Index struct {
	text  string
	lines []int // byte offset of each line start
}

// NewIndex scans text for line starts.
func NewIndex(text string) *Index {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{text: text, lines: lines}
}

// Lines returns the number of lines.
func (ix *Index) Lines() int {
	return len(ix.lines)
}

func (ix *Index) clamp(offset int) int {
	return max(0, min(offset, len(ix.text)))
}

func (ix *Index) lineOf(offset int) int {
	return sort.Search(len(ix.lines), func(i int) bool { return ix.lines[i] > offset }) - 1
}

func (ix *Index) lineText(line int) string {
	end := len(ix.text)
	if line+1 < len(ix.lines) {
		end = ix.lines[line+1]
	}
	return ix.text[ix.lines[line]:end]
}

// Position returns the zero-based line and byte column of offset.
func (ix *Index) Position(offset int) (line, column int) {
	offset = ix.clamp(offset)
	line = ix.lineOf(offset)
	return line, offset - ix.lines[line]
}

// Offset returns the byte offset of a line and byte column, clamped to the
// text.
func (ix *Index) Offset(line, column int) int {
	if line < 0 {
		return 0
	}
	if line >= len(ix.lines) {
		return len(ix.text)
	}
	return ix.clamp(ix.lines[line] + max(column, 0))
}

// UTF16Position returns the zero-based line and UTF-16 column of offset.
func (ix *Index) UTF16Position(offset int) (line, character uint32) {
	l, col := ix.Position(offset)
	return uint32(l), uint32(ByteOffsetToUTF16(ix.lineText(l), col))
}

// UTF16Offset returns the byte offset of a line and UTF-16 column.
func (ix *Index) UTF16Offset(line, character uint32) int {
	l := int(line)
	if l >= len(ix.lines) {
		return len(ix.text)
	}
	return ix.lines[l] + UTF16ToByteOffset(ix.lineText(l), int(character))
}

// UTF16ToByteOffset converts a UTF-16 column within s to a byte offset.
// A column inside a surrogate pair clamps to the start of the rune.
func UTF16ToByteOffset(s string, column int) int {
	units, offset := 0, 0
	for offset < len(s) && units < column {
		r, size := utf8.DecodeRuneInString(s[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > column {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset within s to a UTF-16 column.
func ByteOffsetToUTF16(s string, offset int) int {
	offset = max(0, min(offset, len(s)))
	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}
