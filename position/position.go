// Package position reconciles the LSP line/UTF-16 coordinate system with
// the byte/UTF-8 offsets the native analyzer deals in.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a 0-based (line, UTF-16 column) pair, matching the LSP wire
// shape.
type Position struct {
	Line      uint32
	UTF16Col  uint32
}

// Range is a half-open [Start, End) span of Positions.
type Range struct {
	Start Position
	End   Position
}

// Offset is a byte offset into a UTF-8 buffer.
type Offset uint32

// LineTable is an eagerly computed index over a text buffer for conversions
// between byte offsets, (line, UTF-8 column), and (line, UTF-16 column).
// Finding a line is an O(log n) search; a column conversion scans that line.
type LineTable struct {
	text        string
	lineStarts  []Offset // byte offset of the start of each line, including the final partial line
}

// New builds a LineTable over text. Lines are terminated by "\n" or "\r\n";
// the terminator belongs to the preceding line and does not contribute to
// that line's column count past its own start.
func New(text string) *LineTable {
	lt := &LineTable{text: text, lineStarts: []Offset{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lt.lineStarts = append(lt.lineStarts, Offset(i+1))
		}
	}
	return lt
}

// LineCount returns the number of lines in the table, including a possibly
// empty trailing line.
func (lt *LineTable) LineCount() int { return len(lt.lineStarts) }

func (lt *LineTable) lineBounds(line int) (start, end Offset, ok bool) {
	if line < 0 || line >= len(lt.lineStarts) {
		return 0, 0, false
	}
	start = lt.lineStarts[line]
	if line+1 < len(lt.lineStarts) {
		end = lt.lineStarts[line+1]
	} else {
		end = Offset(len(lt.text))
	}
	return start, end, true
}

// lineContent returns the line's text with any trailing line terminator
// stripped.
func (lt *LineTable) lineContent(line int) (string, bool) {
	start, end, ok := lt.lineBounds(line)
	if !ok {
		return "", false
	}
	s := lt.text[start:end]
	s = trimTerminator(s)
	return s, true
}

func trimTerminator(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// UTF8Offset converts a (line, utf16Col) position to an absolute byte
// offset. Returns false if the line is out of range, the column does not
// land on a code-unit boundary, or the column exceeds the line's UTF-16
// length.
func (lt *LineTable) UTF8Offset(line, utf16Col uint32) (Offset, bool) {
	content, ok := lt.lineContent(int(line))
	if !ok {
		return 0, false
	}
	start, _, _ := lt.lineBounds(int(line))

	var seenUTF16 uint32
	byteOff := 0
	for byteOff < len(content) {
		if seenUTF16 == utf16Col {
			return start + Offset(byteOff), true
		}
		r, size := decodeRune(content[byteOff:])
		units := utf16.RuneLen(r)
		if units < 0 {
			units = 1
		}
		seenUTF16 += uint32(units)
		byteOff += size
	}
	if seenUTF16 == utf16Col {
		return start + Offset(byteOff), true
	}
	return 0, false
}

// LineAndUTF16Column converts an absolute byte offset into a (line,
// utf16Col) position. Returns false if the offset does not land on a rune
// boundary or is past the end of the buffer.
func (lt *LineTable) LineAndUTF16Column(offset Offset) (Position, bool) {
	line := lt.lineForOffset(offset)
	if line < 0 {
		return Position{}, false
	}
	start, end, _ := lt.lineBounds(line)
	if offset > end {
		return Position{}, false
	}
	content := lt.text[start:end]
	target := int(offset - start)
	if target > len(content) {
		return Position{}, false
	}
	var seenUTF16 uint32
	byteOff := 0
	for byteOff < target {
		if byteOff >= len(content) {
			return Position{}, false
		}
		r, size := decodeRune(content[byteOff:])
		if byteOff+size > target {
			// offset lands mid-scalar
			return Position{}, false
		}
		units := utf16.RuneLen(r)
		if units < 0 {
			units = 1
		}
		seenUTF16 += uint32(units)
		byteOff += size
	}
	return Position{Line: uint32(line), UTF16Col: seenUTF16}, true
}

// UTF16Column converts a (line, utf8Col) position into a UTF-16 column on
// the same line.
func (lt *LineTable) UTF16Column(line, utf8Col uint32) (uint32, bool) {
	content, ok := lt.lineContent(int(line))
	if !ok {
		return 0, false
	}
	if int(utf8Col) > len(content) {
		return 0, false
	}
	var seenUTF16 uint32
	byteOff := 0
	for byteOff < int(utf8Col) {
		r, size := decodeRune(content[byteOff:])
		if byteOff+size > int(utf8Col) {
			return 0, false
		}
		units := utf16.RuneLen(r)
		if units < 0 {
			units = 1
		}
		seenUTF16 += uint32(units)
		byteOff += size
	}
	return seenUTF16, true
}

func (lt *LineTable) lineForOffset(offset Offset) int {
	if int(offset) > len(lt.text) {
		return -1
	}
	// binary search over lineStarts for the last start <= offset
	lo, hi := 0, len(lt.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lt.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}
