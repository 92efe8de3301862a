package position

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUTF8OffsetRoundTrip(t *testing.T) {
	text := "let x = 1\nlet y = \"héllo\"\r\nreturn x + y\n"
	lt := New(text)

	for line := uint32(0); line < uint32(lt.LineCount()); line++ {
		content, ok := lt.lineContent(int(line))
		require.True(t, ok)
		utf16Len, ok := lt.UTF16Column(line, uint32(len(content)))
		require.True(t, ok)
		for col := uint32(0); col <= utf16Len; col++ {
			off, ok := lt.UTF8Offset(line, col)
			require.True(t, ok, "line %d col %d", line, col)
			pos, ok := lt.LineAndUTF16Column(off)
			require.True(t, ok)
			require.Equal(t, Position{Line: line, UTF16Col: col}, pos)
		}
	}
}

func TestUTF8OffsetAstral(t *testing.T) {
	// U+1F600 GRINNING FACE occupies two UTF-16 code units and four UTF-8 bytes.
	text := "a\U0001F600b"
	lt := New(text)

	off, ok := lt.UTF8Offset(0, 1) // right after "a"
	require.True(t, ok)
	require.EqualValues(t, 1, off)

	off, ok = lt.UTF8Offset(0, 3) // right after the emoji, before "b"
	require.True(t, ok)
	require.EqualValues(t, 5, off)

	// column 2 would land mid-surrogate-pair; there is no valid UTF-8 offset for it.
	_, ok = lt.UTF8Offset(0, 2)
	require.False(t, ok)
}

func TestOutOfRangeReturnsAbsent(t *testing.T) {
	lt := New("abc\n")
	_, ok := lt.UTF8Offset(5, 0)
	require.False(t, ok)
	_, ok = lt.UTF8Offset(0, 100)
	require.False(t, ok)
	_, ok = lt.LineAndUTF16Column(Offset(1000))
	require.False(t, ok)
}

func TestCRLFTerminatorExcludedFromColumnCount(t *testing.T) {
	lt := New("ab\r\ncd")
	// end-of-line position on line 0 is column 2 ("ab"), not 4.
	off, ok := lt.UTF8Offset(0, 2)
	require.True(t, ok)
	require.EqualValues(t, 2, off)

	_, ok = lt.UTF8Offset(0, 3)
	require.False(t, ok)
}
