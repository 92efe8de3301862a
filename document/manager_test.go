package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/position"
)

func TestOpenEditCloseLifecycle(t *testing.T) {
	m := NewManager()

	snap, err := m.Open("file:///a.swift", "swift", 1, "let x = 1\n")
	require.NoError(t, err)
	require.Equal(t, "let x = 1\n", snap.Document().Text)

	_, err = m.Open("file:///a.swift", "swift", 1, "let x = 2\n")
	require.Error(t, err, "re-opening an open URI must fail")

	var seenBeforeTexts []string
	final, ok, err := m.Edit("file:///a.swift", 2, []Change{
		{
			Range: &position.Range{
				Start: position.Position{Line: 0, UTF16Col: 4},
				End:   position.Position{Line: 0, UTF16Col: 5},
			},
			Text: "y",
		},
	}, func(before *Snapshot, change Change) {
		seenBeforeTexts = append(seenBeforeTexts, before.Document().Text)
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "let y = 1\n", final.Document().Text)
	require.EqualValues(t, 2, final.Document().Version)
	require.Equal(t, []string{"let x = 1\n"}, seenBeforeTexts)

	latest, ok := m.Latest("file:///a.swift")
	require.True(t, ok)
	require.Same(t, final, latest)

	m.Close("file:///a.swift")
	_, ok = m.Latest("file:///a.swift")
	require.False(t, ok)

	// closing an unknown URI is a silent no-op
	m.Close("file:///never-opened.swift")
}

func TestEditUnknownURIReturnsNotOK(t *testing.T) {
	m := NewManager()
	_, ok, err := m.Edit("file:///missing.swift", 1, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEditWithInvalidRangeIsFatalToTheSequence(t *testing.T) {
	m := NewManager()
	_, err := m.Open("file:///a.swift", "swift", 1, "abc\n")
	require.NoError(t, err)

	_, ok, err := m.Edit("file:///a.swift", 2, []Change{
		{Range: &position.Range{
			Start: position.Position{Line: 0, UTF16Col: 100},
			End:   position.Position{Line: 0, UTF16Col: 101},
		}, Text: "x"},
	}, nil)
	require.Error(t, err)
	require.True(t, ok)

	// the document is still open and usable afterward, on its last good text.
	latest, ok := m.Latest("file:///a.swift")
	require.True(t, ok)
	require.Equal(t, "abc\n", latest.Document().Text)
}

func TestFullBufferReplacement(t *testing.T) {
	m := NewManager()
	_, err := m.Open("file:///a.swift", "swift", 1, "old\n")
	require.NoError(t, err)

	final, ok, err := m.Edit("file:///a.swift", 2, []Change{{Text: "new\n"}}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new\n", final.Document().Text)
}

func TestSnapshotAcquireRelease(t *testing.T) {
	m := NewManager()
	snap, err := m.Open("file:///a.swift", "swift", 1, "x\n")
	require.NoError(t, err)

	release := snap.Acquire()
	release()
}
