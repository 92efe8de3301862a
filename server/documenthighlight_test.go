package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestDocumentHighlightTranslatesRelatedIdentOffsets(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqRelatedIdents, func(req map[string]any) (string, error) {
		return `{"key.results":[{"key.offset":0,"key.length":3},{"key.offset":10,"key.length":3}]}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "foo = 1\nlet y = foo\n")

	highlights, err := srv.DocumentHighlight(context.Background(), &lsp.DocumentHighlightParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
			Position:     lsp.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	require.Equal(t, lsp.HighlightRead, highlights[0].Kind)
	require.Equal(t, uint32(0), highlights[0].Range.Start.Line)
}
