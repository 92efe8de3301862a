package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestDidChangeSendsRangedReplaceTextAndPublishesDiagnostics(t *testing.T) {
	var sentOffset, sentLength int
	var sentText string

	transport := newRoutedTransport()
	transport.on(bridge.ReqEditorReplaceText, func(req map[string]any) (string, error) {
		sentOffset = int(req["key.offset"].(float64))
		sentLength = int(req["key.length"].(float64))
		sentText, _ = req["key.sourcetext"].(string)
		return `{"key.diagnostics":[]}`, nil
	})
	srv, client := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "let x = 1\n")

	err := srv.DidChange(context.Background(), &lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
			Version:                2,
		},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{
			{
				Range: &lsp.Range{Start: lsp.Position{Line: 0, Character: 4}, End: lsp.Position{Line: 0, Character: 5}},
				Text:  "y",
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 4, sentOffset)
	require.Equal(t, 1, sentLength)
	require.Equal(t, "y", sentText)

	snap, ok := srv.docs.Latest("file:///a.swift")
	require.True(t, ok)
	require.Equal(t, "let y = 1\n", snap.Document().Text)

	publish := client.lastPublish()
	require.NotNil(t, publish)
	require.Empty(t, publish.Diagnostics)
}

func TestDidChangeOnUnopenedDocumentFails(t *testing.T) {
	transport := newRoutedTransport()
	srv, _ := newTestServer(transport)

	err := srv.DidChange(context.Background(), &lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "file:///missing.swift"},
			Version:                1,
		},
	})
	require.Error(t, err)
}
