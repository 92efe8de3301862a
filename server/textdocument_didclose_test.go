package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestDidCloseClearsPublishedDiagnostics(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqEditorOpen, func(req map[string]any) (string, error) {
		return `{"key.diagnostics":[{"key.offset":0,"key.length":1,"key.description":"bad"}]}`, nil
	})
	var closed bool
	transport.on(bridge.ReqEditorClose, func(req map[string]any) (string, error) {
		closed = true
		return `{}`, nil
	})
	srv, client := newTestServer(transport)

	require.NoError(t, srv.DidOpen(context.Background(), &lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "let x = 1\n"},
	}))
	require.NotEmpty(t, client.lastPublish().Diagnostics)

	err := srv.DidClose(context.Background(), &lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
	})
	require.NoError(t, err)
	require.True(t, closed)

	_, ok := srv.docs.Latest("file:///a.swift")
	require.False(t, ok)

	publish := client.lastPublish()
	require.NotNil(t, publish)
	require.Empty(t, publish.Diagnostics)
}

func TestDidCloseOnNeverOpenedDocumentDoesNotPublish(t *testing.T) {
	transport := newRoutedTransport()
	srv, client := newTestServer(transport)

	err := srv.DidClose(context.Background(), &lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///never.swift"},
	})
	require.NoError(t, err)
	require.Nil(t, client.lastPublish())
}
