package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

func TestTranslateDiagnosticsDropsEntryWithUnresolvableOffset(t *testing.T) {
	resp := []*bridge.Response{
		bridge.NewResponse([]byte(`{"key.offset":9999,"key.length":1,"key.description":"oops"}`)),
	}
	out := translateDiagnostics(resp, emptyLineTable(t))
	require.Empty(t, out)
}

func TestHandleNotificationRefreshesAndPublishesDiagnostics(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqEditorOpen, func(req map[string]any) (string, error) {
		return `{"key.diagnostics":[]}`, nil
	})
	refreshCalls := 0
	transport.on(bridge.ReqEditorReplaceText, func(req map[string]any) (string, error) {
		refreshCalls++
		require.EqualValues(t, 0, req["key.offset"])
		require.EqualValues(t, 0, req["key.length"])
		return `{"key.diagnostics":[{"key.offset":0,"key.length":1,"key.description":"now broken"}]}`, nil
	})
	srv, client := newTestServer(transport)

	require.NoError(t, srv.DidOpen(context.Background(), &lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "let x = 1\n"},
	}))

	transport.emitNotification(`{"key.notification":"source.notification.editor.documentupdate","key.name":"file:///a.swift"}`)

	require.Equal(t, 1, refreshCalls)
	publish := client.lastPublish()
	require.NotNil(t, publish)
	require.Len(t, publish.Diagnostics, 1)
	require.Equal(t, "now broken", publish.Diagnostics[0].Message)
}

func TestHandleNotificationIgnoresUnknownKind(t *testing.T) {
	transport := newRoutedTransport()
	refreshCalls := 0
	transport.on(bridge.ReqEditorReplaceText, func(req map[string]any) (string, error) {
		refreshCalls++
		return `{}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "let x = 1\n")

	transport.emitNotification(`{"key.notification":"source.notification.something.else","key.name":"file:///a.swift"}`)
	require.Equal(t, 0, refreshCalls)
}

func emptyLineTable(t *testing.T) *position.LineTable {
	t.Helper()
	return position.New("let x = 1\n")
}
