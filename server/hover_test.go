package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestHoverPrefersConvertedDocXMLOverAnnotatedDecl(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqCursorInfo, func(req map[string]any) (string, error) {
		return `{"key.name":"widget()","key.doc.full_as_xml":"<Function><Name>widget</Name><CommentParts><Abstract><Para>Does a thing.</Para></Abstract></CommentParts></Function>","key.annotated_decl":"<raw/>"}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "widget()\n")

	hover, err := srv.Hover(context.Background(), &lsp.HoverParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
			Position:     lsp.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	require.Contains(t, hover.Contents.Value, "# widget()")
	require.Contains(t, hover.Contents.Value, "Does a thing.")
	require.Equal(t, "markdown", hover.Contents.Kind)
}

func TestHoverFallsBackToRawXMLOnConversionFailure(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqCursorInfo, func(req map[string]any) (string, error) {
		return `{"key.name":"widget()","key.doc.full_as_xml":"not valid xml at all <<<"}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "widget()\n")

	hover, err := srv.Hover(context.Background(), &lsp.HoverParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
		},
	})
	require.NoError(t, err)
	require.Contains(t, hover.Contents.Value, "not valid xml at all <<<")
}

func TestHoverWithNoNameReturnsNil(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqCursorInfo, func(req map[string]any) (string, error) {
		return `{}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "widget()\n")

	hover, err := srv.Hover(context.Background(), &lsp.HoverParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
		},
	})
	require.NoError(t, err)
	require.Nil(t, hover)
}
