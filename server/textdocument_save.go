package server

import (
	"context"

	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
)

// DidSave and WillSave have nothing to do here: diagnostics are driven by
// didOpen, didChange, and the native analyzer's own document-update
// notifications, not by save events. The server still advertises willSave
// (with willSaveWaitUntil=false) because some clients gate other behavior
// on it being present at all.

func (s *server) DidSave(ctx context.Context, params *lsp.DidSaveTextDocumentParams) error {
	_, done := debug.Start(ctx, "DidSave", "uri", string(params.TextDocument.URI))
	defer done()
	return nil
}

func (s *server) WillSave(ctx context.Context, params *lsp.WillSaveTextDocumentParams) error {
	_, done := debug.Start(ctx, "WillSave", "uri", string(params.TextDocument.URI))
	defer done()
	return nil
}
