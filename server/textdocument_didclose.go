package server

import (
	"context"

	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
)

// DidClose releases the native-analyzer session for the document and
// clears any diagnostics published for it, on every path out — including
// a close that never saw a matching open native session successfully
// complete, since the session release itself tolerates that.
func (s *server) DidClose(ctx context.Context, params *lsp.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "DidClose", "uri", string(uri))
	defer done()

	if err := s.bridge.EditorClose(ctx, string(uri)); err != nil {
		s.logger.Printf("error closing %q: %v", uri, err)
	}
	s.docs.Close(string(uri))
	s.clearDiagnostics(ctx, uri)
	return nil
}
