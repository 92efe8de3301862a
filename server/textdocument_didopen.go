package server

import (
	"context"
	"fmt"

	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
)

func (s *server) DidOpen(ctx context.Context, params *lsp.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	uri := string(item.URI)
	ctx, done := debug.Start(ctx, "DidOpen", "uri", uri)
	defer done()

	snap, err := s.docs.Open(uri, item.LanguageID, item.Version, item.Text)
	if err != nil {
		return fmt.Errorf("didOpen %q: %w", uri, err)
	}

	compilerArgs := s.compilerArgs(item.URI, item.LanguageID)
	resp, err := s.bridge.EditorOpen(ctx, uri, item.Text, compilerArgs, false)
	if err != nil {
		return rpcInternalError("editor.open", err)
	}
	s.diagnoseResponse(ctx, snap, resp)
	return nil
}
