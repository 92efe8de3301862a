package server

import (
	"context"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
)

func (s *server) DocumentHighlight(ctx context.Context, params *lsp.DocumentHighlightParams) ([]lsp.DocumentHighlight, error) {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "DocumentHighlight", "uri", string(uri))
	defer done()

	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return nil, nil
	}

	requested := params.Position.ToInternal()
	offset, ok := snap.Lines().UTF8Offset(requested.Line, requested.UTF16Col)
	if !ok {
		return nil, nil
	}

	doc := snap.Document()
	compilerArgs := s.compilerArgs(uri, doc.Language)
	resp, err := s.bridge.RelatedIdents(ctx, string(uri), int(offset), compilerArgs)
	if err != nil {
		return nil, rpcInternalError("relatedidents", err)
	}

	results, _ := resp.Array(bridge.KeyResults)
	out := make([]lsp.DocumentHighlight, 0, len(results))
	for _, r := range results {
		off, ok := r.Int(bridge.KeyOffset)
		if !ok {
			continue
		}
		length, _ := r.Int(bridge.KeyLength)
		rng, ok := rangeFromOffsetLength(snap.Lines(), off, length)
		if !ok {
			continue
		}
		out = append(out, lsp.DocumentHighlight{Range: rng, Kind: lsp.HighlightRead})
	}
	return out, nil
}
