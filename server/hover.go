package server

import (
	"context"
	"fmt"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
)

func (s *server) Hover(ctx context.Context, params *lsp.HoverParams) (*lsp.Hover, error) {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "Hover", "uri", string(uri))
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
	resp, err := s.bridge.CursorInfo(ctx, string(uri), int(offset), compilerArgs)
	if err != nil {
		return nil, rpcInternalError("cursorinfo", err)
	}

	name, ok := resp.String(bridge.KeyName)
	if !ok {
		return nil, nil
	}

	body, hasBody := hoverBody(resp)
	value := fmt.Sprintf("# %s", name)
	if hasBody {
		value = value + "\n\n" + body
	}
	return &lsp.Hover{Contents: lsp.MarkupContent{Kind: "markdown", Value: value}}, nil
}

// hoverBody picks the documentation body for a cursor-info response: the
// documentation XML converted to markdown if present (falling back to the
// raw XML on a conversion failure), else the annotated declaration with
// the same fallback — which for a plain string source is simply itself.
func hoverBody(resp *bridge.Response) (string, bool) {
	if docXML, ok := resp.String(bridge.KeyDocXML); ok {
		return convertOrRaw(docXML), true
	}
	if decl, ok := resp.String(bridge.KeyAnnotatedDecl); ok {
		return convertOrRaw(decl), true
	}
	return "", false
}

func convertOrRaw(xml string) string {
	if md, err := bridge.ConvertDocXML(xml); err == nil {
		return md
	}
	return xml
}
