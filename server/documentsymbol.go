package server

import (
	"context"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

// DocumentSymbol issues a syntactic-only open of the document under a
// synthetic session name, so the native analyzer's own tracking of the
// real editor session (if any) is never disturbed, walks the resulting
// substructure, and closes the synthetic session on every path out.
func (s *server) DocumentSymbol(ctx context.Context, params *lsp.DocumentSymbolParams) ([]lsp.DocumentSymbol, error) {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "DocumentSymbol", "uri", string(uri))
	defer done()

	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return nil, nil
	}
	doc := snap.Document()

	syntheticName := "DocumentSymbols:" + string(uri)
	compilerArgs := s.compilerArgs(uri, doc.Language)
	resp, err := s.bridge.EditorOpen(ctx, syntheticName, doc.Text, compilerArgs, true)
	if err != nil {
		return nil, rpcInternalError("editor.open", err)
	}
	defer func() {
		if cerr := s.bridge.EditorClose(ctx, syntheticName); cerr != nil {
			s.logger.Printf("error closing synthetic session %q: %v", syntheticName, cerr)
		}
	}()

	top, _ := resp.Array(bridge.KeySubstructure)
	return documentSymbolsFromSubstructure(top, snap.Lines()), nil
}

// documentSymbolsFromSubstructure recursively translates a native
// substructure array into document symbols. A node whose kind doesn't map
// to a symbol kind is skipped, but its children are still visited and
// spliced into the result at the skipped node's own level — an unmapped
// parent never hides its children.
func documentSymbolsFromSubstructure(items []*bridge.Response, lines *position.LineTable) []lsp.DocumentSymbol {
	var out []lsp.DocumentSymbol
	for _, item := range items {
		children := childrenOf(item)
		kids := documentSymbolsFromSubstructure(children, lines)

		sym, ok := symbolFromSubstructureItem(item, lines)
		if !ok {
			out = append(out, kids...)
			continue
		}
		sym.Children = kids
		out = append(out, sym)
	}
	return out
}

func childrenOf(item *bridge.Response) []*bridge.Response {
	children, _ := item.Array(bridge.KeySubstructure)
	return children
}

func symbolFromSubstructureItem(item *bridge.Response, lines *position.LineTable) (lsp.DocumentSymbol, bool) {
	kindUID, ok := item.UID(bridge.KeyKind)
	if !ok {
		return lsp.DocumentSymbol{}, false
	}
	kind, ok := bridge.SymbolKind(kindUID)
	if !ok {
		return lsp.DocumentSymbol{}, false
	}

	offset, ok := item.Int(bridge.KeyOffset)
	if !ok {
		return lsp.DocumentSymbol{}, false
	}
	length, _ := item.Int(bridge.KeyLength)
	fullRange, ok := rangeFromOffsetLength(lines, offset, length)
	if !ok {
		return lsp.DocumentSymbol{}, false
	}

	selectionRange := fullRange
	if nameOffset, ok := item.Int(bridge.KeyNameOffset); ok {
		nameLength, _ := item.Int(bridge.KeyNameLength)
		if r, ok := rangeFromOffsetLength(lines, nameOffset, nameLength); ok {
			selectionRange = r
		}
	}

	name, _ := item.String(bridge.KeyName)
	return lsp.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          fullRange,
		SelectionRange: selectionRange,
	}, true
}

// rangeFromOffsetLength converts a native (offset, length) byte span into
// an LSP range via lines. A length that pushes the end past the end of the
// text collapses the range to start==end rather than reporting absent.
func rangeFromOffsetLength(lines *position.LineTable, offset, length int) (lsp.Range, bool) {
	start, ok := lines.LineAndUTF16Column(position.Offset(offset))
	if !ok {
		return lsp.Range{}, false
	}
	end, ok := lines.LineAndUTF16Column(position.Offset(offset + length))
	if !ok {
		end = start
	}
	return lsp.RangeFromInternal(position.Range{Start: start, End: end}), true
}
