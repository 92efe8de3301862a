package server

import (
	"context"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/document"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

func (s *server) Completion(ctx context.Context, params *lsp.CompletionParams) (*lsp.CompletionList, error) {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "Completion", "uri", string(uri))
	defer done()
	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return &lsp.CompletionList{}, nil
	}

	requested := params.Position.ToInternal()
	offset, ok := identifierStartOffset(snap, requested)
	if !ok {
		return &lsp.CompletionList{}, nil
	}

	doc := snap.Document()
	compilerArgs := s.compilerArgs(uri, doc.Language)
	resp, err := s.bridge.CodeComplete(ctx, string(uri), offset, doc.Text, compilerArgs)
	if err != nil {
		return nil, rpcInternalError("codecomplete", err)
	}

	results, _ := resp.Array(bridge.KeyResults)
	items := make([]lsp.CompletionItem, 0, len(results))
	for _, r := range results {
		items = append(items, completionItemFromResult(r))
	}
	return &lsp.CompletionList{IsIncomplete: false, Items: items}, nil
}

func completionItemFromResult(r *bridge.Response) lsp.CompletionItem {
	label, _ := r.String(bridge.KeyName)
	detail, _ := r.String(bridge.KeyTypeName)
	filterText, _ := r.String(bridge.KeyFilterText)
	insertText := label
	if sourceText, ok := r.String(bridge.KeySourceText); ok {
		insertText = sourceText
	}

	item := lsp.CompletionItem{
		Label:            label,
		Detail:           detail,
		FilterText:       filterText,
		InsertTextFormat: lsp.InsertTextFormatSnippet,
	}
	if kindUID, ok := r.UID(bridge.KeyKind); ok {
		item.Kind = bridge.CompletionKind(kindUID)
	}
	if rewritten, ok := bridge.RewritePlaceholders(insertText); ok {
		item.InsertText = rewritten
	} else {
		item.InsertText = insertText
	}
	return item
}

// identifierStartOffset rewinds pos backward across identifier characters
// (letters, digits, underscore) to the start of the identifier under the
// cursor, and returns that position's byte offset — the offset the native
// completer is actually queried at, not the raw cursor position.
func identifierStartOffset(snap *document.Snapshot, pos position.Position) (int, bool) {
	off, ok := snap.Lines().UTF8Offset(pos.Line, pos.UTF16Col)
	if !ok {
		return 0, false
	}
	text := snap.Document().Text
	o := int(off)
	for o > 0 && isIdentifierByte(text[o-1]) {
		o--
	}
	return o, true
}

func isIdentifierByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
