package server

import (
	"context"
	"sort"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

type byteRange struct {
	offset, length int
	kind           lsp.FoldingRangeKind
}

func (s *server) FoldingRange(ctx context.Context, params *lsp.FoldingRangeParams) ([]lsp.FoldingRange, error) {
	uri := params.TextDocument.URI
	ctx, done := debug.Start(ctx, "FoldingRange", "uri", string(uri))
	defer done()

	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return nil, nil
	}
	doc := snap.Document()

	syntheticName := "FoldingRanges:" + string(uri)
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

	syntaxMap, _ := resp.Array(bridge.KeySyntaxMap)
	substructure, _ := resp.Array(bridge.KeySubstructure)

	candidates := append(commentByteRanges(syntaxMap), codeByteRanges(substructure)...)

	limit, lineOnly := s.foldingRangeCapabilities()
	if limit != nil && len(candidates) > int(*limit) {
		candidates = candidates[:*limit]
	}

	lines := snap.Lines()
	out := make([]lsp.FoldingRange, 0, len(candidates))
	for _, c := range candidates {
		fr, ok := buildFoldingRange(lines, c, lineOnly)
		if !ok {
			continue
		}
		out = append(out, fr)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}
		return out[i].EndLine < out[j].EndLine
	})
	return out, nil
}

// commentByteRanges walks the syntax map in order, coalescing consecutive
// comment-kind entries that are byte-adjacent (one ends exactly where the
// next begins) into a single comment folding range.
func commentByteRanges(syntaxMap []*bridge.Response) []byteRange {
	var out []byteRange
	var cur *byteRange
	for _, entry := range syntaxMap {
		kindUID, ok := entry.UID(bridge.KeyKind)
		if !ok || !bridge.IsCommentKind(kindUID) {
			cur = nil
			continue
		}
		offset, ok := entry.Int(bridge.KeyOffset)
		if !ok {
			cur = nil
			continue
		}
		length, _ := entry.Int(bridge.KeyLength)

		if cur != nil && cur.offset+cur.length == offset {
			cur.length += length
			continue
		}
		out = append(out, byteRange{offset: offset, length: length, kind: lsp.FoldingComment})
		cur = &out[len(out)-1]
	}
	return out
}

// codeByteRanges walks substructure with an explicit stack (rather than
// recursion) and emits a code folding range for every item whose
// bodyoffset/bodylength is present.
func codeByteRanges(substructure []*bridge.Response) []byteRange {
	var out []byteRange
	stack := append([]*bridge.Response{}, substructure...)
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if offset, ok := item.Int(bridge.KeyBodyOffset); ok {
			length, _ := item.Int(bridge.KeyBodyLength)
			out = append(out, byteRange{offset: offset, length: length, kind: lsp.FoldingRegion})
		}
		if children, ok := item.Array(bridge.KeySubstructure); ok {
			stack = append(stack, children...)
		}
	}
	return out
}

// buildFoldingRange converts a raw byte range into the wire shape,
// normalizing to whole lines when lineOnly is set: the end line becomes
// end.line-1, and the range is dropped entirely if that collapses it to
// end_line <= start_line.
func buildFoldingRange(lines *position.LineTable, c byteRange, lineOnly bool) (lsp.FoldingRange, bool) {
	start, ok := lines.LineAndUTF16Column(position.Offset(c.offset))
	if !ok {
		return lsp.FoldingRange{}, false
	}
	end, ok := lines.LineAndUTF16Column(position.Offset(c.offset + c.length))
	if !ok {
		return lsp.FoldingRange{}, false
	}

	kind := c.kind
	if lineOnly {
		endLine := end.Line
		if end.Line > start.Line {
			endLine--
		}
		if endLine <= start.Line {
			return lsp.FoldingRange{}, false
		}
		return lsp.FoldingRange{StartLine: start.Line, EndLine: endLine, Kind: &kind}, true
	}

	startChar, endChar := start.UTF16Col, end.UTF16Col
	return lsp.FoldingRange{
		StartLine:      start.Line,
		StartCharacter: &startChar,
		EndLine:        end.Line,
		EndCharacter:   &endChar,
		Kind:           &kind,
	}, true
}
