package server

import (
	"context"
	"fmt"

	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/document"
	"github.com/swiftls/swiftls/lsp"
)

func (s *server) DidChange(ctx context.Context, params *lsp.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	ctx, done := debug.Start(ctx, "DidChange", "uri", uri)
	defer done()

	changes := make([]document.Change, len(params.ContentChanges))
	for i, c := range params.ContentChanges {
		ch := document.Change{Text: c.Text}
		if c.Range != nil {
			r := c.Range.ToInternal()
			ch.Range = &r
		}
		changes[i] = ch
	}

	_, ok, err := s.docs.Edit(uri, params.TextDocument.Version, changes, func(before *document.Snapshot, change document.Change) {
		offset, length, text := editorReplaceTextArgs(before, change)
		resp, sendErr := s.bridge.EditorReplaceText(ctx, uri, offset, length, text)
		if sendErr != nil {
			s.logger.Printf("error replacing text for %q: %v", uri, sendErr)
			return
		}
		s.diagnoseResponse(ctx, before, resp)
	})
	if !ok {
		return fmt.Errorf("didChange: document %q is not open", uri)
	}
	if err != nil {
		return fmt.Errorf("didChange %q: %w", uri, err)
	}
	return nil
}

// editorReplaceTextArgs converts one document.Change, expressed against
// before's coordinates, into the byte offset/length/text triple
// editor.replacetext expects. A full-buffer replacement (nil Range) is
// sent as a replacement spanning the entire previous text.
func editorReplaceTextArgs(before *document.Snapshot, change document.Change) (offset, length int, text string) {
	if change.Range == nil {
		return 0, len(before.Document().Text), change.Text
	}
	lines := before.Lines()
	startOff, _ := lines.UTF8Offset(change.Range.Start.Line, change.Range.Start.UTF16Col)
	endOff, _ := lines.UTF8Offset(change.Range.End.Line, change.Range.End.UTF16Col)
	return int(startOff), int(endOff - startOff), change.Text
}
