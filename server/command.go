package server

import (
	"context"
	"fmt"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/position"
)

// commandRegistry maps a server command's identifier to its executor. A
// registry keyed by identifier lets new commands be added without touching
// the dispatch call site.
var commandRegistry = map[string]func(ctx context.Context, s *server, params *lsp.ExecuteCommandParams) (any, error){
	lsp.SemanticRefactorCommandID: executeSemanticRefactorCommand,
}

func (s *server) ExecuteCommand(ctx context.Context, params *lsp.ExecuteCommandParams) (any, error) {
	ctx, done := debug.Start(ctx, "ExecuteCommand", "command", params.Command)
	defer done()

	exec, ok := commandRegistry[params.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	return exec(ctx, s, params)
}

// executeSemanticRefactorCommand decodes a SemanticRefactorCommand back
// out of params, re-issues the semantic-refactor request it describes,
// and sends the resulting edits to the client via workspace/applyEdit.
func executeSemanticRefactorCommand(ctx context.Context, s *server, params *lsp.ExecuteCommandParams) (any, error) {
	cmd := lsp.Command{CommandID: params.Command, Arguments: params.Arguments}
	refactor, ok := lsp.DecodeSemanticRefactorCommand(cmd)
	if !ok {
		return nil, fmt.Errorf("malformed %s command arguments", lsp.SemanticRefactorCommandID)
	}

	uri := refactor.TextDocument.URI
	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return nil, nil
	}

	compilerArgs := s.compilerArgs(uri, snap.Document().Language)
	resp, err := s.bridge.SemanticRefactor(ctx, string(uri), bridge.UID(refactor.ActionString),
		int(refactor.Line)+1, int(refactor.Column)+1, int(refactor.Length), compilerArgs)
	if err != nil {
		return nil, rpcInternalError("semantic.refactor", err)
	}

	edits, _ := resp.Array(bridge.KeyResults)
	textEdits := make([]lsp.TextEdit, 0, len(edits))
	for _, e := range edits {
		edit, ok := refactorEditRange(e)
		if !ok {
			continue
		}
		textEdits = append(textEdits, edit)
	}
	if len(textEdits) == 0 {
		return nil, nil
	}

	result, err := s.client.ApplyEdit(ctx, &lsp.ApplyWorkspaceEditParams{
		Label: refactor.Title,
		Edit:  lsp.WorkspaceEdit{Changes: map[lsp.DocumentURI][]lsp.TextEdit{uri: textEdits}},
	})
	if err != nil {
		return nil, rpcInternalError("workspace/applyEdit", err)
	}
	if result != nil && !result.Applied {
		s.logger.Printf("client declined to apply %s edit: %s", refactor.Title, result.FailureReason)
	}
	return nil, nil
}

// refactorEditRange translates one native semantic-refactor edit entry —
// a 1-based (line, column)..(endLine, endColumn) span plus replacement
// text — into an LSP TextEdit. The native analyzer's line/column here use
// the same 0-based-plus-one convention as the semantic refactor request's
// own line/column; the bridge's other exchanges use byte offsets instead.
func refactorEditRange(e *bridge.Response) (lsp.TextEdit, bool) {
	line, ok := e.Int(bridge.KeyLine)
	if !ok {
		return lsp.TextEdit{}, false
	}
	column, ok := e.Int(bridge.KeyColumn)
	if !ok {
		return lsp.TextEdit{}, false
	}
	endLine, ok := e.Int(bridge.KeyEndLine)
	if !ok {
		return lsp.TextEdit{}, false
	}
	endColumn, ok := e.Int(bridge.KeyEndColumn)
	if !ok {
		return lsp.TextEdit{}, false
	}
	text, _ := e.String(bridge.KeyEditText)

	start := position.Position{Line: uint32(line - 1), UTF16Col: uint32(column - 1)}
	end := position.Position{Line: uint32(endLine - 1), UTF16Col: uint32(endColumn - 1)}

	return lsp.TextEdit{
		Range:   lsp.RangeFromInternal(position.Range{Start: start, End: end}),
		NewText: text,
	}, true
}
