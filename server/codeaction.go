package server

import (
	"context"
	"sync"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/debug"
	"github.com/swiftls/swiftls/document"
	"github.com/swiftls/swiftls/lsp"
)

// codeActionProvider is one registered source of code actions for a given
// request. Each provider is tagged with the kind of action it produces, so
// the handler can filter providers against the request's context.only
// before ever running them.
type codeActionProvider struct {
	kind lsp.CodeActionKind
	run  func(ctx context.Context, s *server, params *lsp.CodeActionParams) ([]lsp.CodeAction, error)
}

var codeActionProviders = []codeActionProvider{
	{kind: lsp.CodeActionRefactor, run: semanticRefactorProvider},
}

// providerApplies reports whether p should run for this request: it
// applies unless the client restricted the request to a set of kinds that
// doesn't include p's.
func providerApplies(p codeActionProvider, only []lsp.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k == p.kind {
			return true
		}
	}
	return false
}

// CodeAction runs every applicable provider concurrently and replies once
// all have completed, concatenating their outputs in provider-registration
// order (with each provider's own output order preserved).
func (s *server) CodeAction(ctx context.Context, params *lsp.CodeActionParams) (any, error) {
	ctx, done := debug.Start(ctx, "CodeAction", "uri", string(params.TextDocument.URI))
	defer done()

	var applicable []codeActionProvider
	for _, p := range codeActionProviders {
		if providerApplies(p, params.Context.Only) {
			applicable = append(applicable, p)
		}
	}

	results := make([][]lsp.CodeAction, len(applicable))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for i, p := range applicable {
		wg.Add(1)
		go func(i int, p codeActionProvider) {
			defer wg.Done()
			actions, err := p.run(ctx, s, params)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[i] = actions
		}(i, p)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, rpcInternalError("codeAction", firstErr)
	}

	var actions []lsp.CodeAction
	for _, r := range results {
		actions = append(actions, r...)
	}

	return encodeCodeActions(actions, s.codeActionCapabilities()), nil
}

// encodeCodeActions applies the client-capability-dependent response
// shape: the modern CodeAction[] literal shape, filtered by the client's
// advertised kind valueSet, or the legacy Command[] shape for a client
// that never advertised codeActionLiteralSupport.
func encodeCodeActions(actions []lsp.CodeAction, caps *lsp.CodeActionLiteralSupport) any {
	if caps != nil {
		filtered := make([]lsp.CodeAction, 0, len(actions))
		for _, a := range actions {
			if caps.Supported(a.Kind) {
				filtered = append(filtered, a)
			}
		}
		return filtered
	}

	commands := make([]lsp.Command, 0, len(actions))
	for _, a := range actions {
		if a.Command != nil {
			commands = append(commands, *a.Command)
		}
	}
	return commands
}

// semanticRefactorProvider is the sole code-action source this server
// registers: it asks the native analyzer for a "localize string" semantic
// refactor at the request's range and, if one is available, surfaces it as
// a refactor action whose command re-issues the refactor when executed.
func semanticRefactorProvider(ctx context.Context, s *server, params *lsp.CodeActionParams) ([]lsp.CodeAction, error) {
	uri := params.TextDocument.URI
	snap, ok := s.snapshotOrLog(ctx, uri)
	if !ok {
		return nil, nil
	}

	line, column, length, ok := refactorPositionArgs(snap, params.Range)
	if !ok {
		return nil, nil
	}

	doc := snap.Document()
	compilerArgs := s.compilerArgs(uri, doc.Language)
	resp, err := s.bridge.SemanticRefactor(ctx, string(uri), bridge.RefactorLocalizeString, int(line)+1, int(column)+1, length, compilerArgs)
	if err != nil {
		return nil, err
	}
	if edits, ok := resp.Array(bridge.KeyResults); !ok || len(edits) == 0 {
		return nil, nil
	}

	const title = "Localize String"
	cmd, err := (lsp.SemanticRefactorCommand{
		Title:        title,
		ActionString: string(bridge.RefactorLocalizeString),
		Line:         line,
		Column:       column,
		Length:       uint32(length),
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	}).AsCommand()
	if err != nil {
		return nil, err
	}

	kind := lsp.CodeActionRefactor
	return []lsp.CodeAction{{
		Title:   title,
		Kind:    &kind,
		Command: &cmd,
	}}, nil
}

// refactorPositionArgs derives the 0-based (line, column) and byte length
// a semantic-refactor request needs from an LSP range: a zero-length range
// (start == end) is a cursor position, and any other range is reported by
// its start and byte span.
func refactorPositionArgs(snap *document.Snapshot, r lsp.Range) (line, column uint32, length int, ok bool) {
	lines := snap.Lines()
	start := r.Start.ToInternal()
	end := r.End.ToInternal()

	startOff, ok1 := lines.UTF8Offset(start.Line, start.UTF16Col)
	endOff, ok2 := lines.UTF8Offset(end.Line, end.UTF16Col)
	if !ok1 || !ok2 || endOff < startOff {
		return 0, 0, 0, false
	}
	return start.Line, start.UTF16Col, int(endOff - startOff), true
}
