package server

import (
	"context"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

// TestCodeActionReturnsLiteralShapeFilteredByValueSet pins the exact
// CodeAction literal the client-capability-aware encoding produces,
// including the Command payload a client re-issues the refactor through.
func TestCodeActionReturnsLiteralShapeFilteredByValueSet(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqSemanticRefactor, func(req map[string]any) (string, error) {
		return `{"key.results":[{"key.line":1,"key.column":5,"key.endline":1,"key.endcolumn":10,"key.edit.text":"\"hi\".localized"}]}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "print(\"hi\")\n")

	srv.capsMu.Lock()
	srv.codeActionCaps = &lsp.CodeActionLiteralSupport{
		CodeActionKind: lsp.CodeActionKindValueSet{ValueSet: []lsp.CodeActionKind{lsp.CodeActionRefactor}},
	}
	srv.capsMu.Unlock()

	result, err := srv.CodeAction(context.Background(), &lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
		Range: lsp.Range{
			Start: lsp.Position{Line: 0, Character: 6},
			End:   lsp.Position{Line: 0, Character: 10},
		},
	})
	require.NoError(t, err)

	actions, ok := result.([]lsp.CodeAction)
	require.True(t, ok)
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].Command)

	refactor, decoded := lsp.DecodeSemanticRefactorCommand(*actions[0].Command)
	require.True(t, decoded)

	autogold.Expect(lsp.SemanticRefactorCommand{
		Title:        "Localize String",
		ActionString: string(bridge.RefactorLocalizeString),
		Line:         0,
		Column:       6,
		Length:       4,
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
	}).Equal(t, refactor)

	kind := lsp.CodeActionRefactor
	autogold.Expect(codeActionShape{
		Title:     "Localize String",
		Kind:      &kind,
		CommandID: lsp.SemanticRefactorCommandID,
	}).Equal(t, codeActionShape{
		Title:     actions[0].Title,
		Kind:      actions[0].Kind,
		CommandID: actions[0].Command.CommandID,
	})
}

// codeActionShape is the part of a lsp.CodeAction that autogold can pin
// directly: Command.Arguments carries an opaque structpb payload that
// DecodeSemanticRefactorCommand, not a literal comparison, is meant to read.
type codeActionShape struct {
	Title     string
	Kind      *lsp.CodeActionKind
	CommandID string
}

func TestCodeActionFallsBackToCommandListWithoutLiteralSupport(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqSemanticRefactor, func(req map[string]any) (string, error) {
		return `{"key.results":[{"key.line":1,"key.column":5,"key.endline":1,"key.endcolumn":10,"key.edit.text":"x"}]}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "print(\"hi\")\n")

	result, err := srv.CodeAction(context.Background(), &lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
		Range: lsp.Range{
			Start: lsp.Position{Line: 0, Character: 6},
			End:   lsp.Position{Line: 0, Character: 10},
		},
	})
	require.NoError(t, err)

	commands, ok := result.([]lsp.Command)
	require.True(t, ok)
	require.Len(t, commands, 1)
	require.Equal(t, lsp.SemanticRefactorCommandID, commands[0].CommandID)
}

func TestCodeActionSkipsProvidersNotInOnlyFilter(t *testing.T) {
	transport := newRoutedTransport()
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "print(\"hi\")\n")

	result, err := srv.CodeAction(context.Background(), &lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
		Range:        lsp.Range{Start: lsp.Position{Line: 0, Character: 6}, End: lsp.Position{Line: 0, Character: 10}},
		Context:      lsp.CodeActionContext{Only: []lsp.CodeActionKind{lsp.CodeActionQuickFix}},
	})
	require.NoError(t, err)
	commands, ok := result.([]lsp.Command)
	require.True(t, ok)
	require.Empty(t, commands)
}
