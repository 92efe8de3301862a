package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestExecuteSemanticRefactorCommandAppliesEdit(t *testing.T) {
	var refactorArgs map[string]any
	transport := newRoutedTransport()
	transport.on(bridge.ReqSemanticRefactor, func(req map[string]any) (string, error) {
		refactorArgs = req
		return `{"key.results":[{"key.line":1,"key.column":7,"key.endline":1,"key.endcolumn":11,"key.edit.text":"\"hi\".localized"}]}`, nil
	})
	srv, client := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "print(\"hi\")\n")

	cmd, err := (lsp.SemanticRefactorCommand{
		Title:        "Localize String",
		ActionString: string(bridge.RefactorLocalizeString),
		Line:         0,
		Column:       6,
		Length:       4,
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
	}).AsCommand()
	require.NoError(t, err)

	result, err := srv.ExecuteCommand(context.Background(), &lsp.ExecuteCommandParams{
		Command:   cmd.CommandID,
		Arguments: cmd.Arguments,
	})
	require.NoError(t, err)
	require.Nil(t, result)

	require.EqualValues(t, 1, refactorArgs["key.line"])
	require.EqualValues(t, 7, refactorArgs["key.column"])

	require.Len(t, client.appliedEdits, 1)
	applied := client.appliedEdits[0]
	require.Equal(t, "Localize String", applied.Label)
	edits := applied.Edit.Changes["file:///a.swift"]
	require.Len(t, edits, 1)
	require.Equal(t, "\"hi\".localized", edits[0].NewText)
	require.EqualValues(t, 0, edits[0].Range.Start.Line)
	require.EqualValues(t, 6, edits[0].Range.Start.Character)
}

func TestExecuteCommandUnknownCommandErrors(t *testing.T) {
	transport := newRoutedTransport()
	srv, _ := newTestServer(transport)

	_, err := srv.ExecuteCommand(context.Background(), &lsp.ExecuteCommandParams{Command: "not.a.command"})
	require.Error(t, err)
}

func TestExecuteSemanticRefactorCommandWithNoEditsDoesNotApply(t *testing.T) {
	transport := newRoutedTransport()
	transport.on(bridge.ReqSemanticRefactor, func(req map[string]any) (string, error) {
		return `{"key.results":[]}`, nil
	})
	srv, client := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "print(\"hi\")\n")

	cmd, err := (lsp.SemanticRefactorCommand{
		Title:        "Localize String",
		ActionString: string(bridge.RefactorLocalizeString),
		Line:         0,
		Column:       6,
		Length:       4,
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
	}).AsCommand()
	require.NoError(t, err)

	_, err = srv.ExecuteCommand(context.Background(), &lsp.ExecuteCommandParams{
		Command:   cmd.CommandID,
		Arguments: cmd.Arguments,
	})
	require.NoError(t, err)
	require.Empty(t, client.appliedEdits)
}
