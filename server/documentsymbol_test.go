package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

func TestDocumentSymbolFloatsUpChildrenOfUnmappedParent(t *testing.T) {
	var openedSyntactic bool
	var closedName string
	transport := newRoutedTransport()
	transport.on(bridge.ReqEditorOpen, func(req map[string]any) (string, error) {
		openedSyntactic, _ = req["key.syntactic_only"].(bool)
		return `{"key.substructure":[
			{
				"key.kind":"source.lang.swift.decl.extension",
				"key.offset":0,"key.length":30,
				"key.substructure":[
					{"key.kind":"source.lang.swift.decl.function.method.instance","key.name":"foo()","key.offset":5,"key.length":10,"key.nameoffset":5,"key.namelength":3}
				]
			},
			{
				"key.kind":"source.lang.swift.decl.unknownthing",
				"key.offset":40,"key.length":20,
				"key.substructure":[
					{"key.kind":"source.lang.swift.decl.function.method.instance","key.name":"bar()","key.offset":42,"key.length":10,"key.nameoffset":42,"key.namelength":3}
				]
			}
		]}`, nil
	})
	transport.on(bridge.ReqEditorClose, func(req map[string]any) (string, error) {
		closedName, _ = req["key.name"].(string)
		return `{}`, nil
	})
	srv, _ := newTestServer(transport)
	openDoc(srv, "file:///a.swift", "extension Foo { func foo() {} }\nfunc bar() {}\n")

	syms, err := srv.DocumentSymbol(context.Background(), &lsp.DocumentSymbolParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.swift"},
	})
	require.NoError(t, err)
	require.True(t, openedSyntactic)
	require.Equal(t, "DocumentSymbols:file:///a.swift", closedName)

	// extension maps to SymbolNamespace and keeps foo() nested under it;
	// the unmapped "unknownthing" node disappears but bar() floats up to
	// top level instead of vanishing with it.
	require.Len(t, syms, 2)
	require.Equal(t, lsp.SymbolNamespace, syms[0].Kind)
	require.Len(t, syms[0].Children, 1)
	require.Equal(t, "foo()", syms[0].Children[0].Name)
	require.Equal(t, "bar()", syms[1].Name)
}
