package lsp

type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

type CompletionContext struct {
	TriggerKind      uint32  `json:"triggerKind"`
	TriggerCharacter *string `json:"triggerCharacter,omitempty"`
}

type InsertTextFormat uint32

const (
	InsertTextFormatPlainText InsertTextFormat = 1
	InsertTextFormatSnippet   InsertTextFormat = 2
)

// CompletionItemKind is the LSP completionItemKind enumeration; only the
// values this server's translation table can produce are named, but the
// type carries the full numeric range.
type CompletionItemKind uint32

const (
	KindClass         CompletionItemKind = 7
	KindStruct        CompletionItemKind = 22
	KindEnum          CompletionItemKind = 13
	KindEnumMember    CompletionItemKind = 20
	KindInterface     CompletionItemKind = 8
	KindTypeParameter CompletionItemKind = 25
	KindConstructor   CompletionItemKind = 4
	KindMethod        CompletionItemKind = 2
	KindOperator      CompletionItemKind = 24
	KindFunction      CompletionItemKind = 3
	KindProperty      CompletionItemKind = 10
	KindVariable      CompletionItemKind = 6
	KindModule        CompletionItemKind = 9
	KindKeyword       CompletionItemKind = 14
	KindValue         CompletionItemKind = 12
)

type CompletionItem struct {
	Label            string              `json:"label"`
	Kind             CompletionItemKind  `json:"kind,omitempty"`
	Detail           string              `json:"detail,omitempty"`
	FilterText       string              `json:"filterText,omitempty"`
	InsertText       string              `json:"insertText,omitempty"`
	InsertTextFormat InsertTextFormat    `json:"insertTextFormat,omitempty"`
}

type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}
