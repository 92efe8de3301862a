package lsp

type InitializeParams struct {
	ProcessID         *int32                   `json:"processId,omitempty"`
	RootURI           *DocumentURI             `json:"rootUri,omitempty"`
	ClientInfo        *ClientInfo              `json:"clientInfo,omitempty"`
	Capabilities      ClientCapabilities        `json:"capabilities"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type ClientCapabilities struct {
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitempty"`
	Window       *ClientWindowCapabilities        `json:"window,omitempty"`
}

type TextDocumentClientCapabilities struct {
	CodeAction   *CodeActionClientCapabilities   `json:"codeAction,omitempty"`
	FoldingRange *FoldingRangeClientCapabilities `json:"foldingRange,omitempty"`
}

type ClientWindowCapabilities struct {
	WorkDoneProgress bool `json:"workDoneProgress,omitempty"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type TextDocumentSyncKind uint32

const (
	SyncNone        TextDocumentSyncKind = 0
	SyncFull        TextDocumentSyncKind = 1
	SyncIncremental TextDocumentSyncKind = 2
)

type SaveOptions struct {
	IncludeText bool `json:"includeText,omitempty"`
}

type TextDocumentSyncOptions struct {
	OpenClose         bool                 `json:"openClose"`
	Change            TextDocumentSyncKind `json:"change"`
	WillSave          bool                 `json:"willSave"`
	WillSaveWaitUntil bool                 `json:"willSaveWaitUntil"`
	Save              SaveOptions          `json:"save"`
}

type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type CodeActionOptions struct {
	CodeActionKinds []CodeActionKind `json:"codeActionKinds"`
}

type ServerCapabilities struct {
	TextDocumentSync          TextDocumentSyncOptions `json:"textDocumentSync"`
	CompletionProvider        CompletionOptions       `json:"completionProvider"`
	HoverProvider             bool                    `json:"hoverProvider"`
	DocumentHighlightProvider bool                    `json:"documentHighlightProvider"`
	FoldingRangeProvider      bool                    `json:"foldingRangeProvider"`
	DocumentSymbolProvider    bool                    `json:"documentSymbolProvider"`
	CodeActionProvider        CodeActionOptions       `json:"codeActionProvider"`
	ExecuteCommandProvider    *ExecuteCommandOptions  `json:"executeCommandProvider,omitempty"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}
