package lsp

type CodeActionKind string

const (
	CodeActionEmpty          CodeActionKind = ""
	CodeActionQuickFix       CodeActionKind = "quickfix"
	CodeActionRefactor       CodeActionKind = "refactor"
	CodeActionRefactorExtract CodeActionKind = "refactor.extract"
	CodeActionRefactorInline  CodeActionKind = "refactor.inline"
	CodeActionRefactorRewrite CodeActionKind = "refactor.rewrite"
	CodeActionSource          CodeActionKind = "source"
)

type CodeActionTriggerKind uint32

const (
	CodeActionTriggerInvoked    CodeActionTriggerKind = 1
	CodeActionTriggerAutomatic CodeActionTriggerKind = 2
)

type CodeActionContext struct {
	Diagnostics []Diagnostic     `json:"diagnostics"`
	Only        []CodeActionKind `json:"only,omitempty"`
	TriggerKind CodeActionTriggerKind `json:"triggerKind,omitempty"`
}

type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

// CodeAction is the modern (codeActionLiteralSupport) response shape. A
// nil Kind means "unspecified" and is always returned regardless of the
// client's valueSet filter.
type CodeAction struct {
	Title       string       `json:"title"`
	Kind        *CodeActionKind `json:"kind,omitempty"`
	Edit        *WorkspaceEdit  `json:"edit,omitempty"`
	Command     *Command        `json:"command,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// CodeActionClientCapabilities is the client capability this handler consults to
// decide which action kinds may be returned in the literal CodeAction[]
// shape.
type CodeActionClientCapabilities struct {
	CodeActionLiteralSupport *CodeActionLiteralSupport `json:"codeActionLiteralSupport,omitempty"`
}

type CodeActionLiteralSupport struct {
	CodeActionKind CodeActionKindValueSet `json:"codeActionKind"`
}

type CodeActionKindValueSet struct {
	ValueSet []CodeActionKind `json:"valueSet"`
}

// Supported reports whether kind may be returned to a client advertising
// this capability: an action with no kind is always allowed, and any other
// kind must appear in the valueSet, so an empty valueSet admits only
// kindless actions.
func (c *CodeActionLiteralSupport) Supported(kind *CodeActionKind) bool {
	if kind == nil {
		return true
	}
	for _, v := range c.CodeActionKind.ValueSet {
		if v == *kind {
			return true
		}
	}
	return false
}
