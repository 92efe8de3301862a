package bridge

import (
	"strconv"
	"strings"

	"github.com/swiftls/swiftls/lsp"
)

// Severity translates a native diagnostic-severity UID to its LSP
// counterpart. Anything else (including "note"-like severities) is absent,
// per the normative table: only error and warning are mapped.
func Severity(uid UID) (lsp.DiagnosticSeverity, bool) {
	switch uid {
	case SeverityError:
		return lsp.SeverityError, true
	case SeverityWarning:
		return lsp.SeverityWarning, true
	default:
		return 0, false
	}
}

var commentKinds = map[UID]bool{
	SyntaxComment:         true,
	SyntaxCommentMarker:   true,
	SyntaxCommentURL:      true,
	SyntaxDocComment:      true,
	SyntaxDocCommentField: true,
}

// IsCommentKind reports whether uid is one of the syntax-comment kinds
// that are all treated as the single "comment" folding kind.
func IsCommentKind(uid UID) bool {
	return commentKinds[uid]
}

var completionKinds = map[UID]lsp.CompletionItemKind{
	DeclClass:            lsp.KindClass,
	DeclStruct:           lsp.KindStruct,
	DeclEnum:             lsp.KindEnum,
	DeclEnumElement:      lsp.KindEnumMember,
	DeclProtocol:         lsp.KindInterface,
	DeclAssociatedType:   lsp.KindTypeParameter,
	DeclGenericTypeParam: lsp.KindTypeParameter,
	DeclTypeAlias:        lsp.KindTypeParameter,
	DeclConstructor:      lsp.KindConstructor,
	DeclMethodInstance:   lsp.KindMethod,
	DeclMethodStatic:     lsp.KindMethod,
	DeclMethodClass:      lsp.KindMethod,
	DeclOperatorPrefix:   lsp.KindOperator,
	DeclOperatorPostfix:  lsp.KindOperator,
	DeclOperatorInfix:    lsp.KindOperator,
	DeclFunctionFree:     lsp.KindFunction,
	DeclVarStatic:        lsp.KindProperty,
	DeclVarClass:         lsp.KindProperty,
	DeclVarInstance:      lsp.KindProperty,
	DeclVarLocal:         lsp.KindVariable,
	DeclVarGlobal:        lsp.KindVariable,
	DeclVarParam:         lsp.KindVariable,
	DeclModule:           lsp.KindModule,
	DeclKeyword:          lsp.KindKeyword,
}

// CompletionKind translates a native declaration-kind UID into an LSP
// completionItemKind. An unmapped kind yields "Value", never an absent
// result — completion items always get some kind.
func CompletionKind(uid UID) lsp.CompletionItemKind {
	if k, ok := completionKinds[uid]; ok {
		return k
	}
	return lsp.KindValue
}

var symbolKinds = map[UID]lsp.SymbolKind{
	DeclClass:           lsp.SymbolClass,
	DeclMethodInstance:  lsp.SymbolMethod,
	DeclMethodStatic:    lsp.SymbolMethod,
	DeclMethodClass:     lsp.SymbolMethod,
	DeclVarStatic:       lsp.SymbolProperty,
	DeclVarClass:        lsp.SymbolProperty,
	DeclVarInstance:     lsp.SymbolProperty,
	DeclEnum:            lsp.SymbolEnum,
	DeclEnumElement:     lsp.SymbolEnumMember,
	DeclProtocol:        lsp.SymbolInterface,
	DeclFunctionFree:    lsp.SymbolFunction,
	DeclVarGlobal:       lsp.SymbolVariable,
	DeclVarLocal:        lsp.SymbolVariable,
	DeclStruct:          lsp.SymbolStruct,
	DeclGenericTypeParam: lsp.SymbolTypeParameter,
	DeclExtension:       lsp.SymbolNamespace,
}

// SymbolKind translates a native declaration-kind UID into an LSP
// symbolKind. Unlike CompletionKind, an unmapped kind is genuinely absent:
// callers (document symbol, in particular) must skip the node rather than
// guess a kind.
func SymbolKind(uid UID) (lsp.SymbolKind, bool) {
	k, ok := symbolKinds[uid]
	return k, ok
}

const (
	placeholderOpen  = "<#"
	placeholderClose = "#>"
)

// RewritePlaceholders rewrites native placeholder markers of the form
// "<#value#>" into LSP snippet tab stops "${n:value}", numbering stops left
// to right starting at 1. A malformed placeholder — an open marker with no
// matching close — aborts the rewrite entirely and returns the original
// text with ok=false, per the completion provider's idempotency contract:
// text with no "<#" in it is always returned unchanged.
func RewritePlaceholders(text string) (string, bool) {
	if !strings.Contains(text, placeholderOpen) {
		return text, true
	}

	var out strings.Builder
	n := 1
	rest := text
	for {
		start := strings.Index(rest, placeholderOpen)
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])

		afterOpen := rest[start+len(placeholderOpen):]
		end := strings.Index(afterOpen, placeholderClose)
		if end < 0 {
			return text, false
		}

		value := afterOpen[:end]
		out.WriteString("${")
		out.WriteString(strconv.Itoa(n))
		out.WriteString(":")
		out.WriteString(value)
		out.WriteString("}")
		n++

		rest = afterOpen[end+len(placeholderClose):]
	}
	return out.String(), true
}
