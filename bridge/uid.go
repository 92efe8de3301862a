package bridge

// UID is an opaque identifier shared with the native analyzer. Equality is
// the only operation defined on it; the bridge interns and caches the
// well-known ones below rather than re-deriving them per request.
type UID string

// Request-name UIDs, one per known request class.
const (
	ReqEditorOpen        UID = "source.request.editor.open"
	ReqEditorClose       UID = "source.request.editor.close"
	ReqEditorReplaceText UID = "source.request.editor.replacetext"
	ReqCodeComplete      UID = "source.request.codecomplete"
	ReqCursorInfo        UID = "source.request.cursorinfo"
	ReqRelatedIdents     UID = "source.request.relatedidents"
	ReqSemanticRefactor  UID = "source.request.semantic.refactor"
)

// Response dictionary key UIDs.
const (
	KeyRequest       = "key.request"
	KeyName          = "key.name"
	KeyOffset        = "key.offset"
	KeyLength        = "key.length"
	KeyNameOffset    = "key.nameoffset"
	KeyNameLength    = "key.namelength"
	KeyKind          = "key.kind"
	KeySeverity      = "key.severity"
	KeyDescription   = "key.description"
	KeyDiagnostics   = "key.diagnostics"
	KeyResults       = "key.results"
	KeySubstructure  = "key.substructure"
	KeySyntaxMap     = "key.syntaxmap"
	KeySourceText    = "key.sourcetext"
	KeyBodyOffset    = "key.bodyoffset"
	KeyBodyLength    = "key.bodylength"
	KeyTypeName      = "key.typename"
	KeyFilterText    = "key.filter_text"
	KeyCompilerArgs  = "key.compilerargs"
	KeySourceFile    = "key.sourcefile"
	KeyUSR           = "key.usr"
	KeyAnnotatedDecl = "key.annotated_decl"
	KeyDocXML        = "key.doc.full_as_xml"
	KeySyntacticOnly = "key.syntactic_only"
	KeyActionName    = "key.actionname"
	KeyActionUID     = "key.actionuid"
	KeyLine          = "key.line"
	KeyColumn        = "key.column"
	KeyEndLine       = "key.endline"
	KeyEndColumn     = "key.endcolumn"
	KeyEditText      = "key.edit.text"
	KeyNotification  = "key.notification"
)

// Known value UIDs for diagnostic severities.
const (
	SeverityError   UID = "source.diagnostic.severity.error"
	SeverityWarning UID = "source.diagnostic.severity.warning"
)

// NotificationDocumentUpdate is the value of KeyNotification on an
// unsolicited notification telling the bridge that a tracked document's
// diagnostics may have changed and should be refreshed.
const NotificationDocumentUpdate UID = "source.notification.editor.documentupdate"

// Known semantic-refactor action UIDs. RefactorLocalizeString is the one
// action class the code-action provider knows how to surface; others are
// ignored if the native analyzer ever reports them.
const RefactorLocalizeString UID = "source.refactoring.kind.localize.string"

// Known syntax-map kinds treated uniformly as "comment" for folding
// purposes.
const (
	SyntaxComment         UID = "source.lang.swift.syntaxtype.comment"
	SyntaxCommentMarker   UID = "source.lang.swift.syntaxtype.comment.mark"
	SyntaxCommentURL      UID = "source.lang.swift.syntaxtype.comment.url"
	SyntaxDocComment      UID = "source.lang.swift.syntaxtype.doccomment"
	SyntaxDocCommentField UID = "source.lang.swift.syntaxtype.doccomment.field"
)

// Known declaration-kind UIDs, used by both the completion- and
// symbol-kind translation tables.
const (
	DeclClass             UID = "source.lang.swift.decl.class"
	DeclStruct            UID = "source.lang.swift.decl.struct"
	DeclEnum              UID = "source.lang.swift.decl.enum"
	DeclEnumElement       UID = "source.lang.swift.decl.enumelement"
	DeclProtocol          UID = "source.lang.swift.decl.protocol"
	DeclAssociatedType    UID = "source.lang.swift.decl.associatedtype"
	DeclGenericTypeParam  UID = "source.lang.swift.decl.generic_type_param"
	DeclTypeAlias         UID = "source.lang.swift.decl.typealias"
	DeclConstructor       UID = "source.lang.swift.decl.function.constructor"
	DeclMethodInstance    UID = "source.lang.swift.decl.function.method.instance"
	DeclMethodStatic      UID = "source.lang.swift.decl.function.method.static"
	DeclMethodClass       UID = "source.lang.swift.decl.function.method.class"
	DeclOperatorPrefix    UID = "source.lang.swift.decl.function.operator.prefix"
	DeclOperatorPostfix   UID = "source.lang.swift.decl.function.operator.postfix"
	DeclOperatorInfix     UID = "source.lang.swift.decl.function.operator.infix"
	DeclFunctionFree      UID = "source.lang.swift.decl.function.free"
	DeclVarStatic         UID = "source.lang.swift.decl.var.static"
	DeclVarClass          UID = "source.lang.swift.decl.var.class"
	DeclVarInstance       UID = "source.lang.swift.decl.var.instance"
	DeclVarLocal          UID = "source.lang.swift.decl.var.local"
	DeclVarGlobal         UID = "source.lang.swift.decl.var.global"
	DeclVarParam          UID = "source.lang.swift.decl.var.parameter"
	DeclModule            UID = "source.lang.swift.decl.module"
	DeclKeyword           UID = "source.lang.swift.keyword"
	DeclExtension         UID = "source.lang.swift.decl.extension"
)
