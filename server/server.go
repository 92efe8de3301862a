package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/document"
	"github.com/swiftls/swiftls/logger"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/rpc"
)

type serverState int

const (
	serverCreated      = serverState(iota)
	serverInitializing // set once the server has received "initialize"
	serverInitialized  // set once the server has received "initialized"
	serverShutDown
)

func (s serverState) String() string {
	switch s {
	case serverCreated:
		return "created"
	case serverInitializing:
		return "initializing"
	case serverInitialized:
		return "initialized"
	case serverShutDown:
		return "shutDown"
	}
	return fmt.Sprintf("(unknown state: %d)", int(s))
}

// server is the concrete lsp.Server implementation: it mirrors client
// buffers through a document.Manager, forwards semantic queries to the
// native analyzer through a bridge.Bridge, and streams diagnostics and
// progress back to the client.
type server struct {
	logger *log.Logger
	client lsp.Client

	stateMu sync.Mutex
	state   serverState
	rootURI lsp.DocumentURI

	docs   *document.Manager
	bridge *bridge.Bridge
	build  BuildSystem

	registry *requestRegistry
	progress *Tracker

	diagnosticsMu     sync.Mutex
	publishedNonEmpty map[lsp.DocumentURI]bool // tracks URIs a non-empty publish has gone out for, so shutdown/close can clear them

	capsMu            sync.Mutex
	codeActionCaps    *lsp.CodeActionLiteralSupport
	foldingRangeLimit *uint32
	foldingLineOnly   bool
}

// New creates an LSP server speaking to client and forwarding semantic work
// to the native analyzer via transport. build supplies per-file compiler
// arguments; pass NoBuildSystem{} if none is available. The returned cancel
// func is the $/cancelRequest hook for lsp.ServerHandler: it fires the
// cancellation token the server's request registry holds for a request ID.
// No dispatch path registers requests with that registry, so the hook finds
// no entry and a running handler is not interrupted.
func New(logger_ *log.Logger, client lsp.Client, transport bridge.Transport, build BuildSystem) (lsp.Server, func(rpc.ID)) {
	s := &server{
		logger:            logger_,
		client:            client,
		docs:              document.NewManager(),
		bridge:            bridge.New(transport),
		build:             build,
		registry:          newRequestRegistry(),
		publishedNonEmpty: make(map[lsp.DocumentURI]bool),
	}
	s.progress = NewTracker(client, logger_)
	s.bridge.Subscribe(s.handleNotification)
	return s, s.registry.Cancel
}

// rpcInternalError wraps a native-bridge failure as the LSP InternalError
// code, carrying the bridge's own message, per the error taxonomy's
// native-bridge-failure policy.
func rpcInternalError(requestName string, err error) error {
	return rpc.NewError(rpc.CodeInternalError, "%s: %v", requestName, err)
}

func (s *server) compilerArgs(uri lsp.DocumentURI, language string) []string {
	args, ok := s.build.Settings(uri, language)
	if !ok {
		return nil
	}
	return args
}

func (s *server) codeActionCapabilities() *lsp.CodeActionLiteralSupport {
	s.capsMu.Lock()
	defer s.capsMu.Unlock()
	return s.codeActionCaps
}

func (s *server) foldingRangeCapabilities() (limit *uint32, lineOnly bool) {
	s.capsMu.Lock()
	defer s.capsMu.Unlock()
	return s.foldingRangeLimit, s.foldingLineOnly
}

func (s *server) Initialize(ctx context.Context, params *lsp.InitializeParams) (*lsp.InitializeResult, error) {
	s.stateMu.Lock()
	if s.state >= serverInitializing {
		s.stateMu.Unlock()
		return nil, rpc.NewError(rpc.CodeInvalidRequest, "initialize called while server in %v state", s.state)
	}
	s.state = serverInitializing
	if params.Capabilities.Window != nil {
		s.progress.SetSupportsWorkDoneProgress(params.Capabilities.Window.WorkDoneProgress)
	}
	if params.RootURI != nil {
		s.rootURI = *params.RootURI
	}
	s.stateMu.Unlock()

	s.capsMu.Lock()
	if td := params.Capabilities.TextDocument; td != nil {
		if td.CodeAction != nil {
			s.codeActionCaps = td.CodeAction.CodeActionLiteralSupport
		}
		if td.FoldingRange != nil {
			s.foldingRangeLimit = td.FoldingRange.RangeLimit
			s.foldingLineOnly = td.FoldingRange.LineFoldingOnly
		}
	}
	s.capsMu.Unlock()

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: lsp.TextDocumentSyncOptions{
				OpenClose:         true,
				Change:            lsp.SyncIncremental,
				WillSave:          true,
				WillSaveWaitUntil: false,
				Save:              lsp.SaveOptions{IncludeText: false},
			},
			CompletionProvider: lsp.CompletionOptions{
				ResolveProvider:   false,
				TriggerCharacters: []string{"."},
			},
			HoverProvider:             true,
			DocumentHighlightProvider: true,
			FoldingRangeProvider:      true,
			DocumentSymbolProvider:    true,
			CodeActionProvider:        lsp.CodeActionOptions{CodeActionKinds: nil},
			ExecuteCommandProvider: &lsp.ExecuteCommandOptions{
				Commands: []string{lsp.SemanticRefactorCommandID},
			},
		},
		ServerInfo: lsp.ServerInfo{Name: "swiftls", Version: "0.0.1"},
	}, nil
}

func (s *server) Initialized(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state >= serverInitialized {
		return rpc.NewError(rpc.CodeInvalidRequest, "initialized called while server in %v state", s.state)
	}
	s.state = serverInitialized
	return nil
}

// Shutdown releases every open document's native-analyzer session. Per the
// scoped-acquisition design, editor.close on every open URI is guaranteed
// here even if didClose was never observed for it (an abrupt client exit).
func (s *server) Shutdown(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state == serverShutDown {
		return nil
	}
	s.state = serverShutDown
	for _, uri := range s.docs.OpenURIs() {
		if err := s.bridge.EditorClose(ctx, uri); err != nil {
			s.logger.Printf("error closing %q during shutdown: %v", uri, err)
		}
		s.docs.Close(uri)
		s.clearDiagnostics(ctx, lsp.DocumentURI(uri))
	}
	return nil
}

func (s *server) Exit(ctx context.Context) error {
	s.stateMu.Lock()
	state := s.state
	s.stateMu.Unlock()
	if state != serverShutDown {
		os.Exit(1)
	}
	return nil
}

func (s *server) WorkDoneProgressCancel(ctx context.Context, params *lsp.WorkDoneProgressCancelParams) error {
	if err := s.progress.Cancel(params.Token); err != nil {
		s.logger.Printf("cancel progress %q: %v", params.Token, err)
	}
	return nil
}

// snapshotOrLog obtains the latest snapshot for uri, logging a warning and
// returning ok=false if the document is not open (a request validation
// error, per the error taxonomy: reply with an empty/null result, never an
// error to the client).
func (s *server) snapshotOrLog(ctx context.Context, uri lsp.DocumentURI) (*document.Snapshot, bool) {
	snap, ok := s.docs.Latest(string(uri))
	if !ok {
		logger.Log(ctx, fmt.Sprintf("no open document for %q", uri), slog.LevelWarn)
	}
	return snap, ok
}
