package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/swiftls/swiftls/rpc"
)

// Server is the set of LSP methods this language server implements.
// Handlers reply through the rpc.Replier passed to them by the dispatch
// middleware below, which lets a handler choose to reply synchronously or
// defer the reply past a suspension point.
type Server interface {
	Initialize(ctx context.Context, params *InitializeParams) (*InitializeResult, error)
	Initialized(ctx context.Context) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	DidOpen(ctx context.Context, params *DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *DidChangeTextDocumentParams) error
	DidClose(ctx context.Context, params *DidCloseTextDocumentParams) error
	DidSave(ctx context.Context, params *DidSaveTextDocumentParams) error
	WillSave(ctx context.Context, params *WillSaveTextDocumentParams) error

	Completion(ctx context.Context, params *CompletionParams) (*CompletionList, error)
	Hover(ctx context.Context, params *HoverParams) (*Hover, error)
	DocumentSymbol(ctx context.Context, params *DocumentSymbolParams) ([]DocumentSymbol, error)
	DocumentHighlight(ctx context.Context, params *DocumentHighlightParams) ([]DocumentHighlight, error)
	FoldingRange(ctx context.Context, params *FoldingRangeParams) ([]FoldingRange, error)
	CodeAction(ctx context.Context, params *CodeActionParams) (any, error)
	ExecuteCommand(ctx context.Context, params *ExecuteCommandParams) (any, error)

	WorkDoneProgressCancel(ctx context.Context, params *WorkDoneProgressCancelParams) error
}

// serverDispatch decodes r's params for a known method, invokes the
// matching Server method, and replies. It returns (false, nil) for any
// method it doesn't recognize so the caller can fall through to the next
// handler in the chain.
func serverDispatch(ctx context.Context, server Server, reply rpc.Replier, r rpc.Request) (bool, error) {
	switch r.Method() {
	case "initialize":
		var params InitializeParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.Initialize(ctx, &params)
		return true, reply(ctx, result, err)

	case "initialized":
		return true, reply(ctx, nil, server.Initialized(ctx))

	case "shutdown":
		return true, reply(ctx, nil, server.Shutdown(ctx))

	case "exit":
		return true, reply(ctx, nil, server.Exit(ctx))

	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.DidOpen(ctx, &params))

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.DidChange(ctx, &params))

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.DidClose(ctx, &params))

	case "textDocument/didSave":
		var params DidSaveTextDocumentParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.DidSave(ctx, &params))

	case "textDocument/willSave":
		var params WillSaveTextDocumentParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.WillSave(ctx, &params))

	case "textDocument/completion":
		var params CompletionParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.Completion(ctx, &params)
		return true, reply(ctx, result, err)

	case "textDocument/hover":
		var params HoverParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.Hover(ctx, &params)
		return true, reply(ctx, result, err)

	case "textDocument/documentSymbol":
		var params DocumentSymbolParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.DocumentSymbol(ctx, &params)
		return true, reply(ctx, result, err)

	case "textDocument/documentHighlight":
		var params DocumentHighlightParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.DocumentHighlight(ctx, &params)
		return true, reply(ctx, result, err)

	case "textDocument/foldingRange":
		var params FoldingRangeParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.FoldingRange(ctx, &params)
		return true, reply(ctx, result, err)

	case "textDocument/codeAction":
		var params CodeActionParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.CodeAction(ctx, &params)
		return true, reply(ctx, result, err)

	case "workspace/executeCommand":
		var params ExecuteCommandParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		result, err := server.ExecuteCommand(ctx, &params)
		return true, reply(ctx, result, err)

	case "window/workDoneProgress/cancel":
		var params WorkDoneProgressCancelParams
		if err := json.Unmarshal(r.Params(), &params); err != nil {
			return true, sendParseError(ctx, reply, err)
		}
		return true, reply(ctx, nil, server.WorkDoneProgressCancel(ctx, &params))

	default:
		return false, nil
	}
}

func sendParseError(ctx context.Context, reply rpc.Replier, err error) error {
	return reply(ctx, nil, rpc.NewError(rpc.CodeParseError, "%v", err))
}

// ServerHandler wraps a Server into an rpc.Handler, intercepting
// $/cancelRequest itself (it never reaches the Server interface, since
// cancellation is dispatcher-level plumbing, not a feature) and falling
// through to handler for anything serverDispatch doesn't recognize.
func ServerHandler(server Server, cancelFn func(rpc.ID), handler rpc.Handler) rpc.Handler {
	return func(ctx context.Context, reply rpc.Replier, r rpc.Request) error {
		if r.Method() == "$/cancelRequest" {
			var params CancelParams
			if err := json.Unmarshal(r.Params(), &params); err != nil {
				return fmt.Errorf("decoding $/cancelRequest: %w", err)
			}
			cancelFn(params.ID)
			return nil
		}
		handled, err := serverDispatch(ctx, server, reply, r)
		if handled {
			return err
		}
		return handler(ctx, reply, r)
	}
}
