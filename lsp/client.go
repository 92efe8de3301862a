package lsp

import (
	"context"

	"github.com/swiftls/swiftls/rpc"
)

// Client is the set of client-directed calls and notifications the server
// can issue.
type Client interface {
	PublishDiagnostics(ctx context.Context, params *PublishDiagnosticsParams) error
	WorkDoneProgressCreate(ctx context.Context, params *WorkDoneProgressCreateParams) error
	Progress(ctx context.Context, params *ProgressParams) error
	ShowMessage(ctx context.Context, params *ShowMessageParams) error
	LogMessage(ctx context.Context, params *LogMessageParams) error
	ApplyEdit(ctx context.Context, params *ApplyWorkspaceEditParams) (*ApplyWorkspaceEditResult, error)
}

// ApplyWorkspaceEditParams is the payload of a workspace/applyEdit request.
type ApplyWorkspaceEditParams struct {
	Label string        `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

// ApplyWorkspaceEditResult is the client's reply to workspace/applyEdit.
type ApplyWorkspaceEditResult struct {
	Applied       bool   `json:"applied"`
	FailureReason string `json:"failureReason,omitempty"`
}

type clientDispatcher struct {
	conn rpc.Conn
}

// ClientDispatcher adapts an rpc.Conn into a Client.
func ClientDispatcher(conn rpc.Conn) Client {
	return &clientDispatcher{conn: conn}
}

func (c *clientDispatcher) PublishDiagnostics(ctx context.Context, params *PublishDiagnosticsParams) error {
	return c.conn.Notify(ctx, "textDocument/publishDiagnostics", params)
}

func (c *clientDispatcher) WorkDoneProgressCreate(ctx context.Context, params *WorkDoneProgressCreateParams) error {
	_, err := c.conn.Call(ctx, "window/workDoneProgress/create", params, nil)
	return err
}

func (c *clientDispatcher) Progress(ctx context.Context, params *ProgressParams) error {
	return c.conn.Notify(ctx, "$/progress", params)
}

func (c *clientDispatcher) ShowMessage(ctx context.Context, params *ShowMessageParams) error {
	return c.conn.Notify(ctx, "window/showMessage", params)
}

func (c *clientDispatcher) LogMessage(ctx context.Context, params *LogMessageParams) error {
	return c.conn.Notify(ctx, "window/logMessage", params)
}

func (c *clientDispatcher) ApplyEdit(ctx context.Context, params *ApplyWorkspaceEditParams) (*ApplyWorkspaceEditResult, error) {
	var result ApplyWorkspaceEditResult
	if _, err := c.conn.Call(ctx, "workspace/applyEdit", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelParams is the payload of a $/cancelRequest notification.
type CancelParams struct {
	ID rpc.ID `json:"id"`
}
