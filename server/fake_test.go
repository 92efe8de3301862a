package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
)

// routedTransport is a bridge.Transport test double that dispatches on the
// request's key.request value, the same way the real native library would
// route on its own request-name key.
type routedTransport struct {
	mu       sync.Mutex
	handlers map[bridge.UID]func(req map[string]any) (string, error)
	notify   func([]byte)
}

func newRoutedTransport() *routedTransport {
	return &routedTransport{handlers: make(map[bridge.UID]func(map[string]any) (string, error))}
}

func (t *routedTransport) on(reqUID bridge.UID, fn func(req map[string]any) (string, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[reqUID] = fn
}

func (t *routedTransport) SendSync(request []byte) ([]byte, error) {
	var decoded map[string]any
	if err := json.Unmarshal(request, &decoded); err != nil {
		return nil, err
	}
	reqName, _ := decoded[bridge.KeyRequest].(string)
	t.mu.Lock()
	fn, ok := t.handlers[bridge.UID(reqName)]
	t.mu.Unlock()
	if !ok {
		return []byte(`{}`), nil
	}
	raw, err := fn(decoded)
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (t *routedTransport) Send(request []byte, onDone func([]byte, error)) (bridge.Cancel, error) {
	raw, err := t.SendSync(request)
	onDone(raw, err)
	return func() {}, nil
}

func (t *routedTransport) SetNotificationHandler(fn func([]byte)) {
	t.notify = fn
}

func (t *routedTransport) emitNotification(raw string) {
	if t.notify != nil {
		t.notify([]byte(raw))
	}
}

// fakeClient is an lsp.Client test double that records every call made
// against it.
type fakeClient struct {
	mu                   sync.Mutex
	publishedDiagnostics []*lsp.PublishDiagnosticsParams
	appliedEdits         []*lsp.ApplyWorkspaceEditParams
	applyEditResult      *lsp.ApplyWorkspaceEditResult
	logMessages          []*lsp.LogMessageParams
}

func (c *fakeClient) PublishDiagnostics(ctx context.Context, params *lsp.PublishDiagnosticsParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishedDiagnostics = append(c.publishedDiagnostics, params)
	return nil
}

func (c *fakeClient) WorkDoneProgressCreate(ctx context.Context, params *lsp.WorkDoneProgressCreateParams) error {
	return nil
}

func (c *fakeClient) Progress(ctx context.Context, params *lsp.ProgressParams) error { return nil }

func (c *fakeClient) ShowMessage(ctx context.Context, params *lsp.ShowMessageParams) error { return nil }

func (c *fakeClient) LogMessage(ctx context.Context, params *lsp.LogMessageParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logMessages = append(c.logMessages, params)
	return nil
}

func (c *fakeClient) ApplyEdit(ctx context.Context, params *lsp.ApplyWorkspaceEditParams) (*lsp.ApplyWorkspaceEditResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appliedEdits = append(c.appliedEdits, params)
	if c.applyEditResult != nil {
		return c.applyEditResult, nil
	}
	return &lsp.ApplyWorkspaceEditResult{Applied: true}, nil
}

func (c *fakeClient) lastPublish() *lsp.PublishDiagnosticsParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.publishedDiagnostics) == 0 {
		return nil
	}
	return c.publishedDiagnostics[len(c.publishedDiagnostics)-1]
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestServer builds a server wired to transport and a fresh fakeClient,
// bypassing cmd/swiftls's process wiring entirely.
func newTestServer(transport bridge.Transport) (*server, *fakeClient) {
	client := &fakeClient{}
	srv, _ := New(testLogger(), client, transport, NoBuildSystem{})
	return srv.(*server), client
}

func openDoc(srv *server, uri, text string) {
	_, _ = srv.docs.Open(uri, "swift", 1, text)
}
