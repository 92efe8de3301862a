package bridge

import (
	"context"
	"fmt"
	"sync"
)

// Bridge is the typed façade over a Transport: it builds requests for the
// known request classes, issues them, and wraps raw responses for
// key-lookup traversal. It owns the Transport's single notification slot
// and multiplexes it to however many subscribers the rest of the server
// registers.
type Bridge struct {
	transport Transport

	subsMu sync.Mutex
	subs   []func(*Response)
}

// New wraps transport in a Bridge and installs the multiplexing
// notification handler. transport's notification slot must not be set
// again by any other caller afterward.
func New(transport Transport) *Bridge {
	b := &Bridge{transport: transport}
	transport.SetNotificationHandler(func(raw []byte) {
		b.dispatchNotification(NewResponse(raw))
	})
	return b
}

// Subscribe registers fn to be called on every notification the native
// analyzer emits. There is no Unsubscribe: subscriptions live for the
// bridge's lifetime, matching the "one notification handler per process
// lifetime" ownership model.
func (b *Bridge) Subscribe(fn func(*Response)) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Bridge) dispatchNotification(resp *Response) {
	b.subsMu.Lock()
	subs := append([]func(*Response){}, b.subs...)
	b.subsMu.Unlock()
	for _, fn := range subs {
		fn(resp)
	}
}

// sendSync issues req and blocks for the response, honoring ctx
// cancellation by racing it against the transport's own blocking call.
func (b *Bridge) sendSync(ctx context.Context, req *Request) (*Response, error) {
	raw, err := req.Bytes()
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	type result struct {
		raw []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := b.transport.SendSync(raw)
		done <- result{raw, err}
	}()
	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return NewResponse(r.raw), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SendAsync issues req without blocking, invoking onDone on the
// transport's own goroutine. The returned Cancel is handed straight
// through from the Transport and is best-effort, matching this core's
// cooperative cancellation model: an already-issued request is not
// guaranteed to be aborted even once Cancel is called.
func (b *Bridge) SendAsync(req *Request, onDone func(*Response, error)) (Cancel, error) {
	raw, err := req.Bytes()
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return b.transport.Send(raw, func(raw []byte, err error) {
		if err != nil {
			onDone(nil, err)
			return
		}
		onDone(NewResponse(raw), nil)
	})
}

// EditorOpen opens an editor session for name with the given text,
// optional compiler arguments, and syntactic-only flag.
func (b *Bridge) EditorOpen(ctx context.Context, name, text string, compilerArgs []string, syntacticOnly bool) (*Response, error) {
	req := NewRequest(ReqEditorOpen).Name(name).SourceText(text).CompilerArgs(compilerArgs).SyntacticOnly(syntacticOnly)
	return b.sendSync(ctx, req)
}

// EditorClose releases the native-analyzer session for name.
func (b *Bridge) EditorClose(ctx context.Context, name string) error {
	req := NewRequest(ReqEditorClose).Name(name)
	_, err := b.sendSync(ctx, req)
	return err
}

// EditorReplaceText applies a ranged textual mutation, keeping the native
// analyzer's parallel per-path state in sync with the document manager. A
// zero-length replacement at offset 0 with empty text is the canonical
// "refresh diagnostics" request.
func (b *Bridge) EditorReplaceText(ctx context.Context, name string, offset, length int, text string) (*Response, error) {
	req := NewRequest(ReqEditorReplaceText).Name(name).Offset(offset).Length(length).SourceText(text)
	return b.sendSync(ctx, req)
}

// CodeComplete requests completions at offset in text.
func (b *Bridge) CodeComplete(ctx context.Context, file string, offset int, text string, compilerArgs []string) (*Response, error) {
	req := NewRequest(ReqCodeComplete).SourceFile(file).Offset(offset).SourceText(text).CompilerArgs(compilerArgs)
	return b.sendSync(ctx, req)
}

// CursorInfo requests symbol information for the cursor at offset.
func (b *Bridge) CursorInfo(ctx context.Context, file string, offset int, compilerArgs []string) (*Response, error) {
	req := NewRequest(ReqCursorInfo).SourceFile(file).Offset(offset).CompilerArgs(compilerArgs)
	return b.sendSync(ctx, req)
}

// RelatedIdents requests offsets and lengths of identifiers related to the
// one at offset (used for document highlight).
func (b *Bridge) RelatedIdents(ctx context.Context, file string, offset int, compilerArgs []string) (*Response, error) {
	req := NewRequest(ReqRelatedIdents).SourceFile(file).Offset(offset).CompilerArgs(compilerArgs)
	return b.sendSync(ctx, req)
}

// SemanticRefactor requests the edits for the named refactoring action at
// a 1-based line/column over the given length.
func (b *Bridge) SemanticRefactor(ctx context.Context, file string, actionUID UID, line, column, length int, compilerArgs []string) (*Response, error) {
	req := NewRequest(ReqSemanticRefactor).SourceFile(file).ActionUID(actionUID).Line(line).Column(column).Length(length).CompilerArgs(compilerArgs)
	return b.sendSync(ctx, req)
}
