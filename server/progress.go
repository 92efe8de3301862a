package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/xcontext"
)

// Tracker reports the progress of a long-running operation to an LSP
// client, falling back to window/showMessage for clients that never
// advertised workDoneProgress support. The server records that support at
// initialize; no handler starts an operation with the Tracker.
type Tracker struct {
	client                   lsp.Client
	supportsWorkDoneProgress bool
	logger                   *log.Logger

	mu         sync.Mutex
	inProgress map[lsp.ProgressToken]*WorkDone
}

// NewTracker returns a new Tracker that reports progress to client.
func NewTracker(client lsp.Client, logger *log.Logger) *Tracker {
	return &Tracker{
		client:     client,
		logger:     logger,
		inProgress: make(map[lsp.ProgressToken]*WorkDone),
	}
}

// SetSupportsWorkDoneProgress must be called once, from Initialize, before
// the tracker is used.
func (t *Tracker) SetSupportsWorkDoneProgress(b bool) {
	t.supportsWorkDoneProgress = b
}

// WorkDone is a single unit of tracked work.
type WorkDone struct {
	client lsp.Client
	token  lsp.ProgressToken // empty if falling back to ShowMessage
	err    error
	logger *log.Logger

	cancelMu  sync.Mutex
	cancelled bool
	cancel    func()

	cleanup func()
}

func (wd *WorkDone) doCancel() {
	wd.cancelMu.Lock()
	defer wd.cancelMu.Unlock()
	if !wd.cancelled {
		wd.cancelled = true
		if wd.cancel != nil {
			wd.cancel()
		}
	}
}

// Start begins tracking one unit of work and reports it to the client.
func (t *Tracker) Start(ctx context.Context, title, message string, cancel func()) *WorkDone {
	ctx = xcontext.Detach(ctx)
	wd := &WorkDone{client: t.client, cancel: cancel, logger: t.logger}

	if !t.supportsWorkDoneProgress {
		if err := wd.client.ShowMessage(ctx, &lsp.ShowMessageParams{MessageType: lsp.MessageLog, Message: message}); err != nil {
			t.logger.Printf("error showing message: %v", err)
		}
		return wd
	}

	token := lsp.ProgressToken(strconv.FormatInt(rand.Int63(), 10))
	if err := wd.client.WorkDoneProgressCreate(ctx, &lsp.WorkDoneProgressCreateParams{Token: token}); err != nil {
		t.logger.Printf("error creating progress token %q: %v", token, err)
		wd.err = err
		return wd
	}
	wd.token = token

	t.mu.Lock()
	t.inProgress[wd.token] = wd
	t.mu.Unlock()
	wd.cleanup = func() {
		t.mu.Lock()
		delete(t.inProgress, token)
		t.mu.Unlock()
	}

	err := wd.client.Progress(ctx, &lsp.ProgressParams{
		Token: wd.token,
		Value: lsp.WorkDoneProgressBeginValue{
			Kind:        lsp.ProgressBegin,
			Title:       title,
			Cancellable: wd.cancel != nil,
			Message:     message,
		},
	})
	if err != nil {
		t.logger.Printf("error starting progress %q: %v", wd.token, err)
	}
	return wd
}

// End reports completion back to the client.
func (wd *WorkDone) End(ctx context.Context, message string) {
	if wd == nil {
		return
	}
	ctx = xcontext.Detach(ctx) // progress completion must not be dropped by a cancelled handler
	var err error
	switch {
	case wd.err != nil:
		// progress was never successfully started; nothing to end.
	case wd.token == "":
		err = wd.client.ShowMessage(ctx, &lsp.ShowMessageParams{MessageType: lsp.MessageInfo, Message: message})
	default:
		err = wd.client.Progress(ctx, &lsp.ProgressParams{
			Token: wd.token,
			Value: lsp.WorkDoneProgressEndValue{Kind: lsp.ProgressEnd, Message: message},
		})
	}
	if err != nil {
		wd.logger.Printf("error ending progress: %v", err)
	}
	if wd.cleanup != nil {
		wd.cleanup()
	}
}

// Cancel fires the cancel func registered for token, if any.
func (t *Tracker) Cancel(token lsp.ProgressToken) error {
	t.mu.Lock()
	wd, ok := t.inProgress[token]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("token %q not found in progress", token)
	}
	if wd.cancel == nil {
		return fmt.Errorf("work %q is not cancellable", token)
	}
	wd.doCancel()
	return nil
}
