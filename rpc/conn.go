package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// Conn is the common interface to jsonrpc servers. Conn is bidirectional;
// it does not have a designated server or client end. It manages the
// jsonrpc2 protocol, connecting responses back to their calls.
type Conn interface {
	// Call invokes the target method and waits for a response. The params
	// are marshaled to JSON before sending over the wire; the response is
	// unmarshaled from JSON into result.
	Call(ctx context.Context, method string, params, result any) (ID, error)

	// Notify invokes the target method but does not wait for a response.
	Notify(ctx context.Context, method string, params any) error

	// Run reads messages from the connection's stream until it closes,
	// dispatching requests to handler and routing responses back to their
	// waiting Call.
	Run(ctx context.Context, handler Handler)

	// Done is closed once Run returns.
	Done() <-chan struct{}

	// Logger returns the logger this connection was constructed with.
	Logger() *log.Logger
}

type conn struct {
	seq       int64 // must only be accessed using atomic operations
	stream    Stream
	logger    *log.Logger
	pendingMu sync.Mutex // protects the pending map
	pending   map[ID]chan *Response
	done      chan struct{}
}

// NewConn creates a new connection object around the supplied stream,
// logging internal protocol failures to logger.
func NewConn(s Stream, logger *log.Logger) Conn {
	return &conn{
		stream:  s,
		logger:  logger,
		pending: make(map[ID]chan *Response),
		done:    make(chan struct{}),
	}
}

func (c *conn) Logger() *log.Logger { return c.logger }

func (c *conn) Notify(ctx context.Context, method string, params any) (err error) {
	notify, err := NewNotification(method, params)
	if err != nil {
		return fmt.Errorf("marshaling notify parameters: %v", err)
	}
	_, err = c.write(ctx, notify)
	return err
}

func (c *conn) Call(ctx context.Context, method string, params, result any) (_ ID, err error) {
	id := ID{number: atomic.AddInt64(&c.seq, 1)}
	call, err := NewCall(id, method, params)
	if err != nil {
		return id, fmt.Errorf("marshaling call parameters: %v", err)
	}
	// We have to add ourselves to the pending map before we send, otherwise
	// we are racing the response. rchan is buffered so that a wire response
	// arriving between this call being cancelled and id being deleted from
	// c.pending does not block the reader loop.
	rchan := make(chan *Response, 1)
	c.pendingMu.Lock()
	c.pending[id] = rchan
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()
	if _, err = c.write(ctx, call); err != nil {
		// sending failed, we will never get a response, so don't leave it pending
		return id, err
	}
	select {
	case response := <-rchan:
		if response.err != nil {
			return id, response.err
		}
		if result == nil || len(response.result) == 0 {
			return id, nil
		}
		if err := json.Unmarshal(response.result, result); err != nil {
			return id, fmt.Errorf("unmarshaling result: %v", err)
		}
		return id, nil
	case <-ctx.Done():
		return id, ctx.Err()
	}
}

func (c *conn) replier(req Request) Replier {
	return func(ctx context.Context, result any, err error) error {
		call, ok := req.(*Call)
		if !ok {
			// the request was a notify, no reply is possible
			return nil
		}
		response, err := NewResponse(call.id, result, err)
		if err != nil {
			return err
		}
		_, err = c.write(ctx, response)
		return err
	}
}

func (c *conn) write(ctx context.Context, msg Message) (int64, error) {
	return c.stream.Write(ctx, msg)
}

func (c *conn) Run(ctx context.Context, handler Handler) {
	defer close(c.done)
	for {
		msg, _, err := c.stream.Read(ctx)
		if err != nil {
			// The stream is no longer usable; log and stop serving, but
			// don't take the whole process down over a closed pipe.
			if c.logger != nil {
				c.logger.Printf("stream closed: %v", err)
			}
			return
		}
		switch msg := msg.(type) {
		case Request:
			if err := handler(ctx, c.replier(msg), msg); err != nil && c.logger != nil {
				c.logger.Printf("handler error for %s: %v", msg.Method(), err)
			}
		case *Response:
			c.pendingMu.Lock()
			rchan, ok := c.pending[msg.id]
			c.pendingMu.Unlock()
			if ok {
				rchan <- msg
			}
		}
	}
}

func (c *conn) Done() <-chan struct{} {
	return c.done
}
