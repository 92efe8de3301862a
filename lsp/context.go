package lsp

import "context"

type contextKey int

const clientKey = contextKey(0)

// WithClient attaches a Client to ctx so that deeply nested code (in
// particular the logger package) can reach the connected client without
// threading it through every call.
func WithClient(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, clientKey, client)
}

// GetClient returns the Client attached to ctx, or nil if none was.
func GetClient(ctx context.Context) Client {
	client, _ := ctx.Value(clientKey).(Client)
	return client
}
