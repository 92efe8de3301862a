// Package bridge wraps the loaded native Swift semantic-analysis library
// in a typed façade: UID interning, request building, and response
// traversal that treats a missing key or a type mismatch as an absent
// optional rather than a fault.
package bridge

// Transport is the C-style vocabulary the native analyzer's loaded library
// exposes: opaque request/response byte buffers (JSON documents standing
// in for the library's own binary wire format, per this core's treatment
// of that format as an opaque oracle), a blocking call, a cancellable
// async call, and a single notification sink.
//
// A real deployment backs this with cgo bindings into the native library.
// Nothing above this interface needs to know that.
type Transport interface {
	// SendSync issues request and blocks for its response.
	SendSync(request []byte) ([]byte, error)

	// Send issues request asynchronously; onDone is invoked exactly once,
	// from a goroutine the Transport owns, with either a response or an
	// error. The returned Cancel is best-effort: an already-in-flight
	// request is not guaranteed to be aborted.
	Send(request []byte, onDone func([]byte, error)) (Cancel, error)

	// SetNotificationHandler installs the single process-lifetime
	// notification sink. Calling it again replaces the previous handler;
	// the bridge is responsible for multiplexing to multiple logical
	// subscribers itself.
	SetNotificationHandler(func([]byte))
}

// Cancel requests best-effort cancellation of an in-flight async request.
type Cancel func()
