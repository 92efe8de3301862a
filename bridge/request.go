package bridge

import (
	"github.com/tidwall/sjson"
)

// Request is a typed builder over the opaque JSON dictionary the
// Transport expects. It accepts heterogeneous values — integers, strings,
// booleans, UIDs, flat string arrays — the way the native analyzer's own
// request dictionaries do.
type Request struct {
	raw []byte
	err error
}

// NewRequest starts building a request of the given request-name UID.
func NewRequest(requestUID UID) *Request {
	r := &Request{raw: []byte("{}")}
	r.setString(KeyRequest, string(requestUID))
	return r
}

func (r *Request) setString(path, value string) *Request {
	if r.err != nil {
		return r
	}
	raw, err := sjson.SetBytes(r.raw, keyPath(path), value)
	if err != nil {
		r.err = err
		return r
	}
	r.raw = raw
	return r
}

func (r *Request) setInt(path string, value int) *Request {
	if r.err != nil {
		return r
	}
	raw, err := sjson.SetBytes(r.raw, keyPath(path), value)
	if err != nil {
		r.err = err
		return r
	}
	r.raw = raw
	return r
}

func (r *Request) setBool(path string, value bool) *Request {
	if r.err != nil {
		return r
	}
	raw, err := sjson.SetBytes(r.raw, keyPath(path), value)
	if err != nil {
		r.err = err
		return r
	}
	r.raw = raw
	return r
}

func (r *Request) setStrings(path string, values []string) *Request {
	if r.err != nil || len(values) == 0 {
		return r
	}
	raw, err := sjson.SetBytes(r.raw, keyPath(path), values)
	if err != nil {
		r.err = err
		return r
	}
	r.raw = raw
	return r
}

// Name sets the document name key (the path under which the native
// analyzer tracks this open editor session).
func (r *Request) Name(name string) *Request { return r.setString(KeyName, name) }

// SourceText attaches full buffer text to the request.
func (r *Request) SourceText(text string) *Request { return r.setString(KeySourceText, text) }

// SourceFile attaches a source file path to the request.
func (r *Request) SourceFile(path string) *Request { return r.setString(KeySourceFile, path) }

// Offset sets a byte offset key input.
func (r *Request) Offset(offset int) *Request { return r.setInt(KeyOffset, offset) }

// Length sets a byte length key input.
func (r *Request) Length(length int) *Request { return r.setInt(KeyLength, length) }

// CompilerArgs attaches the build-system collaborator's per-file compiler
// arguments, when available.
func (r *Request) CompilerArgs(args []string) *Request { return r.setStrings(KeyCompilerArgs, args) }

// SyntacticOnly requests structural output without full semantic analysis.
func (r *Request) SyntacticOnly(only bool) *Request { return r.setBool(KeySyntacticOnly, only) }

// ActionUID identifies a specific semantic-refactor action.
func (r *Request) ActionUID(uid UID) *Request { return r.setString(KeyActionUID, string(uid)) }

// Line/Column attach a 1-based (line, column) position, as the semantic
// refactor request class expects instead of a byte offset.
func (r *Request) Line(line int) *Request     { return r.setInt(KeyLine, line) }
func (r *Request) Column(column int) *Request { return r.setInt(KeyColumn, column) }

// Bytes returns the built request, or an error if any setter failed.
func (r *Request) Bytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.raw, nil
}
