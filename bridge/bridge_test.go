package bridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	lastRequest []byte
	respond     func(req []byte) ([]byte, error)
	notify      func([]byte)
}

func (f *fakeTransport) SendSync(request []byte) ([]byte, error) {
	f.lastRequest = request
	return f.respond(request)
}

func (f *fakeTransport) Send(request []byte, onDone func([]byte, error)) (Cancel, error) {
	raw, err := f.respond(request)
	onDone(raw, err)
	return func() {}, nil
}

func (f *fakeTransport) SetNotificationHandler(fn func([]byte)) {
	f.notify = fn
}

func TestEditorOpenBuildsExpectedRequest(t *testing.T) {
	ft := &fakeTransport{respond: func(req []byte) ([]byte, error) {
		return []byte(`{"key.diagnostics":[]}`), nil
	}}
	b := New(ft)

	resp, err := b.EditorOpen(context.Background(), "/a.swift", "let x = 1", []string{"-sdk", "/sdk"}, false)
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(ft.lastRequest, &sent))
	require.Equal(t, string(ReqEditorOpen), sent[KeyRequest])
	require.Equal(t, "/a.swift", sent[KeyName])
	require.Equal(t, "let x = 1", sent[KeySourceText])

	diags, ok := resp.Array(KeyDiagnostics)
	require.True(t, ok)
	require.Empty(t, diags)
}

func TestResponseMissingKeyIsAbsentNeverFault(t *testing.T) {
	resp := NewResponse([]byte(`{"key.name":"foo"}`))

	_, ok := resp.Int(KeyOffset)
	require.False(t, ok)

	_, ok = resp.String(KeyOffset) // missing under the string accessor too: absent
	require.False(t, ok)

	name, ok := resp.String(KeyName)
	require.True(t, ok)
	require.Equal(t, "foo", name)
}

func TestNotificationMultiplexing(t *testing.T) {
	ft := &fakeTransport{respond: func(req []byte) ([]byte, error) { return []byte(`{}`), nil }}
	b := New(ft)

	var calls int
	b.Subscribe(func(*Response) { calls++ })
	b.Subscribe(func(*Response) { calls++ })

	ft.notify([]byte(`{"key.diagnostics":[]}`))
	require.Equal(t, 2, calls)
}

func TestSeverityTranslation(t *testing.T) {
	sev, ok := Severity(SeverityError)
	require.True(t, ok)
	require.Equal(t, 1, int(sev))

	_, ok = Severity(UID("source.diagnostic.severity.note"))
	require.False(t, ok)
}

func TestCompletionKindUnmappedFallsBackToValue(t *testing.T) {
	require.Equal(t, CompletionKind(DeclClass), CompletionKind(DeclClass))
	require.EqualValues(t, 12, CompletionKind(UID("source.lang.swift.decl.unknown")))
}

func TestSymbolKindUnmappedIsAbsent(t *testing.T) {
	_, ok := SymbolKind(UID("source.lang.swift.decl.unknown"))
	require.False(t, ok)
}
