package document

import (
	"fmt"
	"sync"
)

// Manager mirrors client buffers keyed by URI, producing immutable,
// version-ordered snapshots. It is the only mutator of per-URL state;
// everything else in the server only ever reads a Snapshot.
type Manager struct {
	mu   sync.Mutex // serializes Open/Close/Edit across all URIs
	docs map[string]*Snapshot
}

// NewManager constructs an empty document manager.
func NewManager() *Manager {
	return &Manager{docs: make(map[string]*Snapshot)}
}

// Open registers a newly opened document and returns its initial snapshot.
// It fails if the URI is already open.
func (m *Manager) Open(uri, language string, version int32, text string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[uri]; exists {
		return nil, fmt.Errorf("document %q is already open", uri)
	}
	snap := newSnapshot(Document{URI: uri, Language: language, Version: version, Text: text})
	m.docs[uri] = snap
	return snap, nil
}

// Close removes a document. Closing an unknown URI is a silent no-op, per
// the document manager's contract.
func (m *Manager) Close(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, uri)
}

// Latest returns the current snapshot for uri, or false if it is not open.
func (m *Manager) Latest(uri string) (*Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.docs[uri]
	return snap, ok
}

// OpenURIs returns the URIs of every currently open document, in no
// particular order. It is used to release scoped resources (the
// native-analyzer session per document) on shutdown.
func (m *Manager) OpenURIs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	uris := make([]string, 0, len(m.docs))
	for uri := range m.docs {
		uris = append(uris, uri)
	}
	return uris
}

// Edit applies changes to the document at uri, in client-supplied order.
// Before applying each change, onEach is called with the *pre-edit*
// snapshot and the change itself, so the caller can synthesize a parallel
// mutation against a collaborator (the native analyzer) using the same
// byte offsets this method is about to apply. The final snapshot adopts
// version; onEach's "before" snapshots carry the version they were built
// with, not the final one.
//
// Returns the final post-edit snapshot, or (nil, false) if uri is not
// open. A ranged change whose offsets cannot be derived from the pre-edit
// snapshot is fatal to the whole edit sequence: the sequence stops and an
// error is returned, but the manager and the document remain usable for
// subsequent requests (the document simply keeps its last successfully
// applied text).
func (m *Manager) Edit(uri string, version int32, changes []Change, onEach func(before *Snapshot, change Change)) (*Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.docs[uri]
	if !ok {
		return nil, false, nil
	}

	for _, change := range changes {
		if onEach != nil {
			onEach(current, change)
		}
		text, err := applyChange(current, change)
		if err != nil {
			return current, true, fmt.Errorf("edit %q: %w", uri, err)
		}
		next := newSnapshot(Document{
			URI:      uri,
			Language: current.doc.Language,
			Version:  current.doc.Version, // intermediate snapshots keep the pre-edit version
			Text:     text,
		})
		current = next
	}

	// The final snapshot in the sequence adopts the version carried by the
	// didChange notification, not the version of its own immediately
	// preceding intermediate snapshot.
	final := newSnapshot(Document{
		URI:      uri,
		Language: current.doc.Language,
		Version:  version,
		Text:     current.doc.Text,
	})
	m.docs[uri] = final
	return final, true, nil
}

func applyChange(before *Snapshot, change Change) (string, error) {
	text := before.doc.Text
	if change.Range == nil {
		return change.Text, nil
	}
	startOff, ok := before.lines.UTF8Offset(change.Range.Start.Line, change.Range.Start.UTF16Col)
	if !ok {
		return "", fmt.Errorf("range start %+v is not a valid position in the pre-edit snapshot", change.Range.Start)
	}
	endOff, ok := before.lines.UTF8Offset(change.Range.End.Line, change.Range.End.UTF16Col)
	if !ok {
		return "", fmt.Errorf("range end %+v is not a valid position in the pre-edit snapshot", change.Range.End)
	}
	if endOff < startOff {
		return "", fmt.Errorf("range end %+v precedes range start %+v", change.Range.End, change.Range.Start)
	}
	return text[:startOff] + change.Text + text[endOff:], nil
}
