// Package document mirrors client text buffers with version ordering and
// produces immutable, refcounted snapshots for concurrent readers.
package document

import "github.com/swiftls/swiftls/position"

// Document is an immutable payload identified by a URI: a language tag, a
// monotonically increasing client-supplied version, and the buffer text.
type Document struct {
	URI      string
	Language string
	Version  int32
	Text     string
}

// Change is a single edit applied during Manager.Edit. A nil Range means a
// full-buffer replacement; otherwise it is a ranged replacement against the
// pre-edit snapshot's coordinates.
type Change struct {
	Range *position.Range
	Text  string
}
