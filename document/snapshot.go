package document

import (
	"sync"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"

	"github.com/swiftls/swiftls/position"
)

// Snapshot is an immutable (Document, LineTable, version) triple captured at
// the moment of a mutation. Snapshots are cheap to share: the line table is
// computed eagerly at construction, never recomputed by a reader.
//
// A Snapshot carries a refcount that Acquire increments and the returned
// release func decrements, asserting that it never drops below zero. The
// server's handlers hold snapshots as plain pointers without calling
// Acquire; a superseded snapshot stays usable for as long as a handler
// references it.
type Snapshot struct {
	doc   Document
	lines *position.LineTable

	refMu    sync.Mutex
	refcount int
}

func newSnapshot(doc Document) *Snapshot {
	return &Snapshot{
		doc:      doc,
		lines:    position.New(doc.Text),
		refcount: 1,
	}
}

// Document returns the snapshot's immutable document payload.
func (s *Snapshot) Document() Document { return s.doc }

// Lines returns the snapshot's eagerly computed line table.
func (s *Snapshot) Lines() *position.LineTable { return s.lines }

// Acquire increments the snapshot's refcount and returns a release function
// that must be called exactly once when the caller is done with it.
func (s *Snapshot) Acquire() func() {
	s.refMu.Lock()
	contract.Assertf(s.refcount > 0, "Acquire called on snapshot with refcount %d", s.refcount)
	s.refcount++
	s.refMu.Unlock()
	released := false
	return func() {
		s.refMu.Lock()
		defer s.refMu.Unlock()
		contract.Assertf(!released, "snapshot release function called more than once")
		released = true
		contract.Assertf(s.refcount > 0, "decref on snapshot with refcount %d", s.refcount)
		s.refcount--
	}
}
