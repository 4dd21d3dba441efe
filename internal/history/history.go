// Package history is a bounded, linear undo/redo stack of full document
// snapshots. Snapshots, not diffs: documents are tens of nodes, and copying
// them whole removes every patch-application bug at once.
//
// Callers own the snapshot boundary. A drag pushes once on release, a text
// edit pushes once on commit, a multi-node delete pushes once for the whole
// batch. Push per primitive mutation and undo granularity becomes unusable.
package history

// Capacity is the maximum number of retained snapshots; the oldest is
// evicted first.
const Capacity = 60

// Cloneable is any document that can deep-copy itself. Both graph and flow
// documents satisfy it.
type Cloneable[T any] interface {
	Clone() T
}

type Stack[T Cloneable[T]] struct {
	snapshots []T
	index     int // position of the current snapshot
}

// New returns a stack seeded with the initial document state, so the first
// edit can be undone back to it.
func New[T Cloneable[T]](initial T) *Stack[T] {
	return &Stack[T]{
		snapshots: []T{initial.Clone()},
		index:     0,
	}
}

// Push records a new snapshot. Any redo history past the current position
// is truncated, and once the stack exceeds Capacity the oldest snapshot is
// evicted.
func (s *Stack[T]) Push(doc T) {
	s.snapshots = append(s.snapshots[:s.index+1], doc.Clone())
	if len(s.snapshots) > Capacity {
		s.snapshots = s.snapshots[1:]
	}
	s.index = len(s.snapshots) - 1
}

// Undo steps back one snapshot and returns it for the caller to apply.
// No-op at the oldest snapshot.
func (s *Stack[T]) Undo() (T, bool) {
	if !s.CanUndo() {
		var zero T
		return zero, false
	}
	s.index--
	return s.snapshots[s.index].Clone(), true
}

// Redo steps forward one snapshot. No-op at the newest.
func (s *Stack[T]) Redo() (T, bool) {
	if !s.CanRedo() {
		var zero T
		return zero, false
	}
	s.index++
	return s.snapshots[s.index].Clone(), true
}

func (s *Stack[T]) CanUndo() bool {
	return s.index > 0
}

func (s *Stack[T]) CanRedo() bool {
	return s.index < len(s.snapshots)-1
}

// Len is the number of retained snapshots, including the current one.
func (s *Stack[T]) Len() int {
	return len(s.snapshots)
}
