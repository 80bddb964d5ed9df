// Package history implements the snapshot-based undo/redo log for a canvas
// document. Every committed command produces a full deep copy of the scene;
// undo and redo move a cursor over those copies. Whole-scene snapshots trade
// memory for correctness: there are no inverse operations to get wrong, and
// the configured depth bounds worst-case memory.
package history

import (
	"errors"
	"fmt"
	"time"

	"cnfinity/local-app/pkg/scene"
)

// History boundary errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultDepth is used when a non-positive depth is configured.
const DefaultDepth = 100

// Snapshot is an immutable deep copy of a scene at one point in time. The
// sequence number is monotonic for the history's lifetime, so evicted
// snapshots never cause renumbering.
type Snapshot struct {
	seq          uint64
	sceneVersion uint64
	taken        time.Time
	scene        *scene.Scene
}

// Seq returns the snapshot's sequence number.
func (sn *Snapshot) Seq() uint64 { return sn.seq }

// SceneVersion returns the version counter of the captured scene.
func (sn *Snapshot) SceneVersion() uint64 { return sn.sceneVersion }

// Taken returns when the snapshot was recorded.
func (sn *Snapshot) Taken() time.Time { return sn.taken }

// Scene returns a deep copy of the captured scene. The snapshot's own copy
// is never handed out, keeping it immutable.
func (sn *Snapshot) Scene() *scene.Scene { return sn.scene.Clone() }

// History is the ordered snapshot log with a cursor pointing at the entry
// the live scene currently equals. Invariant: 0 <= cursor < len(snapshots).
type History struct {
	snapshots []*Snapshot
	cursor    int
	depth     int
	nextSeq   uint64
}

// New creates a history seeded with a snapshot of the initial scene, so the
// cursor invariant holds from the start.
func New(depth int, initial *scene.Scene) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	h := &History{depth: depth, nextSeq: 1}
	h.append(initial)
	return h
}

// append captures a deep copy of the scene as the new last snapshot and
// moves the cursor to it, evicting the oldest entry beyond the depth cap.
func (h *History) append(s *scene.Scene) {
	h.snapshots = append(h.snapshots, &Snapshot{
		seq:          h.nextSeq,
		sceneVersion: s.Version(),
		taken:        time.Now(),
		scene:        s.Clone(),
	})
	h.nextSeq++
	h.cursor = len(h.snapshots) - 1

	if len(h.snapshots) > h.depth {
		over := len(h.snapshots) - h.depth
		h.snapshots = append([]*Snapshot(nil), h.snapshots[over:]...)
		h.cursor -= over
	}
}

// Record captures the scene after a committed command. Any redo branch past
// the cursor is discarded (linear undo, no branching). Recording is skipped
// when the scene version matches the current snapshot, so commands that did
// not change anything never produce duplicate entries. Reports whether a
// snapshot was taken.
func (h *History) Record(s *scene.Scene) bool {
	if s.Version() == h.snapshots[h.cursor].sceneVersion {
		return false
	}
	h.snapshots = h.snapshots[:h.cursor+1]
	h.append(s)
	return true
}

// Undo moves the cursor one snapshot back and returns a deep copy of that
// scene for the caller to install as the live scene.
func (h *History) Undo() (*scene.Scene, error) {
	if h.cursor == 0 {
		return nil, ErrNothingToUndo
	}
	h.cursor--
	return h.snapshots[h.cursor].Scene(), nil
}

// Redo moves the cursor one snapshot forward and returns a deep copy of that
// scene for the caller to install as the live scene.
func (h *History) Redo() (*scene.Scene, error) {
	if h.cursor == len(h.snapshots)-1 {
		return nil, ErrNothingToRedo
	}
	h.cursor++
	return h.snapshots[h.cursor].Scene(), nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Len returns the number of snapshots currently held.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the index of the snapshot the live scene equals.
func (h *History) Cursor() int { return h.cursor }

// Depth returns the configured maximum number of snapshots.
func (h *History) Depth() int { return h.depth }

// Current returns a deep copy of the scene at the cursor.
func (h *History) Current() *scene.Scene {
	return h.snapshots[h.cursor].Scene()
}

// Snapshots returns the snapshot log oldest first. The slice is a copy; the
// snapshots themselves are shared but immutable.
func (h *History) Snapshots() []*Snapshot {
	return append([]*Snapshot(nil), h.snapshots...)
}

// RestoredSnapshot rebuilds a snapshot from persisted parts. Only the
// persistence codec should need this.
func RestoredSnapshot(seq, sceneVersion uint64, taken time.Time, s *scene.Scene) *Snapshot {
	return &Snapshot{seq: seq, sceneVersion: sceneVersion, taken: taken, scene: s.Clone()}
}

// Rebuild reconstructs a history from persisted snapshots and a cursor,
// enforcing the cursor invariant. Snapshots must be ordered oldest first.
func Rebuild(snapshots []*Snapshot, cursor, depth int) (*History, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if len(snapshots) == 0 {
		return nil, errors.New("history must contain at least one snapshot")
	}
	if cursor < 0 || cursor >= len(snapshots) {
		return nil, fmt.Errorf("cursor %d out of range [0, %d)", cursor, len(snapshots))
	}

	var maxSeq uint64
	for _, sn := range snapshots {
		if sn.seq > maxSeq {
			maxSeq = sn.seq
		}
	}

	h := &History{
		snapshots: append([]*Snapshot(nil), snapshots...),
		cursor:    cursor,
		depth:     depth,
		nextSeq:   maxSeq + 1,
	}
	if len(h.snapshots) > depth {
		over := len(h.snapshots) - depth
		h.snapshots = append([]*Snapshot(nil), h.snapshots[over:]...)
		h.cursor -= over
		if h.cursor < 0 {
			h.cursor = 0
		}
	}
	return h, nil
}
