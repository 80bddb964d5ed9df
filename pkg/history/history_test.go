package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

func sceneWithNodes(t *testing.T, n int) *scene.Scene {
	t.Helper()
	s := scene.New()
	for i := 0; i < n; i++ {
		_, err := s.NodeAdd(model.NodeNote, model.Point{X: float64(i) * 10}, model.Size{W: 10, H: 10}, "")
		require.NoError(t, err)
	}
	return s
}

func TestNewSeedsInitialSnapshot(t *testing.T) {
	s := scene.New()
	h := New(10, s)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	s := scene.New()
	h := New(10, s)

	node, err := s.NodeAdd(model.NodeNote, model.Point{X: 1, Y: 2}, model.Size{W: 10, H: 10}, "a")
	require.NoError(t, err)
	require.True(t, h.Record(s))

	require.NoError(t, s.NodeMove(node.ID, model.Point{X: 50, Y: 60}))
	require.True(t, h.Record(s))

	// Undo returns the state before the move
	prev, err := h.Undo()
	require.NoError(t, err)
	got, err := prev.NodeGet(node.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 1, Y: 2}, got.Pos)

	// Redo returns the moved state
	next, err := h.Redo()
	require.NoError(t, err)
	got, err = next.NodeGet(node.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 50, Y: 60}, got.Pos)
}

func TestUndoRedoBoundaries(t *testing.T) {
	s := scene.New()
	h := New(10, s)

	_, err := h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestRecordSkipsWhenNothingChanged(t *testing.T) {
	s := sceneWithNodes(t, 1)
	h := New(10, s)

	// Scene version did not change since the last snapshot
	assert.False(t, h.Record(s))
	assert.Equal(t, 1, h.Len())
}

func TestRecordDiscardsRedoBranch(t *testing.T) {
	s := scene.New()
	h := New(10, s)

	for i := 0; i < 3; i++ {
		_, err := s.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
		require.NoError(t, err)
		require.True(t, h.Record(s))
	}
	require.Equal(t, 4, h.Len())

	_, err := h.Undo()
	require.NoError(t, err)
	undone, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, h.CanRedo())

	// A new edit from the undone state drops the two redo snapshots
	_, err = undone.NodeAdd(model.NodeCode, model.Point{}, model.Size{W: 10, H: 10}, "")
	require.NoError(t, err)
	require.True(t, h.Record(undone))

	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
}

func TestDepthCapEvictsOldest(t *testing.T) {
	s := scene.New()
	h := New(3, s)

	for i := 0; i < 10; i++ {
		_, err := s.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
		require.NoError(t, err)
		require.True(t, h.Record(s))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	// Only depth-1 undo steps remain
	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestSnapshotSequenceMonotonicAcrossEviction(t *testing.T) {
	s := scene.New()
	h := New(2, s)

	for i := 0; i < 5; i++ {
		_, err := s.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
		require.NoError(t, err)
		require.True(t, h.Record(s))
	}

	snaps := h.Snapshots()
	require.Len(t, snaps, 2)
	assert.Greater(t, snaps[1].Seq(), snaps[0].Seq())
}

func TestSnapshotSceneIsACopy(t *testing.T) {
	s := sceneWithNodes(t, 1)
	h := New(10, s)

	first := h.Current()
	_, err := first.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
	require.NoError(t, err)

	// The stored snapshot is unaffected by mutations of the handed-out copy
	assert.Equal(t, 1, h.Current().NodeCount())
}

func TestDefaultDepthApplied(t *testing.T) {
	h := New(0, scene.New())
	assert.Equal(t, DefaultDepth, h.Depth())
}

func TestRebuild(t *testing.T) {
	s1 := scene.New()
	s2 := sceneWithNodes(t, 1)

	snaps := []*Snapshot{
		RestoredSnapshot(1, s1.Version(), time.Now(), s1),
		RestoredSnapshot(2, s2.Version(), time.Now(), s2),
	}

	h, err := Rebuild(snaps, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	// New snapshots continue the persisted sequence
	_, err = s2.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
	require.NoError(t, err)
	require.True(t, h.Record(s2))
	snapsAfter := h.Snapshots()
	assert.Equal(t, uint64(3), snapsAfter[len(snapsAfter)-1].Seq())
}

func TestRebuildRejectsBadInput(t *testing.T) {
	_, err := Rebuild(nil, 0, 10)
	assert.Error(t, err)

	s := scene.New()
	snaps := []*Snapshot{RestoredSnapshot(1, 0, time.Now(), s)}
	_, err = Rebuild(snaps, 1, 10)
	assert.Error(t, err)
	_, err = Rebuild(snaps, -1, 10)
	assert.Error(t, err)
}
