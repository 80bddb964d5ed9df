package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnfinity/local-app/pkg/model"
)

func addNode(t *testing.T, s *Scene, x, y float64) *model.Node {
	t.Helper()
	node, err := s.NodeAdd(model.NodeNote, model.Point{X: x, Y: y}, model.Size{W: 160, H: 90}, "")
	require.NoError(t, err)
	return node
}

func TestNodeAdd(t *testing.T) {
	s := New()

	node, err := s.NodeAdd(model.NodeCode, model.Point{X: 10, Y: 20}, model.Size{W: 100, H: 50}, "func main() {}")
	require.NoError(t, err)
	assert.Equal(t, model.NodeID(1), node.ID)
	assert.Equal(t, model.NodeCode, node.Kind)
	assert.Equal(t, "func main() {}", node.Content)
	assert.Equal(t, 1, s.NodeCount())
}

func TestNodeAddRejectsBadInput(t *testing.T) {
	s := New()

	_, err := s.NodeAdd("sticker", model.Point{}, model.Size{W: 10, H: 10}, "")
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = s.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 0, H: 10}, "")
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	// Nothing was created and the version is untouched
	assert.Equal(t, 0, s.NodeCount())
	assert.Equal(t, uint64(0), s.Version())
}

func TestNodeIDsNeverReused(t *testing.T) {
	s := New()
	n1 := addNode(t, s, 0, 0)
	require.NoError(t, s.NodeDelete(n1.ID))

	n2 := addNode(t, s, 0, 0)
	assert.Greater(t, n2.ID, n1.ID)
}

func TestNodeDeleteCascadesArrows(t *testing.T) {
	s := New()
	n1 := addNode(t, s, 0, 0)
	n2 := addNode(t, s, 100, 0)
	n3 := addNode(t, s, 200, 0)

	_, err := s.ArrowAdd(n1.ID, n2.ID, 0)
	require.NoError(t, err)
	_, err = s.ArrowAdd(n2.ID, n3.ID, 0)
	require.NoError(t, err)
	keep, err := s.ArrowAdd(n1.ID, n3.ID, 0)
	require.NoError(t, err)

	require.NoError(t, s.NodeDelete(n2.ID))

	// Both arrows touching n2 are gone, the third survives
	assert.Equal(t, 1, s.ArrowCount())
	_, err = s.ArrowGet(keep.ID)
	assert.NoError(t, err)
	assert.NoError(t, s.Validate())
}

func TestArrowAddValidation(t *testing.T) {
	s := New()
	n1 := addNode(t, s, 0, 0)

	_, err := s.ArrowAdd(n1.ID, n1.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = s.ArrowAdd(n1.ID, 99, 0)
	assert.ErrorIs(t, err, ErrReference)

	_, err = s.ArrowAdd(99, n1.ID, 0)
	assert.ErrorIs(t, err, ErrReference)

	// Failed adds leave no partial state behind
	assert.Equal(t, 0, s.ArrowCount())
	versionBefore := s.Version()
	_, _ = s.ArrowAdd(n1.ID, 99, 0)
	assert.Equal(t, versionBefore, s.Version())
}

func TestNodeMoveAndEdit(t *testing.T) {
	s := New()
	node := addNode(t, s, 0, 0)

	require.NoError(t, s.NodeMove(node.ID, model.Point{X: 50, Y: -20}))
	require.NoError(t, s.NodeContentEdit(node.ID, "updated"))

	got, err := s.NodeGet(node.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 50, Y: -20}, got.Pos)
	assert.Equal(t, "updated", got.Content)

	assert.ErrorIs(t, s.NodeMove(99, model.Point{}), ErrNotFound)
	assert.ErrorIs(t, s.NodeContentEdit(99, "x"), ErrNotFound)
}

func TestStrokeAddAndExtend(t *testing.T) {
	s := New()

	stroke, err := s.StrokeAdd(model.ToolMarker, "#ff0000", 2.5, model.Point{X: 1, Y: 1})
	require.NoError(t, err)
	require.NoError(t, s.StrokePointAdd(stroke.ID, model.Point{X: 2, Y: 2}))

	got, err := s.StrokeGet(stroke.ID)
	require.NoError(t, err)
	assert.Len(t, got.Points, 2)
}

func TestStrokeAddRejectsEraserAndBadWidth(t *testing.T) {
	s := New()

	_, err := s.StrokeAdd(model.ToolEraser, "#000", 2, model.Point{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = s.StrokeAdd(model.ToolMarker, "#000", 0, model.Point{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestEraseAt(t *testing.T) {
	s := New()
	near, err := s.StrokeAdd(model.ToolMarker, "#000", 1, model.Point{X: 0, Y: 0})
	require.NoError(t, err)
	far, err := s.StrokeAdd(model.ToolMarker, "#000", 1, model.Point{X: 100, Y: 100})
	require.NoError(t, err)

	erased, err := s.EraseAt(model.Point{X: 3, Y: 4}, 10)
	require.NoError(t, err)
	assert.Equal(t, []model.StrokeID{near.ID}, erased)

	_, err = s.StrokeGet(near.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.StrokeGet(far.ID)
	assert.NoError(t, err)
}

func TestEraseAtNoHitDoesNotBumpVersion(t *testing.T) {
	s := New()
	_, err := s.StrokeAdd(model.ToolMarker, "#000", 1, model.Point{X: 100, Y: 100})
	require.NoError(t, err)

	before := s.Version()
	erased, err := s.EraseAt(model.Point{}, 5)
	require.NoError(t, err)
	assert.Empty(t, erased)
	assert.Equal(t, before, s.Version())

	_, err = s.EraseAt(model.Point{}, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestViewportClampAndVersion(t *testing.T) {
	s := New()
	before := s.Version()

	s.ViewportSet(model.Viewport{Pan: model.Point{X: 10, Y: 10}, Zoom: 100})
	assert.Equal(t, model.MaxZoom, s.Viewport().Zoom)

	s.ViewportSet(model.Viewport{Zoom: 0.001})
	assert.Equal(t, model.MinZoom, s.Viewport().Zoom)

	// Viewport changes never produce history entries
	assert.Equal(t, before, s.Version())
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	node := addNode(t, s, 0, 0)
	stroke, err := s.StrokeAdd(model.ToolMarker, "#000", 1, model.Point{})
	require.NoError(t, err)

	clone := s.Clone()
	require.True(t, s.Equal(clone))

	// Mutating the original must not leak into the clone
	require.NoError(t, s.NodeMove(node.ID, model.Point{X: 500, Y: 500}))
	require.NoError(t, s.StrokePointAdd(stroke.ID, model.Point{X: 9, Y: 9}))

	cloneNode, err := clone.NodeGet(node.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Point{}, cloneNode.Pos)

	cloneStroke, err := clone.StrokeGet(stroke.ID)
	require.NoError(t, err)
	assert.Len(t, cloneStroke.Points, 1)
}

func TestNodesInRegionAndView(t *testing.T) {
	s := New()
	in := addNode(t, s, 0, 0)
	out := addNode(t, s, 10000, 10000)
	_, err := s.ArrowAdd(in.ID, out.ID, 0)
	require.NoError(t, err)
	_, err = s.StrokeAdd(model.ToolMarker, "#000", 1, model.Point{X: 5, Y: 5})
	require.NoError(t, err)

	region := model.NewRect(-100, -100, 400, 400)
	nodes := s.NodesInRegion(region)
	require.Len(t, nodes, 1)
	assert.Equal(t, in.ID, nodes[0].ID)

	view := s.View(region)
	assert.Len(t, view.Nodes, 1)
	// Arrow has one visible endpoint, so it is included
	assert.Len(t, view.Arrows, 1)
	assert.Len(t, view.Strokes, 1)
}

func TestRestoreRejectsDanglingArrow(t *testing.T) {
	nodes := []model.Node{{ID: 1, Kind: model.NodeNote, Size: model.Size{W: 10, H: 10}}}
	arrows := []model.Arrow{{ID: 1, From: 1, To: 2}}

	_, err := Restore(nodes, arrows, nil, model.Viewport{Zoom: 1}, 2, 2, 1, 0)
	assert.ErrorIs(t, err, ErrReference)
}

func TestRestoreRejectsDuplicateIDs(t *testing.T) {
	nodes := []model.Node{
		{ID: 1, Kind: model.NodeNote, Size: model.Size{W: 10, H: 10}},
		{ID: 1, Kind: model.NodeCode, Size: model.Size{W: 10, H: 10}},
	}
	_, err := Restore(nodes, nil, nil, model.Viewport{Zoom: 1}, 2, 1, 1, 0)
	assert.ErrorIs(t, err, ErrReference)
}

func TestRestoreRejectsCounterBehindIDs(t *testing.T) {
	nodes := []model.Node{{ID: 5, Kind: model.NodeNote, Size: model.Size{W: 10, H: 10}}}
	_, err := Restore(nodes, nil, nil, model.Viewport{Zoom: 1}, 3, 1, 1, 0)
	assert.ErrorIs(t, err, ErrReference)
}

func TestRestoreRoundTrip(t *testing.T) {
	s := New()
	n1 := addNode(t, s, 0, 0)
	n2 := addNode(t, s, 100, 100)
	_, err := s.ArrowAdd(n1.ID, n2.ID, 0.3)
	require.NoError(t, err)
	_, err = s.StrokeAdd(model.ToolMarker, "#00ff00", 2, model.Point{X: 1, Y: 2})
	require.NoError(t, err)

	nn, na, ns := s.Counters()
	restored, err := Restore(s.NodeList(), s.ArrowList(), s.StrokeList(), s.Viewport(), nn, na, ns, s.Version())
	require.NoError(t, err)
	assert.True(t, s.Equal(restored))
}

func TestEqualAfterEncodedRoundTrip(t *testing.T) {
	s := New()
	n1 := addNode(t, s, 0, 0)
	n2 := addNode(t, s, 100, 100)
	_, err := s.ArrowAdd(n1.ID, n2.ID, 0.3)
	require.NoError(t, err)

	// Encoding strips the monotonic clock reading from node timestamps, so
	// equality must not depend on struct comparison of time.Time.
	payload, err := json.Marshal(s.NodeList())
	require.NoError(t, err)
	var nodes []model.Node
	require.NoError(t, json.Unmarshal(payload, &nodes))

	nn, na, ns := s.Counters()
	restored, err := Restore(nodes, s.ArrowList(), s.StrokeList(), s.Viewport(), nn, na, ns, s.Version())
	require.NoError(t, err)
	assert.True(t, s.Equal(restored))
	assert.True(t, restored.Equal(s))
}
