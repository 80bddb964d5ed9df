// Package scene implements the live canvas document: nodes, arrows, and
// strokes with their integrity invariants. All mutation goes through the
// methods on Scene; each one either succeeds and leaves every invariant
// holding, or fails and leaves the scene exactly as it was.
package scene

import (
	"fmt"
	"time"

	"cnfinity/local-app/pkg/model"
)

// Scene is the live, mutable canvas document. It owns its nodes, arrows, and
// strokes exclusively; arrows refer to nodes by id only. The id counters are
// monotonic for the lifetime of the document, so deleted ids are never
// reused, and the version counter increments on every successful content
// mutation (viewport changes are excluded so pans and zooms do not generate
// history entries).
type Scene struct {
	nodes   map[model.NodeID]*model.Node
	arrows  map[model.ArrowID]*model.Arrow
	strokes map[model.StrokeID]*model.Stroke

	viewport model.Viewport

	nextNodeID   int64
	nextArrowID  int64
	nextStrokeID int64

	version uint64
}

// New creates an empty scene with a neutral viewport.
func New() *Scene {
	return &Scene{
		nodes:        make(map[model.NodeID]*model.Node),
		arrows:       make(map[model.ArrowID]*model.Arrow),
		strokes:      make(map[model.StrokeID]*model.Stroke),
		viewport:     model.Viewport{Zoom: 1.0},
		nextNodeID:   1,
		nextArrowID:  1,
		nextStrokeID: 1,
	}
}

// Version returns the mutation counter of the scene.
func (s *Scene) Version() uint64 {
	return s.version
}

// Viewport returns the current pan/zoom state.
func (s *Scene) Viewport() model.Viewport {
	return s.viewport
}

// ViewportSet replaces the pan/zoom state, clamping zoom to the supported
// range. Viewport changes do not bump the scene version.
func (s *Scene) ViewportSet(vp model.Viewport) {
	vp.Zoom = model.ClampZoom(vp.Zoom)
	s.viewport = vp
}

// NodeAdd creates a new node and returns it. Zero or negative dimensions are
// rejected as degenerate geometry.
func (s *Scene) NodeAdd(kind model.NodeKind, pos model.Point, size model.Size, content string) (*model.Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrInvalidGeometry, kind)
	}
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("%w: node size must be positive, got %gx%g", ErrInvalidGeometry, size.W, size.H)
	}

	now := time.Now()
	node := &model.Node{
		ID:      model.NodeID(s.nextNodeID),
		Kind:    kind,
		Pos:     pos,
		Size:    size,
		Content: content,
		Created: now,
		Updated: now,
	}
	s.nextNodeID++
	s.nodes[node.ID] = node
	s.version++
	return node, nil
}

// NodeMove repositions an existing node.
func (s *Scene) NodeMove(id model.NodeID, pos model.Point) error {
	node, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	node.Pos = pos
	node.Updated = time.Now()
	s.version++
	return nil
}

// NodeContentEdit replaces the text content of an existing node.
func (s *Scene) NodeContentEdit(id model.NodeID, content string) error {
	node, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	node.Content = content
	node.Updated = time.Now()
	s.version++
	return nil
}

// NodeDelete removes a node and every arrow referencing it in one atomic
// step, so no arrow is ever left with a dangling endpoint.
func (s *Scene) NodeDelete(id model.NodeID) error {
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("%w: node %d", ErrNotFound, id)
	}

	for arrowID, arrow := range s.arrows {
		if arrow.From == id || arrow.To == id {
			delete(s.arrows, arrowID)
		}
	}
	delete(s.nodes, id)
	s.version++
	return nil
}

// ArrowAdd connects two existing, distinct nodes. Both endpoints are checked
// before anything is created, keeping the operation atomic.
func (s *Scene) ArrowAdd(from, to model.NodeID, curvature float64) (*model.Arrow, error) {
	if from == to {
		return nil, fmt.Errorf("%w: arrow endpoints must differ", ErrInvalidGeometry)
	}
	if _, ok := s.nodes[from]; !ok {
		return nil, fmt.Errorf("%w: arrow source node %d", ErrReference, from)
	}
	if _, ok := s.nodes[to]; !ok {
		return nil, fmt.Errorf("%w: arrow target node %d", ErrReference, to)
	}

	arrow := &model.Arrow{
		ID:        model.ArrowID(s.nextArrowID),
		From:      from,
		To:        to,
		Curvature: curvature,
	}
	s.nextArrowID++
	s.arrows[arrow.ID] = arrow
	s.version++
	return arrow, nil
}

// ArrowDelete removes an arrow.
func (s *Scene) ArrowDelete(id model.ArrowID) error {
	if _, ok := s.arrows[id]; !ok {
		return fmt.Errorf("%w: arrow %d", ErrNotFound, id)
	}
	delete(s.arrows, id)
	s.version++
	return nil
}

// StrokeAdd starts a new marker stroke at the given point. Eraser gestures
// are destructive and never stored: the input layer converts them to EraseAt
// calls, so a stored eraser stroke is rejected here.
func (s *Scene) StrokeAdd(tool model.Tool, color string, width float64, start model.Point) (*model.Stroke, error) {
	if tool != model.ToolMarker {
		return nil, fmt.Errorf("%w: only marker strokes are stored, got tool %q", ErrInvalidGeometry, tool)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: stroke width must be positive, got %g", ErrInvalidGeometry, width)
	}

	stroke := &model.Stroke{
		ID:     model.StrokeID(s.nextStrokeID),
		Tool:   tool,
		Points: []model.Point{start},
		Color:  color,
		Width:  width,
	}
	s.nextStrokeID++
	s.strokes[stroke.ID] = stroke
	s.version++
	return stroke, nil
}

// StrokePointAdd appends a point to an existing stroke.
func (s *Scene) StrokePointAdd(id model.StrokeID, pt model.Point) error {
	stroke, ok := s.strokes[id]
	if !ok {
		return fmt.Errorf("%w: stroke %d", ErrNotFound, id)
	}
	stroke.Points = append(stroke.Points, pt)
	s.version++
	return nil
}

// EraseAt deletes every stroke that has at least one point within radius of
// pt. Erasing is destructive; restoring erased geometry is the history
// manager's job. Returns the ids of the removed strokes.
func (s *Scene) EraseAt(pt model.Point, radius float64) ([]model.StrokeID, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: erase radius must be positive, got %g", ErrInvalidGeometry, radius)
	}

	var erased []model.StrokeID
	for id, stroke := range s.strokes {
		for _, p := range stroke.Points {
			if p.DistanceTo(pt) <= radius {
				erased = append(erased, id)
				break
			}
		}
	}
	for _, id := range erased {
		delete(s.strokes, id)
	}
	if len(erased) > 0 {
		s.version++
	}
	return erased, nil
}

// Clone returns a deep copy of the scene. The copy shares no memory with the
// original, so snapshots stay immutable while the live scene keeps mutating.
func (s *Scene) Clone() *Scene {
	clone := &Scene{
		nodes:        make(map[model.NodeID]*model.Node, len(s.nodes)),
		arrows:       make(map[model.ArrowID]*model.Arrow, len(s.arrows)),
		strokes:      make(map[model.StrokeID]*model.Stroke, len(s.strokes)),
		viewport:     s.viewport,
		nextNodeID:   s.nextNodeID,
		nextArrowID:  s.nextArrowID,
		nextStrokeID: s.nextStrokeID,
		version:      s.version,
	}
	for id, node := range s.nodes {
		clone.nodes[id] = node.Clone()
	}
	for id, arrow := range s.arrows {
		clone.arrows[id] = arrow.Clone()
	}
	for id, stroke := range s.strokes {
		clone.strokes[id] = stroke.Clone()
	}
	return clone
}

// Counters returns the next-id counters, needed by the persistence codec so
// ids keep their never-reused guarantee across save/load.
func (s *Scene) Counters() (nextNode, nextArrow, nextStroke int64) {
	return s.nextNodeID, s.nextArrowID, s.nextStrokeID
}

// Validate checks the scene invariants: every arrow endpoint exists and the
// id counters are strictly beyond every id in use.
func (s *Scene) Validate() error {
	for id, arrow := range s.arrows {
		if _, ok := s.nodes[arrow.From]; !ok {
			return fmt.Errorf("%w: arrow %d source node %d missing", ErrReference, id, arrow.From)
		}
		if _, ok := s.nodes[arrow.To]; !ok {
			return fmt.Errorf("%w: arrow %d target node %d missing", ErrReference, id, arrow.To)
		}
	}
	for id := range s.nodes {
		if int64(id) >= s.nextNodeID {
			return fmt.Errorf("%w: node id %d not below counter %d", ErrReference, id, s.nextNodeID)
		}
	}
	for id := range s.arrows {
		if int64(id) >= s.nextArrowID {
			return fmt.Errorf("%w: arrow id %d not below counter %d", ErrReference, id, s.nextArrowID)
		}
	}
	for id := range s.strokes {
		if int64(id) >= s.nextStrokeID {
			return fmt.Errorf("%w: stroke id %d not below counter %d", ErrReference, id, s.nextStrokeID)
		}
	}
	return nil
}

// Restore rebuilds a scene from persisted parts, validating referential
// integrity before accepting it. Used by the persistence codec on load.
func Restore(nodes []model.Node, arrows []model.Arrow, strokes []model.Stroke, viewport model.Viewport, nextNode, nextArrow, nextStroke int64, version uint64) (*Scene, error) {
	s := &Scene{
		nodes:        make(map[model.NodeID]*model.Node, len(nodes)),
		arrows:       make(map[model.ArrowID]*model.Arrow, len(arrows)),
		strokes:      make(map[model.StrokeID]*model.Stroke, len(strokes)),
		viewport:     viewport,
		nextNodeID:   nextNode,
		nextArrowID:  nextArrow,
		nextStrokeID: nextStroke,
		version:      version,
	}
	s.viewport.Zoom = model.ClampZoom(s.viewport.Zoom)

	for i := range nodes {
		node := nodes[i]
		if _, ok := s.nodes[node.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate node id %d", ErrReference, node.ID)
		}
		s.nodes[node.ID] = node.Clone()
	}
	for i := range arrows {
		arrow := arrows[i]
		if _, ok := s.arrows[arrow.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate arrow id %d", ErrReference, arrow.ID)
		}
		s.arrows[arrow.ID] = arrow.Clone()
	}
	for i := range strokes {
		stroke := strokes[i]
		if _, ok := s.strokes[stroke.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate stroke id %d", ErrReference, stroke.ID)
		}
		s.strokes[stroke.ID] = stroke.Clone()
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
