package scene

import (
	"fmt"
	"sort"

	"cnfinity/local-app/pkg/model"
)

// Query operations. All of them return copies; callers never receive
// pointers into the live scene.

// NodeGet returns a copy of the node with the given id.
func (s *Scene) NodeGet(id model.NodeID) (*model.Node, error) {
	node, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	return node.Clone(), nil
}

// ArrowGet returns a copy of the arrow with the given id.
func (s *Scene) ArrowGet(id model.ArrowID) (*model.Arrow, error) {
	arrow, ok := s.arrows[id]
	if !ok {
		return nil, fmt.Errorf("%w: arrow %d", ErrNotFound, id)
	}
	return arrow.Clone(), nil
}

// StrokeGet returns a copy of the stroke with the given id.
func (s *Scene) StrokeGet(id model.StrokeID) (*model.Stroke, error) {
	stroke, ok := s.strokes[id]
	if !ok {
		return nil, fmt.Errorf("%w: stroke %d", ErrNotFound, id)
	}
	return stroke.Clone(), nil
}

// NodeList returns copies of all nodes ordered by id.
func (s *Scene) NodeList() []model.Node {
	nodes := make([]model.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, *node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// ArrowList returns copies of all arrows ordered by id.
func (s *Scene) ArrowList() []model.Arrow {
	arrows := make([]model.Arrow, 0, len(s.arrows))
	for _, arrow := range s.arrows {
		arrows = append(arrows, *arrow)
	}
	sort.Slice(arrows, func(i, j int) bool { return arrows[i].ID < arrows[j].ID })
	return arrows
}

// StrokeList returns copies of all strokes ordered by id.
func (s *Scene) StrokeList() []model.Stroke {
	strokes := make([]model.Stroke, 0, len(s.strokes))
	for _, stroke := range s.strokes {
		strokes = append(strokes, *stroke.Clone())
	}
	sort.Slice(strokes, func(i, j int) bool { return strokes[i].ID < strokes[j].ID })
	return strokes
}

// NodesInRegion returns copies of the nodes whose boxes intersect the given
// rectangle, ordered by id.
func (s *Scene) NodesInRegion(region model.Rect) []model.Node {
	region = region.Normalized()
	var nodes []model.Node
	for _, node := range s.nodes {
		if node.Bounds().Intersects(region) {
			nodes = append(nodes, *node)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// View assembles the read-only projection of everything visible in the given
// region: intersecting nodes, arrows with at least one visible endpoint, and
// strokes with at least one point inside. Undo/redo availability is filled
// in by the session, which owns the history.
func (s *Scene) View(region model.Rect) model.SceneView {
	region = region.Normalized()
	view := model.SceneView{
		Nodes: s.NodesInRegion(region),
	}

	visible := make(map[model.NodeID]bool, len(view.Nodes))
	for _, node := range view.Nodes {
		visible[node.ID] = true
	}

	for _, arrow := range s.arrows {
		if visible[arrow.From] || visible[arrow.To] {
			view.Arrows = append(view.Arrows, *arrow)
		}
	}
	sort.Slice(view.Arrows, func(i, j int) bool { return view.Arrows[i].ID < view.Arrows[j].ID })

	for _, stroke := range s.strokes {
		for _, p := range stroke.Points {
			if region.Contains(p) {
				view.Strokes = append(view.Strokes, *stroke.Clone())
				break
			}
		}
	}
	sort.Slice(view.Strokes, func(i, j int) bool { return view.Strokes[i].ID < view.Strokes[j].ID })

	return view
}

// NodePositions returns the position of every node, used as input to the
// layout collaborator when placing a new node.
func (s *Scene) NodePositions() []model.Point {
	positions := make([]model.Point, 0, len(s.nodes))
	for _, node := range s.nodes {
		positions = append(positions, node.Pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Y < positions[j].Y
	})
	return positions
}

// NodeCount returns the number of nodes in the scene.
func (s *Scene) NodeCount() int { return len(s.nodes) }

// ArrowCount returns the number of arrows in the scene.
func (s *Scene) ArrowCount() int { return len(s.arrows) }

// StrokeCount returns the number of strokes in the scene.
func (s *Scene) StrokeCount() int { return len(s.strokes) }

// Equal reports whether two scenes hold identical content, viewports, and
// counters. Used by tests and by the history manager's no-op detection.
func (s *Scene) Equal(other *Scene) bool {
	if other == nil {
		return false
	}
	if s.viewport != other.viewport ||
		s.nextNodeID != other.nextNodeID ||
		s.nextArrowID != other.nextArrowID ||
		s.nextStrokeID != other.nextStrokeID ||
		len(s.nodes) != len(other.nodes) ||
		len(s.arrows) != len(other.arrows) ||
		len(s.strokes) != len(other.strokes) {
		return false
	}
	for id, node := range s.nodes {
		o, ok := other.nodes[id]
		if !ok || !nodesEqual(node, o) {
			return false
		}
	}
	for id, arrow := range s.arrows {
		o, ok := other.arrows[id]
		if !ok || *arrow != *o {
			return false
		}
	}
	for id, stroke := range s.strokes {
		o, ok := other.strokes[id]
		if !ok || !strokesEqual(stroke, o) {
			return false
		}
	}
	return true
}

// nodesEqual compares nodes field by field. Timestamps go through
// time.Equal: decoded timestamps lose the monotonic reading and may carry a
// different location, so struct equality would misreport round-tripped nodes.
func nodesEqual(a, b *model.Node) bool {
	return a.ID == b.ID &&
		a.Kind == b.Kind &&
		a.Pos == b.Pos &&
		a.Size == b.Size &&
		a.Content == b.Content &&
		a.Created.Equal(b.Created) &&
		a.Updated.Equal(b.Updated)
}

func strokesEqual(a, b *model.Stroke) bool {
	if a.ID != b.ID || a.Tool != b.Tool || a.Color != b.Color || a.Width != b.Width || len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}
