// Package model defines the data structures used throughout the CnF-Infinity application.
package model

import (
	"math"
	"time"
)

// NodeID identifies a node on the canvas. IDs are monotonic per document and
// never reused after deletion within a document lifetime.
type NodeID int64

// ArrowID identifies an arrow connecting two nodes.
type ArrowID int64

// StrokeID identifies a freehand stroke.
type StrokeID int64

// NodeKind represents the type of content a node holds.
type NodeKind string

const (
	NodeNote NodeKind = "note"
	NodeCode NodeKind = "code"
)

// Valid reports whether the kind is one of the known node kinds.
func (k NodeKind) Valid() bool {
	return k == NodeNote || k == NodeCode
}

// Tool represents the drawing tool that produced a stroke.
type Tool string

const (
	ToolMarker Tool = "marker"
	ToolEraser Tool = "eraser"
)

// Point is a position on the infinite canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Size is the width and height of a node box.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle on the canvas.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewRect builds a rectangle from an origin and extent, normalizing negative extents.
func NewRect(x, y, w, h float64) Rect {
	r := Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
	return r.Normalized()
}

// Normalized returns the rectangle with Min <= Max on both axes.
func (r Rect) Normalized() Rect {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

// Node represents a single note or code box on the canvas.
type Node struct {
	ID      NodeID    `json:"id"`
	Kind    NodeKind  `json:"kind"`
	Pos     Point     `json:"pos"`
	Size    Size      `json:"size"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Bounds returns the rectangle occupied by the node.
func (n *Node) Bounds() Rect {
	return NewRect(n.Pos.X, n.Pos.Y, n.Size.W, n.Size.H)
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// Arrow represents a curved connection between two nodes. Curvature is a
// signed bow factor; the renderer derives the quadratic control point from it.
type Arrow struct {
	ID        ArrowID `json:"id"`
	From      NodeID  `json:"from"`
	To        NodeID  `json:"to"`
	Curvature float64 `json:"curvature"`
}

// Clone returns a deep copy of the arrow.
func (a *Arrow) Clone() *Arrow {
	c := *a
	return &c
}

// Stroke represents a freehand marker stroke as an ordered point sequence.
type Stroke struct {
	ID     StrokeID `json:"id"`
	Tool   Tool     `json:"tool"`
	Points []Point  `json:"points"`
	Color  string   `json:"color"`
	Width  float64  `json:"width"`
}

// Clone returns a deep copy of the stroke including its point slice.
func (s *Stroke) Clone() *Stroke {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return &c
}

// Zoom limits of the canvas view.
const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// Viewport holds the pan offset and zoom level of the canvas view.
type Viewport struct {
	Pan  Point   `json:"pan"`
	Zoom float64 `json:"zoom"`
}

// ClampZoom restricts a zoom value to the supported range.
func ClampZoom(zoom float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, zoom))
}

// SceneView is the read-only projection handed to rendering collaborators:
// everything visible in a viewport rectangle plus toolbar state.
type SceneView struct {
	Nodes   []Node   `json:"nodes"`
	Arrows  []Arrow  `json:"arrows"`
	Strokes []Stroke `json:"strokes"`
	CanUndo bool     `json:"can_undo"`
	CanRedo bool     `json:"can_redo"`
}
