package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeKindValid(t *testing.T) {
	assert.True(t, NodeNote.Valid())
	assert.True(t, NodeCode.Valid())
	assert.False(t, NodeKind("sticker").Valid())
	assert.False(t, NodeKind("").Valid())
}

func TestRectNormalizedAndContains(t *testing.T) {
	r := Rect{Min: Point{X: 100, Y: 100}, Max: Point{X: 0, Y: 0}}.Normalized()
	assert.Equal(t, Point{X: 0, Y: 0}, r.Min)
	assert.Equal(t, Point{X: 100, Y: 100}, r.Max)

	assert.True(t, r.Contains(Point{X: 50, Y: 50}))
	assert.True(t, r.Contains(Point{X: 0, Y: 0}))
	assert.False(t, r.Contains(Point{X: 101, Y: 50}))
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 50, 100, 100)
	c := NewRect(200, 200, 10, 10)

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
}

func TestNodeBounds(t *testing.T) {
	n := Node{Pos: Point{X: 10, Y: 20}, Size: Size{W: 100, H: 50}}
	bounds := n.Bounds()
	assert.Equal(t, Point{X: 10, Y: 20}, bounds.Min)
	assert.Equal(t, Point{X: 110, Y: 70}, bounds.Max)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.0001))
	assert.Equal(t, MaxZoom, ClampZoom(99))
	assert.Equal(t, 1.5, ClampZoom(1.5))
}

func TestPointDistanceTo(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	assert.Equal(t, 5.0, a.DistanceTo(b))
}

func TestStrokeCloneIsDeep(t *testing.T) {
	s := &Stroke{ID: 1, Tool: ToolMarker, Points: []Point{{X: 1, Y: 1}}, Color: "#000", Width: 2}
	clone := s.Clone()
	clone.Points[0].X = 99

	assert.Equal(t, 1.0, s.Points[0].X)
}
