// Package layout provides node placement for the canvas. The engine treats
// placement as a pure function: it hands over the existing node positions
// and the viewport center, and gets a proposed position back.
package layout

import (
	"math"

	"cnfinity/local-app/pkg/model"
)

// Placer proposes a position for a newly created node.
type Placer interface {
	Place(existing []model.Point, center model.Point) model.Point
}

// CirclePlacer places nodes on concentric rings around the viewport center,
// widening the ring whenever all slots on the current one are taken.
type CirclePlacer struct {
	Radius  float64 // ring spacing
	MinDist float64 // minimum distance to any existing node
}

// NewCirclePlacer creates a CirclePlacer with the given ring spacing. The
// minimum node distance defaults to half the spacing.
func NewCirclePlacer(radius float64) *CirclePlacer {
	return &CirclePlacer{Radius: radius, MinDist: radius / 2}
}

// Place returns the first free slot walking outward ring by ring, starting
// with the center itself.
func (p *CirclePlacer) Place(existing []model.Point, center model.Point) model.Point {
	if p.free(existing, center) {
		return center
	}

	for ring := 1; ; ring++ {
		r := float64(ring) * p.Radius
		slots := ring * 8
		for i := 0; i < slots; i++ {
			angle := 2 * math.Pi * float64(i) / float64(slots)
			candidate := model.Point{
				X: center.X + r*math.Cos(angle),
				Y: center.Y + r*math.Sin(angle),
			}
			if p.free(existing, candidate) {
				return candidate
			}
		}
	}
}

// free reports whether the candidate keeps the minimum distance to every
// existing node.
func (p *CirclePlacer) free(existing []model.Point, candidate model.Point) bool {
	for _, pos := range existing {
		if pos.DistanceTo(candidate) < p.MinDist {
			return false
		}
	}
	return true
}
