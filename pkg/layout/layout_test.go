package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cnfinity/local-app/pkg/model"
)

func TestPlaceFirstNodeOnCenter(t *testing.T) {
	p := NewCirclePlacer(100)
	center := model.Point{X: 50, Y: -20}

	got := p.Place(nil, center)
	assert.Equal(t, center, got)
}

func TestPlaceKeepsMinimumDistance(t *testing.T) {
	p := NewCirclePlacer(100)
	center := model.Point{}

	existing := []model.Point{center}
	for i := 0; i < 20; i++ {
		candidate := p.Place(existing, center)
		for _, pos := range existing {
			assert.GreaterOrEqual(t, pos.DistanceTo(candidate), p.MinDist)
		}
		existing = append(existing, candidate)
	}
}

func TestPlaceWidensRings(t *testing.T) {
	p := NewCirclePlacer(100)
	center := model.Point{}

	// Fill the center and the whole first ring
	existing := []model.Point{center}
	for i := 0; i < 8; i++ {
		existing = append(existing, p.Place(existing, center))
	}

	// The next node must land beyond the first ring
	next := p.Place(existing, center)
	assert.Greater(t, center.DistanceTo(next), p.Radius)
}

func TestPlaceUsesFreeCenterWhenNodesExist(t *testing.T) {
	p := NewCirclePlacer(100)
	center := model.Point{}

	// Existing nodes far from the center must not push placement onto a ring.
	existing := []model.Point{{X: 1000, Y: 1000}, {X: -1000, Y: 500}}
	assert.Equal(t, center, p.Place(existing, center))
}
