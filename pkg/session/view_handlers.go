package session

import (
	"fmt"

	"cnfinity/local-app/pkg/model"
)

// Default screen extent assumed when view show is called without an explicit
// region. The visible world rectangle is this extent divided by zoom,
// centered on the pan offset.
const (
	defaultViewWidth  = 1920.0
	defaultViewHeight = 1080.0
)

// handleViewPan handles the view pan command. Viewport changes are not
// recorded in history.
func handleViewPan(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	dx, err := parseCoord(cmd.Args[0], "pan dx")
	if err != nil {
		return nil, err
	}
	dy, err := parseCoord(cmd.Args[1], "pan dy")
	if err != nil {
		return nil, err
	}

	vp := sc.Viewport()
	vp.Pan.X += dx
	vp.Pan.Y += dy
	sc.ViewportSet(vp)
	return fmt.Sprintf("Viewport panned to (%.1f, %.1f)", vp.Pan.X, vp.Pan.Y), nil
}

// handleViewZoom handles the view zoom command. The factor multiplies the
// current zoom and the result is clamped to the supported range.
func handleViewZoom(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	factor, err := parseCoord(cmd.Args[0], "zoom factor")
	if err != nil {
		return nil, err
	}
	if factor <= 0 {
		return nil, fmt.Errorf("zoom factor must be positive, got %g", factor)
	}

	vp := sc.Viewport()
	vp.Zoom *= factor
	sc.ViewportSet(vp)
	return fmt.Sprintf("Zoom set to %.2f", sc.Viewport().Zoom), nil
}

// handleViewShow handles the view show command: it assembles the read-only
// projection of the visible region, with undo/redo availability filled in
// from the session's history.
func handleViewShow(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	var region model.Rect
	if len(cmd.Args) == 4 {
		region, err = parseRegion(cmd.Args)
		if err != nil {
			return nil, err
		}
	} else {
		vp := sc.Viewport()
		w := defaultViewWidth / vp.Zoom
		h := defaultViewHeight / vp.Zoom
		region = model.NewRect(vp.Pan.X-w/2, vp.Pan.Y-h/2, w, h)
	}

	view := sc.View(region)
	view.CanUndo = s.History.CanUndo()
	view.CanRedo = s.History.CanRedo()
	return view, nil
}
