package session

import (
	"fmt"
	"strconv"

	"cnfinity/local-app/pkg/event"
	"cnfinity/local-app/pkg/model"
)

// handleArrowAdd handles the arrow add command
func handleArrowAdd(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	from, err := parseID(cmd.Args[0], "source node")
	if err != nil {
		return nil, err
	}
	to, err := parseID(cmd.Args[1], "target node")
	if err != nil {
		return nil, err
	}
	curvature := 0.0
	if len(cmd.Args) == 3 {
		curvature, err = parseCoord(cmd.Args[2], "curvature")
		if err != nil {
			return nil, err
		}
	}

	arrow, err := sc.ArrowAdd(model.NodeID(from), model.NodeID(to), curvature)
	if err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.ArrowAdded, Data: *arrow})
	return fmt.Sprintf("Arrow %d added: %d -> %d", arrow.ID, from, to), nil
}

// handleArrowDelete handles the arrow delete command
func handleArrowDelete(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "arrow")
	if err != nil {
		return nil, err
	}

	if err := sc.ArrowDelete(model.ArrowID(id)); err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.ArrowDeleted, Data: model.ArrowID(id)})
	return fmt.Sprintf("Arrow %d deleted", id), nil
}

// handleArrowList handles the arrow list command
func handleArrowList(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}
	return sc.ArrowList(), nil
}

// handleStrokeAdd handles the stroke add command. Strokes started over the
// command surface are always marker strokes; eraser input maps to the erase
// operation instead.
func handleStrokeAdd(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	width, err := strconv.ParseFloat(cmd.Args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stroke width: %s", cmd.Args[1])
	}
	x, err := parseCoord(cmd.Args[2], "x coordinate")
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(cmd.Args[3], "y coordinate")
	if err != nil {
		return nil, err
	}

	stroke, err := sc.StrokeAdd(model.ToolMarker, cmd.Args[0], width, model.Point{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.StrokeAdded, Data: *stroke})
	return fmt.Sprintf("Stroke %d started at (%.1f, %.1f)", stroke.ID, x, y), nil
}

// handleStrokePoint handles the stroke point command
func handleStrokePoint(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "stroke")
	if err != nil {
		return nil, err
	}
	x, err := parseCoord(cmd.Args[1], "x coordinate")
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(cmd.Args[2], "y coordinate")
	if err != nil {
		return nil, err
	}

	if err := sc.StrokePointAdd(model.StrokeID(id), model.Point{X: x, Y: y}); err != nil {
		return nil, err
	}
	s.record()
	return fmt.Sprintf("Stroke %d extended to (%.1f, %.1f)", id, x, y), nil
}

// handleStrokeErase handles the stroke erase command. Every stroke touched
// within the radius is removed whole; undo brings them all back.
func handleStrokeErase(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	x, err := parseCoord(cmd.Args[0], "x coordinate")
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(cmd.Args[1], "y coordinate")
	if err != nil {
		return nil, err
	}
	radius, err := parseCoord(cmd.Args[2], "radius")
	if err != nil {
		return nil, err
	}

	erased, err := sc.EraseAt(model.Point{X: x, Y: y}, radius)
	if err != nil {
		return nil, err
	}
	s.record()
	if len(erased) > 0 {
		s.DataManager.EventManager.Publish(event.Event{Type: event.StrokeErased, Data: erased})
	}
	return fmt.Sprintf("Erased %d stroke(s)", len(erased)), nil
}

// handleStrokeList handles the stroke list command
func handleStrokeList(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}
	return sc.StrokeList(), nil
}
