package session

import (
	"fmt"
	"strconv"
	"strings"

	"cnfinity/local-app/pkg/event"
	"cnfinity/local-app/pkg/model"
)

// parseID parses a positive integer id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, arg)
	}
	return id, nil
}

// parseCoord parses a float coordinate argument.
func parseCoord(arg, what string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", what, arg)
	}
	return v, nil
}

// parseRegion parses four x y w h arguments into a rectangle.
func parseRegion(args []string) (model.Rect, error) {
	x, err := parseCoord(args[0], "region x")
	if err != nil {
		return model.Rect{}, err
	}
	y, err := parseCoord(args[1], "region y")
	if err != nil {
		return model.Rect{}, err
	}
	w, err := parseCoord(args[2], "region width")
	if err != nil {
		return model.Rect{}, err
	}
	h, err := parseCoord(args[3], "region height")
	if err != nil {
		return model.Rect{}, err
	}
	return model.NewRect(x, y, w, h), nil
}

// handleNodeAdd handles the node add command. With explicit coordinates the
// node lands exactly there; without them the placer picks a free spot around
// the viewport center.
func handleNodeAdd(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	kind := model.NodeKind(cmd.Args[0])
	rest := cmd.Args[1:]

	var pos model.Point
	placed := false
	if len(rest) >= 2 {
		x, xerr := strconv.ParseFloat(rest[0], 64)
		y, yerr := strconv.ParseFloat(rest[1], 64)
		if xerr == nil && yerr == nil {
			pos = model.Point{X: x, Y: y}
			placed = true
			rest = rest[2:]
		}
	}
	if !placed {
		center := sc.Viewport().Pan
		pos = s.Placer.Place(sc.NodePositions(), center)
	}
	content := strings.Join(rest, " ")

	size := model.Size{
		W: s.DataManager.Config.DefaultNodeWidth,
		H: s.DataManager.Config.DefaultNodeHeight,
	}
	node, err := sc.NodeAdd(kind, pos, size, content)
	if err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.NodeAdded, Data: *node})
	return fmt.Sprintf("Node %d added at (%.1f, %.1f)", node.ID, node.Pos.X, node.Pos.Y), nil
}

// handleNodeMove handles the node move command
func handleNodeMove(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "node")
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

	if err := sc.NodeMove(model.NodeID(id), model.Point{X: x, Y: y}); err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.NodeUpdated, Data: model.NodeID(id)})
	return fmt.Sprintf("Node %d moved to (%.1f, %.1f)", id, x, y), nil
}

// handleNodeEdit handles the node edit command
func handleNodeEdit(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "node")
	if err != nil {
		return nil, err
	}
	content := strings.Join(cmd.Args[1:], " ")

	if err := sc.NodeContentEdit(model.NodeID(id), content); err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.NodeUpdated, Data: model.NodeID(id)})
	return fmt.Sprintf("Node %d updated", id), nil
}

// handleNodeDelete handles the node delete command. Arrows attached to the
// node are removed with it.
func handleNodeDelete(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "node")
	if err != nil {
		return nil, err
	}

	if err := sc.NodeDelete(model.NodeID(id)); err != nil {
		return nil, err
	}
	s.record()
	s.DataManager.EventManager.Publish(event.Event{Type: event.NodeDeleted, Data: model.NodeID(id)})
	return fmt.Sprintf("Node %d deleted", id), nil
}

// handleNodeGet handles the node get command
func handleNodeGet(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	id, err := parseID(cmd.Args[0], "node")
	if err != nil {
		return nil, err
	}
	return sc.NodeGet(model.NodeID(id))
}

// handleNodeList handles the node list command, optionally restricted to a
// region of the canvas.
func handleNodeList(s *Session, cmd model.Command) (interface{}, error) {
	sc, err := s.requireDocument()
	if err != nil {
		return nil, err
	}

	if len(cmd.Args) == 4 {
		region, err := parseRegion(cmd.Args)
		if err != nil {
			return nil, err
		}
		return sc.NodesInRegion(region), nil
	}
	return sc.NodeList(), nil
}
