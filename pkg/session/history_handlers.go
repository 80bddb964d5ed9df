package session

import (
	"cnfinity/local-app/pkg/model"
)

// HistoryStatus is the result of the history status command.
type HistoryStatus struct {
	Cursor  int  `json:"cursor"`
	Length  int  `json:"length"`
	Depth   int  `json:"depth"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// handleHistoryUndo handles the history undo command, installing the
// previous snapshot as the live scene.
func handleHistoryUndo(s *Session, cmd model.Command) (interface{}, error) {
	if _, err := s.requireDocument(); err != nil {
		return nil, err
	}

	sc, err := s.History.Undo()
	if err != nil {
		return nil, err
	}
	s.installScene(sc)
	return "Undone", nil
}

// handleHistoryRedo handles the history redo command, installing the next
// snapshot as the live scene.
func handleHistoryRedo(s *Session, cmd model.Command) (interface{}, error) {
	if _, err := s.requireDocument(); err != nil {
		return nil, err
	}

	sc, err := s.History.Redo()
	if err != nil {
		return nil, err
	}
	s.installScene(sc)
	return "Redone", nil
}

// handleHistoryStatus handles the history status command
func handleHistoryStatus(s *Session, cmd model.Command) (interface{}, error) {
	if _, err := s.requireDocument(); err != nil {
		return nil, err
	}

	return HistoryStatus{
		Cursor:  s.History.Cursor(),
		Length:  s.History.Len(),
		Depth:   s.History.Depth(),
		CanUndo: s.History.CanUndo(),
		CanRedo: s.History.CanRedo(),
	}, nil
}
