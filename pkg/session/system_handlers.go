package session

import (
	"context"

	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
)

// handleSystemExit handles the system exit and quit commands. An open
// document is saved before the exit signal propagates.
func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Exit requested", log.Fields{"sessionID": s.ID})

	if s.Document != nil {
		if err := s.DataManager.DocumentManager.DocumentSave(s.Document, s.History); err != nil {
			s.logger.Error(ctx, "Failed to save document on exit", log.Fields{"error": err, "documentID": s.Document.ID})
		}
	}
	return "Goodbye!", ErrExitRequested
}
