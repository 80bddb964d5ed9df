// Package data provides data management functionality for the CnF-Infinity
// application. It coordinates document operations between the session layer
// and the storage backend.
package data

import (
	"fmt"

	"cnfinity/local-app/pkg/event"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/storage"
)

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	DocumentManager *DocumentManager
	EventManager    *event.EventManager
	Config          *model.Config
	Logger          *log.Logger
}

// NewDataManager creates a new Manager instance
func NewDataManager(store storage.DocumentStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	// Initialize DocumentManager
	var err error
	m.DocumentManager, err = NewDocumentManager(store, eventManager, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create DocumentManager: %w", err)
	}

	return m, nil
}
