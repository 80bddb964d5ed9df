package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cnfinity/local-app/pkg/event"
	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
	"cnfinity/local-app/pkg/storage"
)

// DocumentManager handles document lifecycle: creation, opening, saving,
// listing, deleting, and portable export/import.
type DocumentManager struct {
	store        storage.DocumentStore
	eventManager *event.EventManager
	config       *model.Config
	logger       *log.Logger
}

// NewDocumentManager creates a new DocumentManager instance.
func NewDocumentManager(store storage.DocumentStore, em *event.EventManager, cfg *model.Config, logger *log.Logger) (*DocumentManager, error) {
	if store == nil {
		return nil, errors.New("document store is required")
	}
	return &DocumentManager{
		store:        store,
		eventManager: em,
		config:       cfg,
		logger:       logger,
	}, nil
}

// DocumentNew creates, persists, and returns a fresh document with an empty
// scene and a single-snapshot history.
func (dm *DocumentManager) DocumentNew(name string) (*model.DocumentInfo, *scene.Scene, *history.History, error) {
	ctx := context.Background()
	dm.logger.Info(ctx, "Creating new document", log.Fields{"name": name})

	if name == "" {
		return nil, nil, nil, errors.New("document name is required")
	}
	if _, err := dm.store.DocumentFindByName(name); err == nil {
		return nil, nil, nil, fmt.Errorf("document '%s' already exists", name)
	} else if !errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, nil, nil, fmt.Errorf("failed to check for existing document: %w", err)
	}

	now := time.Now()
	info := &model.DocumentInfo{
		ID:      uuid.NewString(),
		Name:    name,
		Created: now,
		Updated: now,
	}

	sc := scene.New()
	hist := history.New(dm.config.HistoryDepth, sc)

	if err := dm.store.DocumentSave(info, hist); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save new document: %w", err)
	}

	dm.eventManager.Publish(event.Event{Type: event.DocumentAdded, Data: *info})
	dm.logger.Info(ctx, "Document created", log.Fields{"documentID": info.ID, "name": name})
	return info, sc, hist, nil
}

// DocumentOpen loads a document by name or id, rebuilding its scene and
// history with full integrity validation.
func (dm *DocumentManager) DocumentOpen(nameOrID string) (*model.DocumentInfo, *scene.Scene, *history.History, error) {
	ctx := context.Background()
	dm.logger.Info(ctx, "Opening document", log.Fields{"document": nameOrID})

	id := nameOrID
	if info, err := dm.store.DocumentFindByName(nameOrID); err == nil {
		id = info.ID
	} else if !errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, nil, nil, fmt.Errorf("failed to resolve document name: %w", err)
	}

	info, sc, hist, err := dm.store.DocumentLoad(id, dm.config.HistoryDepth)
	if err != nil {
		dm.logger.Error(ctx, "Failed to open document", log.Fields{"error": err, "document": nameOrID})
		return nil, nil, nil, err
	}

	dm.eventManager.Publish(event.Event{Type: event.DocumentSelected, Data: *info})
	return info, sc, hist, nil
}

// DocumentSave persists the current history of an open document.
func (dm *DocumentManager) DocumentSave(info *model.DocumentInfo, hist *history.History) error {
	if err := dm.store.DocumentSave(info, hist); err != nil {
		return err
	}
	dm.eventManager.Publish(event.Event{Type: event.DocumentSaved, Data: *info})
	return nil
}

// DocumentList returns metadata for all stored documents.
func (dm *DocumentManager) DocumentList() ([]model.DocumentInfo, error) {
	return dm.store.DocumentList()
}

// DocumentDelete removes a document by name or id.
func (dm *DocumentManager) DocumentDelete(nameOrID string) error {
	ctx := context.Background()
	dm.logger.Info(ctx, "Deleting document", log.Fields{"document": nameOrID})

	id := nameOrID
	if info, err := dm.store.DocumentFindByName(nameOrID); err == nil {
		id = info.ID
	} else if !errors.Is(err, storage.ErrDocumentNotFound) {
		return fmt.Errorf("failed to resolve document name: %w", err)
	}

	if err := dm.store.DocumentDelete(id); err != nil {
		return err
	}
	dm.eventManager.Publish(event.Event{Type: event.DocumentDeleted, Data: id})
	return nil
}

// DocumentExport writes an open document's history to a portable file.
func (dm *DocumentManager) DocumentExport(hist *history.History, filename, format string) error {
	if err := storage.FileExport(hist, filename, format); err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}
	return nil
}

// DocumentImport reads a portable file and stores its content as a new
// document under the given name. Node, arrow, and stroke ids inside the
// imported history are preserved exactly; only the document id is new.
func (dm *DocumentManager) DocumentImport(name, filename, format string) (*model.DocumentInfo, *scene.Scene, *history.History, error) {
	ctx := context.Background()
	dm.logger.Info(ctx, "Importing document", log.Fields{"name": name, "filename": filename})

	sc, hist, err := storage.FileImport(filename, format, dm.config.HistoryDepth)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to import document: %w", err)
	}

	// Replace an existing document with the same name, as a re-import does.
	if existing, err := dm.store.DocumentFindByName(name); err == nil {
		if err := dm.store.DocumentDelete(existing.ID); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to replace existing document: %w", err)
		}
	} else if !errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, nil, nil, fmt.Errorf("failed to check for existing document: %w", err)
	}

	now := time.Now()
	info := &model.DocumentInfo{
		ID:      uuid.NewString(),
		Name:    name,
		Created: now,
		Updated: now,
	}
	if err := dm.store.DocumentSave(info, hist); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save imported document: %w", err)
	}

	dm.eventManager.Publish(event.Event{Type: event.DocumentAdded, Data: *info})
	return info, sc, hist, nil
}
