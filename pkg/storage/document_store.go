package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

// ErrDocumentNotFound is returned when no stored document matches the query.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore defines the interface for document-related storage
// operations. Saving always writes the full snapshot log; loading runs the
// same integrity validation as the file codec.
type DocumentStore interface {
	DocumentSave(info *model.DocumentInfo, hist *history.History) error
	DocumentLoad(id string, depth int) (*model.DocumentInfo, *scene.Scene, *history.History, error)
	DocumentFindByName(name string) (*model.DocumentInfo, error)
	DocumentList() ([]model.DocumentInfo, error)
	DocumentDelete(id string) error
}

// DocumentStorage implements the DocumentStore interface on top of the SQL
// database.
type DocumentStorage struct {
	storage *Storage
	logger  *log.Logger
}

// NewDocumentStorage creates a new DocumentStorage instance.
func NewDocumentStorage(storage *Storage) *DocumentStorage {
	return &DocumentStorage{
		storage: storage,
		logger:  storage.logger,
	}
}

// DocumentSave stores the document metadata and its full snapshot log in one
// transaction, replacing any prior rows for the same document.
func (s *DocumentStorage) DocumentSave(info *model.DocumentInfo, hist *history.History) error {
	const op = "save document"
	ctx := context.Background()
	s.logger.Info(ctx, "Saving document", log.Fields{"documentID": info.ID, "name": info.Name, "snapshots": hist.Len()})

	records, cursor := encodeHistory(hist)
	checksum, err := computeChecksum(cursor, records)
	if err != nil {
		s.logger.Error(ctx, "Failed to compute document checksum", log.Fields{"error": err, "documentID": info.ID})
		return persistErr(KindIO, op, err)
	}

	db := s.storage.GetDatabase()
	if err := db.Begin(); err != nil {
		return persistErr(KindIO, op, err)
	}
	defer db.Rollback()

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO documents (id, name, cursor, checksum, created, updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, cursor = excluded.cursor,
			checksum = excluded.checksum, updated = excluded.updated`,
		info.ID, info.Name, cursor, checksum, info.Created, now)
	if err != nil {
		s.logger.Error(ctx, "Failed to upsert document row", log.Fields{"error": err, "documentID": info.ID})
		return persistErr(KindIO, op, err)
	}

	if _, err := db.Exec("DELETE FROM snapshots WHERE document_id = ?", info.ID); err != nil {
		s.logger.Error(ctx, "Failed to clear prior snapshots", log.Fields{"error": err, "documentID": info.ID})
		return persistErr(KindIO, op, err)
	}

	for position, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return persistErr(KindIO, op, err)
		}
		if _, err := db.Exec("INSERT INTO snapshots (document_id, position, payload) VALUES (?, ?, ?)",
			info.ID, position, payload); err != nil {
			s.logger.Error(ctx, "Failed to insert snapshot row", log.Fields{"error": err, "documentID": info.ID, "position": position})
			return persistErr(KindIO, op, err)
		}
	}

	if err := db.Commit(); err != nil {
		return persistErr(KindIO, op, err)
	}

	info.Updated = now
	s.logger.Info(ctx, "Document saved successfully", log.Fields{"documentID": info.ID, "snapshots": len(records)})
	return nil
}

// DocumentLoad retrieves a document and rebuilds its scene and history,
// verifying the stored checksum and every snapshot's integrity. A document
// that fails validation fails the whole load.
func (s *DocumentStorage) DocumentLoad(id string, depth int) (*model.DocumentInfo, *scene.Scene, *history.History, error) {
	const op = "load document"
	ctx := context.Background()
	s.logger.Info(ctx, "Loading document", log.Fields{"documentID": id})

	db := s.storage.GetDatabase()

	info := &model.DocumentInfo{}
	var cursor int
	var checksum string
	err := db.QueryRow("SELECT id, name, cursor, checksum, created, updated FROM documents WHERE id = ?", id).
		Scan(&info.ID, &info.Name, &cursor, &checksum, &info.Created, &info.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil, ErrDocumentNotFound
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to read document row", log.Fields{"error": err, "documentID": id})
		return nil, nil, nil, persistErr(KindIO, op, err)
	}

	rows, err := db.Query("SELECT payload FROM snapshots WHERE document_id = ? ORDER BY position", id)
	if err != nil {
		s.logger.Error(ctx, "Failed to read snapshot rows", log.Fields{"error": err, "documentID": id})
		return nil, nil, nil, persistErr(KindIO, op, err)
	}
	defer rows.Close()

	var records []snapshotRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, nil, nil, persistErr(KindIO, op, err)
		}
		var rec snapshotRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, nil, nil, persistErr(KindCorruptHistory, op, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, persistErr(KindIO, op, err)
	}

	stored, err := computeChecksum(cursor, records)
	if err != nil {
		return nil, nil, nil, persistErr(KindIO, op, err)
	}
	if stored != checksum {
		s.logger.Error(ctx, "Document checksum mismatch", log.Fields{"documentID": id})
		return nil, nil, nil, persistErrf(KindCorruptHistory, op, "checksum mismatch")
	}

	sc, hist, err := decodeRecords(records, cursor, depth)
	if err != nil {
		s.logger.Error(ctx, "Document failed validation", log.Fields{"error": err, "documentID": id})
		return nil, nil, nil, err
	}

	s.logger.Info(ctx, "Document loaded successfully", log.Fields{"documentID": id, "snapshots": hist.Len()})
	return info, sc, hist, nil
}

// DocumentFindByName resolves a document's metadata by its unique name.
func (s *DocumentStorage) DocumentFindByName(name string) (*model.DocumentInfo, error) {
	db := s.storage.GetDatabase()

	info := &model.DocumentInfo{}
	err := db.QueryRow("SELECT id, name, created, updated FROM documents WHERE name = ?", name).
		Scan(&info.ID, &info.Name, &info.Created, &info.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, persistErr(KindIO, "find document", err)
	}
	return info, nil
}

// DocumentList returns metadata for all stored documents ordered by name.
func (s *DocumentStorage) DocumentList() ([]model.DocumentInfo, error) {
	db := s.storage.GetDatabase()

	rows, err := db.Query("SELECT id, name, created, updated FROM documents ORDER BY name")
	if err != nil {
		return nil, persistErr(KindIO, "list documents", err)
	}
	defer rows.Close()

	var infos []model.DocumentInfo
	for rows.Next() {
		var info model.DocumentInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Created, &info.Updated); err != nil {
			return nil, persistErr(KindIO, "list documents", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(KindIO, "list documents", err)
	}
	return infos, nil
}

// DocumentDelete removes a document and its snapshots.
func (s *DocumentStorage) DocumentDelete(id string) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Deleting document", log.Fields{"documentID": id})

	db := s.storage.GetDatabase()
	result, err := db.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete document", log.Fields{"error": err, "documentID": id})
		return persistErr(KindIO, "delete document", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persistErr(KindIO, "delete document", err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	s.logger.Info(ctx, "Document deleted successfully", log.Fields{"documentID": id})
	return nil
}
