// Package storage provides functionality for persisting and retrieving
// CnF-Infinity documents. This file implements the wire codec that turns a
// document's history into a stable, versioned representation and back,
// validating referential integrity on the way in.
package storage

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"

	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

// SchemaVersion is the current on-disk schema. Loading a container with a
// higher version fails with KindUnsupportedVersion instead of attempting a
// lossy best-effort parse.
const SchemaVersion = 1

// snapshotRecord is the serialized form of one history snapshot. Nodes,
// arrows, and strokes are sorted slices rather than maps so the encoding is
// deterministic and ids survive exactly. The id counters travel with every
// snapshot so deleted ids stay retired after a reload.
type snapshotRecord struct {
	Seq          uint64         `json:"seq"`
	SceneVersion uint64         `json:"scene_version"`
	Taken        time.Time      `json:"taken"`
	Nodes        []model.Node   `json:"nodes"`
	Arrows       []model.Arrow  `json:"arrows"`
	Strokes      []model.Stroke `json:"strokes"`
	Viewport     model.Viewport `json:"viewport"`
	NextNodeID   int64          `json:"next_node_id"`
	NextArrowID  int64          `json:"next_arrow_id"`
	NextStrokeID int64          `json:"next_stroke_id"`
}

// fileContainer is the portable document file layout.
type fileContainer struct {
	SchemaVersion int              `json:"schema_version"`
	Checksum      string           `json:"checksum"`
	Cursor        int              `json:"cursor"`
	Snapshots     []snapshotRecord `json:"snapshots"`
}

// encodeSnapshot converts a snapshot to its wire form.
func encodeSnapshot(sn *history.Snapshot) snapshotRecord {
	sc := sn.Scene()
	nextNode, nextArrow, nextStroke := sc.Counters()
	return snapshotRecord{
		Seq:          sn.Seq(),
		SceneVersion: sn.SceneVersion(),
		Taken:        sn.Taken(),
		Nodes:        sc.NodeList(),
		Arrows:       sc.ArrowList(),
		Strokes:      sc.StrokeList(),
		Viewport:     sc.Viewport(),
		NextNodeID:   nextNode,
		NextArrowID:  nextArrow,
		NextStrokeID: nextStroke,
	}
}

// encodeHistory converts a full history to wire records plus its cursor.
func encodeHistory(h *history.History) ([]snapshotRecord, int) {
	snapshots := h.Snapshots()
	records := make([]snapshotRecord, len(snapshots))
	for i, sn := range snapshots {
		records[i] = encodeSnapshot(sn)
	}
	return records, h.Cursor()
}

// decodeSnapshot validates and rebuilds one snapshot. Any integrity failure
// inside a snapshot corrupts the whole document.
func decodeSnapshot(rec snapshotRecord) (*history.Snapshot, error) {
	sc, err := scene.Restore(rec.Nodes, rec.Arrows, rec.Strokes, rec.Viewport,
		rec.NextNodeID, rec.NextArrowID, rec.NextStrokeID, rec.SceneVersion)
	if err != nil {
		return nil, err
	}
	return history.RestoredSnapshot(rec.Seq, rec.SceneVersion, rec.Taken, sc), nil
}

// decodeRecords rebuilds the live scene and history from wire records,
// failing closed on the first invalid snapshot.
func decodeRecords(records []snapshotRecord, cursor, depth int) (*scene.Scene, *history.History, error) {
	const op = "decode document"

	if len(records) == 0 {
		return nil, nil, persistErrf(KindCorruptHistory, op, "document holds no snapshots")
	}
	if cursor < 0 || cursor >= len(records) {
		return nil, nil, persistErrf(KindCorruptHistory, op, "cursor %d out of range [0, %d)", cursor, len(records))
	}

	snapshots := make([]*history.Snapshot, len(records))
	for i, rec := range records {
		sn, err := decodeSnapshot(rec)
		if err != nil {
			return nil, nil, persistErrf(KindCorruptHistory, op, "snapshot %d (seq %d): %v", i, rec.Seq, err)
		}
		snapshots[i] = sn
	}

	hist, err := history.Rebuild(snapshots, cursor, depth)
	if err != nil {
		return nil, nil, persistErr(KindCorruptHistory, op, err)
	}
	return hist.Current(), hist, nil
}

// computeChecksum hashes the cursor and snapshot records with BLAKE2b-256.
// The checksum detects corruption of the stored payload independently of
// the structural validation done on decode.
func computeChecksum(cursor int, records []snapshotRecord) (string, error) {
	payload, err := json.Marshal(struct {
		Cursor    int              `json:"cursor"`
		Snapshots []snapshotRecord `json:"snapshots"`
	}{Cursor: cursor, Snapshots: records})
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// EncodeDocument serializes a document's full history into the portable
// container format.
func EncodeDocument(h *history.History) ([]byte, error) {
	const op = "encode document"

	records, cursor := encodeHistory(h)
	checksum, err := computeChecksum(cursor, records)
	if err != nil {
		return nil, persistErr(KindIO, op, err)
	}

	container := fileContainer{
		SchemaVersion: SchemaVersion,
		Checksum:      checksum,
		Cursor:        cursor,
		Snapshots:     records,
	}
	data, err := json.MarshalIndent(container, "", "  ")
	if err != nil {
		return nil, persistErr(KindIO, op, err)
	}
	return data, nil
}

// DecodeDocument parses a portable container, gates on the schema version,
// verifies the checksum, and rebuilds the scene and history. The returned
// scene is the snapshot at the cursor.
func DecodeDocument(data []byte, depth int) (*scene.Scene, *history.History, error) {
	const op = "decode document"

	// Probe the schema version before trusting the rest of the layout.
	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, persistErr(KindCorruptHistory, op, err)
	}
	if probe.SchemaVersion > SchemaVersion {
		return nil, nil, persistErrf(KindUnsupportedVersion, op, "schema version %d is newer than supported version %d", probe.SchemaVersion, SchemaVersion)
	}
	if probe.SchemaVersion < 1 {
		return nil, nil, persistErrf(KindCorruptHistory, op, "invalid schema version %d", probe.SchemaVersion)
	}

	var container fileContainer
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, nil, persistErr(KindCorruptHistory, op, err)
	}

	checksum, err := computeChecksum(container.Cursor, container.Snapshots)
	if err != nil {
		return nil, nil, persistErr(KindIO, op, err)
	}
	if checksum != container.Checksum {
		return nil, nil, persistErrf(KindCorruptHistory, op, "checksum mismatch")
	}

	return decodeRecords(container.Snapshots, container.Cursor, depth)
}

// IsPersistKind reports whether err is a PersistError of the given kind.
func IsPersistKind(err error, kind PersistErrorKind) bool {
	var pe *PersistError
	return errors.As(err, &pe) && pe.Kind == kind
}
