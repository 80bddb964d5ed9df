package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

// buildHistory creates a scene with a few edits and an undo, so the cursor
// sits in the middle of the snapshot log.
func buildHistory(t *testing.T) (*scene.Scene, *history.History) {
	t.Helper()
	s := scene.New()
	h := history.New(10, s)

	n1, err := s.NodeAdd(model.NodeNote, model.Point{X: 1, Y: 2}, model.Size{W: 160, H: 90}, "first")
	require.NoError(t, err)
	require.True(t, h.Record(s))

	n2, err := s.NodeAdd(model.NodeCode, model.Point{X: 300, Y: 0}, model.Size{W: 160, H: 90}, "second")
	require.NoError(t, err)
	require.True(t, h.Record(s))

	_, err = s.ArrowAdd(n1.ID, n2.ID, 0.25)
	require.NoError(t, err)
	require.True(t, h.Record(s))

	_, err = s.StrokeAdd(model.ToolMarker, "#ff0000", 2, model.Point{X: 10, Y: 10})
	require.NoError(t, err)
	require.True(t, h.Record(s))

	undone, err := h.Undo()
	require.NoError(t, err)
	return undone, h
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	liveScene, h := buildHistory(t)

	data, err := EncodeDocument(h)
	require.NoError(t, err)

	decodedScene, decodedHist, err := DecodeDocument(data, 10)
	require.NoError(t, err)

	assert.True(t, liveScene.Equal(decodedScene))
	assert.Equal(t, h.Len(), decodedHist.Len())
	assert.Equal(t, h.Cursor(), decodedHist.Cursor())
	assert.Equal(t, h.CanUndo(), decodedHist.CanUndo())
	assert.Equal(t, h.CanRedo(), decodedHist.CanRedo())

	// The id counters survive, so new ids keep advancing
	nn, na, ns := liveScene.Counters()
	dn, da, ds := decodedScene.Counters()
	assert.Equal(t, nn, dn)
	assert.Equal(t, na, da)
	assert.Equal(t, ns, ds)
}

func TestDecodeRedoAfterReload(t *testing.T) {
	_, h := buildHistory(t)

	data, err := EncodeDocument(h)
	require.NoError(t, err)

	_, decodedHist, err := DecodeDocument(data, 10)
	require.NoError(t, err)

	// The undone edit is still redoable after the round trip
	redone, err := decodedHist.Redo()
	require.NoError(t, err)
	assert.Equal(t, 1, redone.StrokeCount())
}

func TestDecodeRejectsFutureSchemaVersion(t *testing.T) {
	data := []byte(`{"schema_version": 999, "checksum": "", "cursor": 0, "snapshots": []}`)

	_, _, err := DecodeDocument(data, 10)
	assert.True(t, IsPersistKind(err, KindUnsupportedVersion), "got %v", err)
}

func TestDecodeRejectsInvalidSchemaVersion(t *testing.T) {
	data := []byte(`{"schema_version": 0, "checksum": "", "cursor": 0, "snapshots": []}`)

	_, _, err := DecodeDocument(data, 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}

func TestDecodeRejectsChecksumMismatch(t *testing.T) {
	_, h := buildHistory(t)
	data, err := EncodeDocument(h)
	require.NoError(t, err)

	var container map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &container))
	container["checksum"] = json.RawMessage(`"0000"`)
	tampered, err := json.Marshal(container)
	require.NoError(t, err)

	_, _, err = DecodeDocument(tampered, 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := DecodeDocument([]byte("not json at all"), 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}

func TestDecodeRejectsDanglingArrowSnapshot(t *testing.T) {
	records := []snapshotRecord{
		{
			Seq:          1,
			Nodes:        []model.Node{{ID: 1, Kind: model.NodeNote, Size: model.Size{W: 10, H: 10}}},
			Arrows:       []model.Arrow{{ID: 1, From: 1, To: 42}},
			Viewport:     model.Viewport{Zoom: 1},
			NextNodeID:   2,
			NextArrowID:  2,
			NextStrokeID: 1,
		},
	}
	checksum, err := computeChecksum(0, records)
	require.NoError(t, err)

	data, err := json.Marshal(fileContainer{
		SchemaVersion: SchemaVersion,
		Checksum:      checksum,
		Cursor:        0,
		Snapshots:     records,
	})
	require.NoError(t, err)

	_, _, err = DecodeDocument(data, 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}

func TestDecodeRejectsCursorOutOfRange(t *testing.T) {
	records := []snapshotRecord{
		{
			Seq:          1,
			Viewport:     model.Viewport{Zoom: 1},
			NextNodeID:   1,
			NextArrowID:  1,
			NextStrokeID: 1,
		},
	}
	checksum, err := computeChecksum(5, records)
	require.NoError(t, err)

	data, err := json.Marshal(fileContainer{
		SchemaVersion: SchemaVersion,
		Checksum:      checksum,
		Cursor:        5,
		Snapshots:     records,
	})
	require.NoError(t, err)

	_, _, err = DecodeDocument(data, 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}

func TestEncodeIsDeterministic(t *testing.T) {
	_, h := buildHistory(t)

	first, err := EncodeDocument(h)
	require.NoError(t, err)
	second, err := EncodeDocument(h)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
