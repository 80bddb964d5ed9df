package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

// historyWithEdits seeds a history and records n node-add edits on sc.
func historyWithEdits(t *testing.T, sc *scene.Scene, n int) *history.History {
	t.Helper()
	h := history.New(10, sc)
	for i := 0; i < n; i++ {
		_, err := sc.NodeAdd(model.NodeNote, model.Point{X: float64(i)}, model.Size{W: 10, H: 10}, "")
		require.NoError(t, err)
		require.True(t, h.Record(sc))
	}
	return h
}

func testStorage(t *testing.T) *Storage {
	t.Helper()
	dir := t.TempDir()

	cfg := &model.Config{
		DatabaseDir:  dir,
		DatabaseFile: "test.db",
		DatabaseType: "sqlite",
		LogFolder:    dir,
		CommandLog:   "commands.log",
		ErrorLog:     "errors.log",
		InfoLog:      "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelError)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	store, err := NewStorage(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func docInfo(name string) *model.DocumentInfo {
	now := time.Now()
	return &model.DocumentInfo{ID: uuid.NewString(), Name: name, Created: now, Updated: now}
}

func TestDocumentSaveAndLoad(t *testing.T) {
	store := testStorage(t)

	liveScene, hist := buildHistory(t)
	info := docInfo("board")
	require.NoError(t, store.DocumentSave(info, hist))

	loadedInfo, loadedScene, loadedHist, err := store.DocumentLoad(info.ID, 10)
	require.NoError(t, err)

	assert.Equal(t, info.ID, loadedInfo.ID)
	assert.Equal(t, "board", loadedInfo.Name)
	assert.True(t, liveScene.Equal(loadedScene))
	assert.Equal(t, hist.Len(), loadedHist.Len())
	assert.Equal(t, hist.Cursor(), loadedHist.Cursor())
	assert.True(t, loadedHist.CanRedo())
}

func TestDocumentLoadMissing(t *testing.T) {
	store := testStorage(t)

	_, _, _, err := store.DocumentLoad("no-such-id", 10)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentFindByName(t *testing.T) {
	store := testStorage(t)

	_, hist := buildHistory(t)
	info := docInfo("findme")
	require.NoError(t, store.DocumentSave(info, hist))

	found, err := store.DocumentFindByName("findme")
	require.NoError(t, err)
	assert.Equal(t, info.ID, found.ID)

	_, err = store.DocumentFindByName("absent")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentSaveReplacesSnapshots(t *testing.T) {
	store := testStorage(t)

	sc := scene.New()
	hist := historyWithEdits(t, sc, 2)
	info := docInfo("evolving")
	require.NoError(t, store.DocumentSave(info, hist))

	// Another edit and save must fully replace the stored log
	_, err := sc.NodeAdd(model.NodeNote, model.Point{}, model.Size{W: 10, H: 10}, "")
	require.NoError(t, err)
	require.True(t, hist.Record(sc))
	require.NoError(t, store.DocumentSave(info, hist))

	_, _, loadedHist, err := store.DocumentLoad(info.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, hist.Len(), loadedHist.Len())
}

func TestDocumentList(t *testing.T) {
	store := testStorage(t)

	_, h1 := buildHistory(t)
	_, h2 := buildHistory(t)
	require.NoError(t, store.DocumentSave(docInfo("beta"), h1))
	require.NoError(t, store.DocumentSave(docInfo("alpha"), h2))

	infos, err := store.DocumentList()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "beta", infos[1].Name)
}

func TestDocumentDelete(t *testing.T) {
	store := testStorage(t)

	_, hist := buildHistory(t)
	info := docInfo("doomed")
	require.NoError(t, store.DocumentSave(info, hist))

	require.NoError(t, store.DocumentDelete(info.ID))
	_, _, _, err := store.DocumentLoad(info.ID, 10)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	assert.ErrorIs(t, store.DocumentDelete(info.ID), ErrDocumentNotFound)
}
