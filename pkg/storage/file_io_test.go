package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExportImportRoundTrip(t *testing.T) {
	liveScene, hist := buildHistory(t)
	filename := filepath.Join(t.TempDir(), "export", "board.json")

	require.NoError(t, FileExport(hist, filename, "json"))

	importedScene, importedHist, err := FileImport(filename, "json", 10)
	require.NoError(t, err)
	assert.True(t, liveScene.Equal(importedScene))
	assert.Equal(t, hist.Len(), importedHist.Len())
	assert.Equal(t, hist.Cursor(), importedHist.Cursor())
}

func TestFileExportUnsupportedFormat(t *testing.T) {
	_, hist := buildHistory(t)
	err := FileExport(hist, filepath.Join(t.TempDir(), "board.xml"), "xml")
	assert.True(t, IsPersistKind(err, KindIO), "got %v", err)
}

func TestFileImportMissingFile(t *testing.T) {
	_, _, err := FileImport(filepath.Join(t.TempDir(), "absent.json"), "json", 10)
	assert.True(t, IsPersistKind(err, KindIO), "got %v", err)
}

func TestFileImportCorruptFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(filename, []byte("{"), 0644))

	_, _, err := FileImport(filename, "json", 10)
	assert.True(t, IsPersistKind(err, KindCorruptHistory), "got %v", err)
}
