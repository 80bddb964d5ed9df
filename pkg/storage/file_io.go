package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/scene"
)

// FileExport writes a document's full history to a portable container file
// in the specified format. Only JSON is supported.
func FileExport(hist *history.History, filename string, format string) error {
	const op = "export document"

	if format != "json" {
		return persistErrf(KindIO, op, "unsupported format: %s", format)
	}

	data, err := EncodeDocument(hist)
	if err != nil {
		return err
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return persistErr(KindIO, op, fmt.Errorf("failed to create directory: %w", err))
	}

	// Write the data to the file
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return persistErr(KindIO, op, fmt.Errorf("failed to write file: %w", err))
	}
	return nil
}

// FileImport reads a portable container file and rebuilds the scene and
// history it holds, validating every snapshot. Only JSON is supported.
func FileImport(filename string, format string, depth int) (*scene.Scene, *history.History, error) {
	const op = "import document"

	if format != "json" {
		return nil, nil, persistErrf(KindIO, op, "unsupported format: %s", format)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, persistErr(KindIO, op, fmt.Errorf("failed to read file: %w", err))
	}

	return DecodeDocument(data, depth)
}
