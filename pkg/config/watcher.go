package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cnfinity/local-app/pkg/log"
)

// Watcher reloads the configuration when the config file changes on disk,
// so settings like the history depth or autosave interval can be adjusted
// without restarting the application.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *log.Logger
	done    chan struct{}
}

// NewWatcher starts watching the configuration file for changes.
func NewWatcher(logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors replace files on save.
	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// run processes filesystem events until the watcher is closed.
func (w *Watcher) run() {
	ctx := context.Background()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(configPath) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := ConfigLoad(); err != nil {
				w.logger.Error(ctx, "Failed to reload configuration", log.Fields{"error": err})
				continue
			}
			w.logger.Info(ctx, "Configuration reloaded", log.Fields{"path": configPath})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(ctx, "Config watcher error", log.Fields{"error": err})
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
