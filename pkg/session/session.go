// Package session implements the command funnel of the engine: every edit
// arrives as a model.Command, is validated, applied to the live scene, and
// followed by a history snapshot. Nothing else mutates the scene.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"cnfinity/local-app/pkg/data"
	"cnfinity/local-app/pkg/event"
	"cnfinity/local-app/pkg/history"
	"cnfinity/local-app/pkg/layout"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/scene"
)

// ErrExitRequested is returned by the system exit command to signal the
// input loop to terminate.
var ErrExitRequested = errors.New("exit requested")

// ErrNoDocument is returned by commands that need an open document.
var ErrNoDocument = errors.New("no document selected")

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual editing session: one open document, its
// live scene, and its undo/redo history.
type Session struct {
	ID           string
	DataManager  *data.DataManager
	Document     *model.DocumentInfo
	Scene        *scene.Scene
	History      *history.History
	Placer       layout.Placer
	LastActivity time.Time

	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
	mu              sync.Mutex
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, placer layout.Placer, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		Placer:       placer,
		LastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"document": initDocumentCommandHandlers(),
		"node":     initNodeCommandHandlers(),
		"arrow":    initArrowCommandHandlers(),
		"stroke":   initStrokeCommandHandlers(),
		"view":     initViewCommandHandlers(),
		"history":  initHistoryCommandHandlers(),
		"system":   initSystemCommandHandlers(),
	}
}

// CommandRun executes a command within the session context. A command that
// fails leaves both the scene and the history untouched.
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Debug(ctx, "Running command", log.Fields{"sessionID": s.ID, "command": cmd})

	sessionCmd := NewCommand(cmd, s.logger)
	if err := sessionCmd.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActivity = time.Now()

	handler := s.commandHandlers[cmd.Scope][cmd.Operation]
	result, err := handler(s, cmd)
	if err != nil && !errors.Is(err, ErrExitRequested) {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"sessionID": s.ID, "command": cmd, "error": err})
	}
	return result, err
}

// documentSet installs an opened or created document as the session's
// current one.
func (s *Session) documentSet(info *model.DocumentInfo, sc *scene.Scene, hist *history.History) {
	s.Document = info
	s.Scene = sc
	s.History = hist
}

// documentClear detaches the current document.
func (s *Session) documentClear() {
	s.Document = nil
	s.Scene = nil
	s.History = nil
}

// requireDocument returns the live scene or fails when no document is open.
func (s *Session) requireDocument() (*scene.Scene, error) {
	if s.Scene == nil {
		return nil, ErrNoDocument
	}
	return s.Scene, nil
}

// record captures a history snapshot after a committed mutation. Recording
// is a no-op when the scene version did not change.
func (s *Session) record() {
	if s.History == nil {
		return
	}
	s.History.Record(s.Scene)
}

// installScene replaces the live scene after an undo, redo, or load and
// notifies subscribers that the whole scene changed.
func (s *Session) installScene(sc *scene.Scene) {
	s.Scene = sc
	s.DataManager.EventManager.Publish(event.Event{Type: event.SceneReplaced, Data: s.ID})
}

// LastActivityGet returns the time of the session's most recent command.
func (s *Session) LastActivityGet() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastActivity
}

// CanUndo reports whether the session's history has an undo step. Safe to
// call with no open document.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History != nil && s.History.CanUndo()
}

// CanRedo reports whether the session's history has a redo step.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History != nil && s.History.CanRedo()
}

// DocumentName returns the name of the open document, or an empty string.
func (s *Session) DocumentName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Document == nil {
		return ""
	}
	return s.Document.Name
}

// initDocumentCommandHandlers initializes document command handlers
func initDocumentCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"new":    handleDocumentNew,
		"open":   handleDocumentOpen,
		"save":   handleDocumentSave,
		"list":   handleDocumentList,
		"delete": handleDocumentDelete,
		"export": handleDocumentExport,
		"import": handleDocumentImport,
	}
}

// initNodeCommandHandlers initializes node command handlers
func initNodeCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleNodeAdd,
		"move":   handleNodeMove,
		"edit":   handleNodeEdit,
		"delete": handleNodeDelete,
		"get":    handleNodeGet,
		"list":   handleNodeList,
	}
}

// initArrowCommandHandlers initializes arrow command handlers
func initArrowCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleArrowAdd,
		"delete": handleArrowDelete,
		"list":   handleArrowList,
	}
}

// initStrokeCommandHandlers initializes stroke command handlers
func initStrokeCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":   handleStrokeAdd,
		"point": handleStrokePoint,
		"erase": handleStrokeErase,
		"list":  handleStrokeList,
	}
}

// initViewCommandHandlers initializes viewport command handlers
func initViewCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"pan":  handleViewPan,
		"zoom": handleViewZoom,
		"show": handleViewShow,
	}
}

// initHistoryCommandHandlers initializes history command handlers
func initHistoryCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"undo":   handleHistoryUndo,
		"redo":   handleHistoryRedo,
		"status": handleHistoryStatus,
	}
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"exit": handleSystemExit,
		"quit": handleSystemExit,
	}
}
