package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"cnfinity/local-app/pkg/data"
	"cnfinity/local-app/pkg/layout"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
	defaultPlacerRadius    = 240.0
)

// SessionManager manages multiple concurrent sessions. All commands are
// funneled through a single executor goroutine, so scene mutations are
// strictly serialized regardless of how many adapters feed the manager.
type SessionManager struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan bool
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	result  chan interface{}
	err     chan error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan bool),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new session", nil)

	sessionID := uuid.NewString()
	placer := layout.NewCirclePlacer(defaultPlacerRadius)
	sm.mu.Lock()
	sm.sessions[sessionID] = NewSession(sessionID, sm.dataManager, placer, sm.logger)
	sm.mu.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	ctx := context.Background()

	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !exists {
		sm.logger.Warn(ctx, "Session not found", log.Fields{"sessionID": sessionID})
	} else {
		sm.logger.Debug(ctx, "Session retrieved", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Deleting session", log.Fields{"sessionID": sessionID})

	sm.mu.Lock()
	if _, exists := sm.sessions[sessionID]; !exists {
		sm.mu.Unlock()
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		sm.logger.Error(ctx, "Session not found", log.Fields{"sessionID": sessionID})
		return nil, errors.New("session not found")
	}

	// Log command in command log
	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	result := make(chan interface{})
	err := make(chan error)

	sm.commandQueue <- commandExecution{
		session: session,
		command: cmd,
		result:  result,
		err:     err,
	}

	select {
	case res := <-result:
		return res, nil
	case e := <-err:
		return nil, e
	}
}

// AutosaveAll saves the open document of every session. The save goes
// through the command queue so it serializes with ordinary edits. The
// session map is snapshotted first; adapters may add or delete sessions
// while the saves run.
func (sm *SessionManager) AutosaveAll() {
	ctx := context.Background()
	sm.mu.RLock()
	ids := make([]string, 0, len(sm.sessions))
	for id, session := range sm.sessions {
		if session.DocumentName() != "" {
			ids = append(ids, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range ids {
		if _, err := sm.SessionRun(id, model.Command{Scope: "document", Operation: "save"}); err != nil {
			sm.logger.Error(ctx, "Autosave failed", log.Fields{"sessionID": id, "error": err})
		}
	}
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for cmd := range sm.commandQueue {
		sm.logger.Debug(ctx, "Processing command", log.Fields{"sessionID": cmd.session.ID, "command": cmd.command})
		result, err := cmd.session.CommandRun(cmd.command)
		if err != nil {
			cmd.err <- err
		} else {
			cmd.result <- result
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive sessions
func (sm *SessionManager) startCleanupRoutine() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting cleanup routine", nil)

	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions()
			case <-sm.done:
				sm.logger.Info(ctx, "Stopping cleanup routine", nil)
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// StopCleanupRoutine stops the cleanup routine
func (sm *SessionManager) StopCleanupRoutine() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Stopping cleanup routine", nil)
	sm.done <- true
}

// cleanupInactiveSessions removes inactive sessions
func (sm *SessionManager) cleanupInactiveSessions() {
	ctx := context.Background()
	sm.logger.Debug(ctx, "Running cleanup for inactive sessions", nil)

	now := time.Now()
	sm.mu.RLock()
	var expired []string
	for id, session := range sm.sessions {
		if now.Sub(session.LastActivityGet()) > defaultSessionTimeout {
			expired = append(expired, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range expired {
		sm.logger.Info(ctx, "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}
