package adapter

import (
	"fmt"
	"sync"

	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/session"
)

// AdapterInstance represents an instance of an adapter
type AdapterInstance interface {
	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterFactory creates new instances of adapters
type AdapterFactory func(sessionID string) (AdapterInstance, error)

// AdapterManager manages all adapter instances. Each instance owns one
// session; commands from every instance funnel through a single channel
// before reaching the session manager.
type AdapterManager struct {
	factories      map[string]AdapterFactory
	instances      sync.Map // map[string]AdapterInstance
	sessionManager *session.SessionManager
	cmdChan        chan commandRequest
	stopChan       chan struct{}
	logger         *log.Logger
}

// commandRequest represents a request to execute a command within a specific session and carries a result channel
type commandRequest struct {
	SessionID  string
	Command    model.Command
	ResultChan chan interface{}
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) *AdapterManager {
	am := &AdapterManager{
		factories:      make(map[string]AdapterFactory),
		sessionManager: sm,
		cmdChan:        make(chan commandRequest),
		stopChan:       make(chan struct{}),
		logger:         logger,
	}
	go am.commandHandler()
	return am
}

// FactoryRegister registers a factory for an adapter type
func (am *AdapterManager) FactoryRegister(adapterType string, factory AdapterFactory) {
	am.factories[adapterType] = factory
}

// AdapterAdd creates a new adapter instance with its own session and returns
// the session ID.
func (am *AdapterManager) AdapterAdd(adapterType string) (string, error) {
	factory, ok := am.factories[adapterType]
	if !ok {
		return "", fmt.Errorf("unknown adapter type: %s", adapterType)
	}

	sessionID, err := am.sessionManager.SessionAdd()
	if err != nil {
		return "", fmt.Errorf("failed to add session: %w", err)
	}

	instance, err := factory(sessionID)
	if err != nil {
		am.sessionManager.SessionDelete(sessionID)
		return "", err
	}

	am.instances.Store(sessionID, instance)
	return sessionID, nil
}

// SessionGet retrieves the session bound to an adapter instance
func (am *AdapterManager) SessionGet(sessionID string) (*session.Session, bool) {
	return am.sessionManager.SessionGet(sessionID)
}

// CommandRun runs a command on a specific adapter instance's session
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	resultChan := make(chan interface{})
	am.cmdChan <- commandRequest{SessionID: sessionID, Command: cmd, ResultChan: resultChan}
	result := <-resultChan
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result, nil
}

// Shutdown stops all adapter instances and the command handler
func (am *AdapterManager) Shutdown() {
	close(am.stopChan)
	am.instances.Range(func(key, value interface{}) bool {
		instance := value.(AdapterInstance)
		instance.AdapterStop()
		am.sessionManager.SessionDelete(key.(string))
		return true
	})
}

func (am *AdapterManager) commandHandler() {
	for {
		select {
		case req := <-am.cmdChan:
			if _, ok := am.instances.Load(req.SessionID); !ok {
				req.ResultChan <- fmt.Errorf("no adapter instance found for session: %s", req.SessionID)
				continue
			}
			result, err := am.sessionManager.SessionRun(req.SessionID, req.Command)
			if err != nil {
				req.ResultChan <- err
			} else {
				req.ResultChan <- result
			}
		case <-am.stopChan:
			return
		}
	}
}
