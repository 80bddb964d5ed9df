// Package adapter bridges user-facing frontends to the session layer. Each
// adapter instance owns one session and translates its own input format into
// model.Command values.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
)

// CLIAdapter translates interactive command lines into commands for one
// session.
type CLIAdapter struct {
	sessionID      string
	adapterManager *AdapterManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new instance of CLIAdapter bound to a session
func NewCLIAdapter(am *AdapterManager, sessionID string, logger *log.Logger) (*CLIAdapter, error) {
	logger.Info(context.Background(), "Creating new CLI adapter", log.Fields{"sessionID": sessionID})
	return &CLIAdapter{
		sessionID:      sessionID,
		adapterManager: am,
		logger:         logger,
	}, nil
}

// AdapterStart starts the CLI adapter
func (a *CLIAdapter) AdapterStart() error {
	return nil
}

// AdapterStop signals the CLI adapter to stop
func (a *CLIAdapter) AdapterStop() error {
	a.logger.Info(context.Background(), "CLI adapter stopped", log.Fields{"sessionID": a.sessionID})
	return nil
}

// GetType returns the adapter type
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// ProcessInput converts the input string into a command and runs it
func (a *CLIAdapter) ProcessInput(input string) (interface{}, error) {
	cmd, err := a.parseCommand(input)
	if err != nil {
		return nil, err
	}
	return a.adapterManager.CommandRun(a.sessionID, cmd)
}

// parseCommand splits an input line into scope, operation, and arguments.
// Double-quoted arguments may contain spaces, so node content like
// "design notes" stays one argument.
func (a *CLIAdapter) parseCommand(input string) (model.Command, error) {
	args := splitArgs(input)
	if len(args) == 0 {
		a.logger.Info(context.Background(), "Empty command", nil)
		return model.Command{}, fmt.Errorf("empty command")
	}

	cmd := model.Command{
		Scope:     strings.ToLower(args[0]),
		Operation: "",
		Args:      []string{},
	}

	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	a.logger.Debug(context.Background(), "Command parsed", log.Fields{"command": cmd})
	return cmd, nil
}

// splitArgs splits on whitespace while honoring double quotes.
func splitArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	hasArg := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasArg = true
		case !inQuotes && (r == ' ' || r == '\t'):
			if hasArg {
				args = append(args, current.String())
				current.Reset()
				hasArg = false
			}
		default:
			current.WriteRune(r)
			hasArg = true
		}
	}
	if hasArg {
		args = append(args, current.String())
	}
	return args
}

// PromptGet gets the current prompt of the session
func (a *CLIAdapter) PromptGet() string {
	session, exists := a.adapterManager.SessionGet(a.sessionID)
	if !exists {
		a.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": a.sessionID})
		return "> "
	}

	name := session.DocumentName()
	if name == "" {
		return "> "
	}
	return fmt.Sprintf("%s > ", name)
}
