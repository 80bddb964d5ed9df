// Package cli implements the interactive command-line frontend. It owns the
// readline loop and help output; command semantics live behind the adapter.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"cnfinity/local-app/pkg/adapter"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
	"cnfinity/local-app/pkg/session"
)

// CLI represents the command-line interface
type CLI struct {
	adapter *adapter.CLIAdapter
	rl      *readline.Instance
	logger  *log.Logger
}

// NewCLI creates a new CLI instance with readline line editing and
// persistent input history.
func NewCLI(cliAdapter *adapter.CLIAdapter, cfg *model.Config, logger *log.Logger) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cliAdapter.PromptGet(),
		HistoryFile:     cfg.ReadlineHistory,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		adapter: cliAdapter,
		rl:      rl,
		logger:  logger,
	}, nil
}

// Run starts the CLI and handles user input until exit
func (c *CLI) Run() error {
	ctx := context.Background()
	fmt.Println("Welcome to CnF-Infinity! Use 'help' for the list of commands.")

	if err := c.adapter.AdapterStart(); err != nil {
		return fmt.Errorf("failed to start CLI adapter: %w", err)
	}
	defer func() {
		if err := c.adapter.AdapterStop(); err != nil {
			fmt.Printf("Error stopping CLI adapter: %v\n", err)
		}
	}()

	// Main loop
	for {
		input, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("Use 'exit' or 'quit' to exit the program.")
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			c.logger.Error(ctx, "Error reading input", log.Fields{"error": err})
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			input = "system exit"
		}

		// Check for help command
		if strings.HasPrefix(input, "help") {
			args := strings.Fields(input)
			c.printHelp(args[1:])
			continue
		}

		result, err := c.adapter.ProcessInput(input)
		if errors.Is(err, session.ErrExitRequested) {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else if result != nil {
			printResult(result)
		}

		// Update the prompt after each command
		c.rl.SetPrompt(c.adapter.PromptGet())
	}

	return nil
}

// ScriptExecute runs the commands from a script file line by line, stopping
// at the first failing command.
func (c *CLI) ScriptExecute(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", filename, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := c.adapter.ProcessInput(line)
		if err != nil {
			return fmt.Errorf("script command %q failed: %w", line, err)
		}
		if result != nil {
			printResult(result)
		}
	}
	return nil
}

// Stop closes the readline instance, unblocking the main loop
func (c *CLI) Stop() {
	if err := c.rl.Close(); err != nil {
		fmt.Printf("Error closing readline: %v\n", err)
	}
}

// printResult renders a command result for the terminal.
func printResult(result interface{}) {
	switch v := result.(type) {
	case string:
		fmt.Println(v)
	case []model.DocumentInfo:
		if len(v) == 0 {
			fmt.Println("No documents")
			return
		}
		for _, info := range v {
			fmt.Printf("  %-24s %s\n", info.Name, info.Updated.Format("2006-01-02 15:04:05"))
		}
	case []model.Node:
		for _, node := range v {
			fmt.Printf("  [%d] %-4s (%.1f, %.1f) %s\n", node.ID, node.Kind, node.Pos.X, node.Pos.Y, node.Content)
		}
	case []model.Arrow:
		for _, arrow := range v {
			fmt.Printf("  [%d] %d -> %d\n", arrow.ID, arrow.From, arrow.To)
		}
	case []model.Stroke:
		for _, stroke := range v {
			fmt.Printf("  [%d] %s width %.1f, %d point(s)\n", stroke.ID, stroke.Color, stroke.Width, len(stroke.Points))
		}
	case model.SceneView:
		fmt.Printf("Visible: %d node(s), %d arrow(s), %d stroke(s)\n", len(v.Nodes), len(v.Arrows), len(v.Strokes))
		for _, node := range v.Nodes {
			fmt.Printf("  [%d] %-4s (%.1f, %.1f) %s\n", node.ID, node.Kind, node.Pos.X, node.Pos.Y, node.Content)
		}
		for _, arrow := range v.Arrows {
			fmt.Printf("  arrow [%d] %d -> %d\n", arrow.ID, arrow.From, arrow.To)
		}
		fmt.Printf("Undo available: %t, redo available: %t\n", v.CanUndo, v.CanRedo)
	default:
		fmt.Printf("Result: %v\n", result)
	}
}

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		fmt.Println("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	fmt.Println("Command syntax: <scope> [operation] [arguments]")
	fmt.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	fmt.Printf("Commands for %s:\n\n", scope)
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			fmt.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Printf("Command: %s %s\n", scope, operation)
			fmt.Printf("Description: %s\n", cmd.LongDesc)
			fmt.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Println("Examples:")
				for _, ex := range cmd.Examples {
					fmt.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Printf("No help found for %s %s\n", scope, operation)
}
