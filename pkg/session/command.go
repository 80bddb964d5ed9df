package session

import (
	"context"
	"errors"
	"fmt"

	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/model"
)

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new SessionCommand from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Info(ctx, "Validating command", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	if c.command.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating scope and operation", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	switch c.command.Scope {
	case "document":
		return c.validateDocumentCommand()
	case "node":
		return c.validateNodeCommand()
	case "arrow":
		return c.validateArrowCommand()
	case "stroke":
		return c.validateStrokeCommand()
	case "view":
		return c.validateViewCommand()
	case "history":
		return c.validateHistoryCommand()
	case "system":
		return c.validateSystemCommand()
	default:
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}
}

func (c *Command) validateDocumentCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating document command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "new", "open":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for document command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("document %s command requires 1 argument: <document_name>", c.command.Operation)
		}
	case "delete":
		if len(c.command.Args) > 1 {
			c.logger.Error(ctx, "Invalid number of arguments for document delete command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("document delete command requires 0 or 1 argument: [document_name]")
		}
	case "export":
		if len(c.command.Args) < 1 || len(c.command.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for document export command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("document export command requires 1 or 2 arguments: <filename> [json]")
		}
	case "import":
		if len(c.command.Args) < 2 || len(c.command.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for document import command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("document import command requires 2 or 3 arguments: <document_name> <filename> [json]")
		}
	case "save", "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for document command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("document %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid document operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid document operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateNodeCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating node command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "add":
		if len(c.command.Args) < 1 {
			c.logger.Error(ctx, "Invalid number of arguments for node add command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node add command requires at least 1 argument: <note|code> [x y] [content]")
		}
	case "move":
		if len(c.command.Args) != 3 {
			c.logger.Error(ctx, "Invalid number of arguments for node move command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node move command requires 3 arguments: <node_id> <x> <y>")
		}
	case "edit":
		if len(c.command.Args) < 1 {
			c.logger.Error(ctx, "Invalid number of arguments for node edit command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node edit command requires at least 1 argument: <node_id> [content]")
		}
	case "delete", "get":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for node command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("node %s command requires 1 argument: <node_id>", c.command.Operation)
		}
	case "list":
		if len(c.command.Args) != 0 && len(c.command.Args) != 4 {
			c.logger.Error(ctx, "Invalid number of arguments for node list command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node list command requires 0 or 4 arguments: [x y w h]")
		}
	default:
		c.logger.Error(ctx, "Invalid node operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid node operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateArrowCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating arrow command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "add":
		if len(c.command.Args) < 2 || len(c.command.Args) > 3 {
			c.logger.Error(ctx, "Invalid number of arguments for arrow add command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("arrow add command requires 2 or 3 arguments: <from_node_id> <to_node_id> [curvature]")
		}
	case "delete":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for arrow delete command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("arrow delete command requires 1 argument: <arrow_id>")
		}
	case "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for arrow list command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("arrow list command does not accept any arguments")
		}
	default:
		c.logger.Error(ctx, "Invalid arrow operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid arrow operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateStrokeCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating stroke command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "add":
		if len(c.command.Args) != 4 {
			c.logger.Error(ctx, "Invalid number of arguments for stroke add command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("stroke add command requires 4 arguments: <color> <width> <x> <y>")
		}
	case "point":
		if len(c.command.Args) != 3 {
			c.logger.Error(ctx, "Invalid number of arguments for stroke point command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("stroke point command requires 3 arguments: <stroke_id> <x> <y>")
		}
	case "erase":
		if len(c.command.Args) != 3 {
			c.logger.Error(ctx, "Invalid number of arguments for stroke erase command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("stroke erase command requires 3 arguments: <x> <y> <radius>")
		}
	case "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for stroke list command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("stroke list command does not accept any arguments")
		}
	default:
		c.logger.Error(ctx, "Invalid stroke operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid stroke operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateViewCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating view command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "pan":
		if len(c.command.Args) != 2 {
			c.logger.Error(ctx, "Invalid number of arguments for view pan command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("view pan command requires 2 arguments: <dx> <dy>")
		}
	case "zoom":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for view zoom command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("view zoom command requires 1 argument: <factor>")
		}
	case "show":
		if len(c.command.Args) != 0 && len(c.command.Args) != 4 {
			c.logger.Error(ctx, "Invalid number of arguments for view show command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("view show command requires 0 or 4 arguments: [x y w h]")
		}
	default:
		c.logger.Error(ctx, "Invalid view operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid view operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateHistoryCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating history command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "undo", "redo", "status":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for history command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("history %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid history operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid history operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateSystemCommand() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating system command", log.Fields{"operation": c.command.Operation})

	switch c.command.Operation {
	case "exit", "quit":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for system command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("system %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid system operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid system operation: %s", c.command.Operation)
	}
	return nil
}
