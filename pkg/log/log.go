// Package log provides functionality for logging commands, errors and
// informational messages to separate files.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cnfinity/local-app/pkg/model"
)

// Fields carries structured key/value context for a log message.
type Fields map[string]interface{}

// logMessage represents a message to be logged.
type logMessage struct {
	level   LogLevel
	content string
	fields  Fields
	ctx     context.Context
}

// Logger writes command, error, and info log files through a background
// goroutine so callers never block on file I/O.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	commandFile   *os.File
	errorFile     *os.File
	infoFile      *os.File
	logChan       chan logMessage
	done          chan struct{}
	wg            sync.WaitGroup
	verbosity     LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder named in
// the configuration. Messages above the given verbosity are dropped; command
// and error messages are always written.
func NewLogger(cfg *model.Config, verbosity LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open command log file
	commandFile, err := os.OpenFile(filepath.Join(cfg.LogFolder, cfg.CommandLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	// Open error log file
	errorFile, err := os.OpenFile(filepath.Join(cfg.LogFolder, cfg.ErrorLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	// Open info log file
	infoFile, err := os.OpenFile(filepath.Join(cfg.LogFolder, cfg.InfoLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	logger := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelWarn})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{Level: slog.LevelDebug})),
		commandFile:   commandFile,
		errorFile:     errorFile,
		infoFile:      infoFile,
		logChan:       make(chan logMessage, 100),
		done:          make(chan struct{}),
		verbosity:     verbosity,
	}

	// Start the logging goroutine
	logger.wg.Add(1)
	go logger.processLogs()

	return logger, nil
}

// processLogs handles incoming log messages until the logger is closed,
// then drains whatever is still queued so Close never drops messages.
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			l.write(msg)
		case <-l.done:
			for {
				select {
				case msg := <-l.logChan:
					l.write(msg)
				default:
					return
				}
			}
		}
	}
}

// write routes a message to the log file matching its level.
func (l *Logger) write(msg logMessage) {
	attrs := fieldsToAttrs(msg.fields)
	switch msg.level {
	case LevelCommand:
		l.commandLogger.LogAttrs(msg.ctx, slog.LevelInfo, msg.content, attrs...)
	case LevelError, LevelWarn:
		l.errorLogger.LogAttrs(msg.ctx, msg.level.toSlogLevel(), msg.content, attrs...)
	default:
		l.infoLogger.LogAttrs(msg.ctx, msg.level.toSlogLevel(), msg.content, attrs...)
	}
}

// fieldsToAttrs converts Fields to slog attributes.
func fieldsToAttrs(fields Fields) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for key, value := range fields {
		attrs = append(attrs, slog.Any(key, value))
	}
	return attrs
}

// enqueue submits a message to the logging goroutine, dropping it when the
// logger is already closed.
func (l *Logger) enqueue(msg logMessage) {
	if msg.ctx == nil {
		msg.ctx = context.Background()
	}
	select {
	case l.logChan <- msg:
	case <-l.done:
	}
}

// Command logs an executed command to the command log.
func (l *Logger) Command(ctx context.Context, content string, fields Fields) {
	l.enqueue(logMessage{level: LevelCommand, content: content, fields: fields, ctx: ctx})
}

// Error logs an error to the error log.
func (l *Logger) Error(ctx context.Context, content string, fields Fields) {
	l.enqueue(logMessage{level: LevelError, content: content, fields: fields, ctx: ctx})
}

// Warn logs a warning to the error log.
func (l *Logger) Warn(ctx context.Context, content string, fields Fields) {
	l.enqueue(logMessage{level: LevelWarn, content: content, fields: fields, ctx: ctx})
}

// Info logs an informational message to the info log.
func (l *Logger) Info(ctx context.Context, content string, fields Fields) {
	if l.verbosity < LevelInfo {
		return
	}
	l.enqueue(logMessage{level: LevelInfo, content: content, fields: fields, ctx: ctx})
}

// Debug logs a debug message to the info log.
func (l *Logger) Debug(ctx context.Context, content string, fields Fields) {
	if l.verbosity < LevelDebug {
		return
	}
	l.enqueue(logMessage{level: LevelDebug, content: content, fields: fields, ctx: ctx})
}

// Close stops the logging goroutine and closes all log files.
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait()

	if err := l.commandFile.Close(); err != nil {
		return fmt.Errorf("failed to close command log file: %w", err)
	}
	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}
	if err := l.infoFile.Close(); err != nil {
		return fmt.Errorf("failed to close info log file: %w", err)
	}
	return nil
}
