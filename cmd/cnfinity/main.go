// Package main is the entry point for the CnF-Infinity application.
// It initializes all components and runs the main program loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnfinity/local-app/pkg/adapter"
	"cnfinity/local-app/pkg/cli"
	"cnfinity/local-app/pkg/config"
	"cnfinity/local-app/pkg/data"
	"cnfinity/local-app/pkg/log"
	"cnfinity/local-app/pkg/session"
	"cnfinity/local-app/pkg/storage"
)

// main is the entry point of the application. It initializes all components,
// sets up signal handling, and runs the main program loop.
func main() {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.LevelInfo)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("Failed to close logger: %v\n", err)
		}
	}()

	logger.Info(context.Background(), "Application started", log.Fields{"config": cfg})

	// Watch the config file for changes
	watcher, err := config.NewWatcher(logger)
	if err != nil {
		logger.Warn(context.Background(), "Config watcher unavailable", log.Fields{"error": err})
	} else {
		defer watcher.Close()
	}

	// Initialize storage
	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize storage", log.Fields{"error": err})
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
		}
	}()

	logger.Info(context.Background(), "Storage initialized", nil)

	// Initialize data manager
	dataManager, err := data.NewDataManager(store, cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize data manager", log.Fields{"error": err})
		os.Exit(1)
	}

	logger.Info(context.Background(), "Data manager initialized", nil)

	// Initialize session manager
	sessionManager := session.NewSessionManager(dataManager, logger)
	defer sessionManager.StopCleanupRoutine()

	logger.Info(context.Background(), "Session manager initialized", nil)

	// Initialize adapter manager with the CLI adapter factory
	adapterManager := adapter.NewAdapterManager(sessionManager, logger)
	defer adapterManager.Shutdown()

	var cliAdapter *adapter.CLIAdapter
	adapterManager.FactoryRegister("cli", func(sessionID string) (adapter.AdapterInstance, error) {
		var err error
		cliAdapter, err = adapter.NewCLIAdapter(adapterManager, sessionID, logger)
		return cliAdapter, err
	})
	if _, err := adapterManager.AdapterAdd("cli"); err != nil {
		logger.Error(context.Background(), "Failed to initialize CLI adapter", log.Fields{"error": err})
		os.Exit(1)
	}

	logger.Info(context.Background(), "Adapter manager initialized", nil)

	// Open the default document so the canvas is usable right away
	if cfg.DefaultDocument != "" {
		if _, err := cliAdapter.ProcessInput("document open " + cfg.DefaultDocument); err != nil {
			if _, err := cliAdapter.ProcessInput("document new " + cfg.DefaultDocument); err != nil {
				logger.Warn(context.Background(), "Failed to open default document", log.Fields{"document": cfg.DefaultDocument, "error": err})
			}
		}
	}

	// Periodic autosave of open documents
	autosaveDone := make(chan struct{})
	if cfg.AutosaveSeconds > 0 {
		ticker := time.NewTicker(time.Duration(cfg.AutosaveSeconds) * time.Second)
		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					sessionManager.AutosaveAll()
				case <-autosaveDone:
					return
				}
			}
		}()
	}
	defer close(autosaveDone)

	// Create the CLI frontend
	cliInstance, err := cli.NewCLI(cliAdapter, cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initiate CLI", log.Fields{"error": err})
		os.Exit(1)
	}

	logger.Info(context.Background(), "CLI instance created", nil)

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	// Run startup scripts passed as arguments
	for _, scriptFile := range os.Args[1:] {
		if err := cliInstance.ScriptExecute(scriptFile); err != nil {
			logger.Error(context.Background(), "Script execution failed", log.Fields{"script": scriptFile, "error": err})
			fmt.Printf("Error executing script %s: %v\n", scriptFile, err)
		}
	}

	// Run CLI
	if err := cliInstance.Run(); err != nil {
		logger.Error(context.Background(), "CLI error", log.Fields{"error": err})
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	fmt.Println("Goodbye!")
}
