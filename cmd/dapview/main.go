package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dapview/dapview/internal/bridge"
	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/internal/config"
	"github.com/dapview/dapview/internal/editor"
	"github.com/dapview/dapview/internal/mcp"
	"github.com/dapview/dapview/internal/nav"
	"github.com/dapview/dapview/internal/session"
	"github.com/dapview/dapview/internal/version"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	mode := flag.String("mode", "full", "Capability mode: 'readonly' or 'full'")
	workspace := flag.String("workspace", "", "Workspace root for source resolution")
	showVersion := flag.Bool("version", false, "Show version and exit")
	help := flag.Bool("help", false, "Show help and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("dapview version %s\n", version.Version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Overrides from the command line
	if *mode == "readonly" {
		cfg.Mode = config.ModeReadOnly
	} else if *mode == "full" {
		cfg.Mode = config.ModeFull
	}
	if *workspace != "" {
		cfg.Workspace = *workspace
	}

	// Wire the coordinator to its collaborators
	actionBus := bus.New()
	navigator := editor.NewNavigator(cfg.Workspace, logger)

	var notifier nav.Notifier
	if cfg.Notifications {
		notifier = editor.NewPinnedMessages(logger)
	}

	coordinator, err := session.New(actionBus, navigator, session.Options{
		Notifier:       notifier,
		Logger:         logger,
		DebounceWindow: cfg.DebounceWindow(),
	})
	if err != nil {
		logger.Fatal("Failed to create session coordinator", zap.Error(err))
	}

	adapterBridge := bridge.New(actionBus, logger)
	server := mcp.NewServer(cfg, actionBus, coordinator, adapterBridge)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		server.Close()
		os.Exit(0)
	}()

	// Start serving via stdio
	logger.Info("dapview server starting...", zap.String("mode", string(cfg.Mode)))
	if err := server.ServeStdio(); err != nil {
		server.Close()
		logger.Fatal("Server error", zap.Error(err))
	}
	server.Close()
}

func printHelp() {
	fmt.Println(`dapview: Debugger Session Coordinator

An MCP server holding the authoritative session state of a debugger
front-end: execution mode, callstack, selected frame, and thread set,
kept consistent by a synchronous action bus.

USAGE:
    dapview [OPTIONS]

OPTIONS:
    -config <path>      Path to configuration file (JSON)
    -mode <mode>        Capability mode: 'readonly' or 'full' (default: full)
    -workspace <path>   Workspace root for source resolution
    -version            Show version and exit
    -help               Show this help message

CONFIGURATION:
    Create a JSON configuration file to customize behavior:

    {
        "mode": "full",
        "workspace": "/path/to/project",
        "debounceWindowMs": 100,
        "notifications": true
    }

TOOLS:
    Query:
        debug_state           Get the complete session snapshot

    Control (full mode only):
        debug_set_mode          Transition the debugger mode
        debug_select_frame      Select a call frame
        debug_select_thread     Select the inspected thread
        debug_open_source       Open a source location in the editor
        debug_clear             Clear the session interface
        debug_adapter_message   Feed a DAP protocol message into the session`)
}
