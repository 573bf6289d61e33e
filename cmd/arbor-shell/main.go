// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// arbor-shell is an interactive terminal front end for the arbor command
// tree. It registers a demo server-admin command set, then reads lines,
// dispatches them, and tab-completes against the permission-aware
// suggestion engine.
//
// Usage:
//
//	arbor-shell                      Run with ~/.arbor/config.toml
//	arbor-shell -config custom.toml  Run with an explicit config file
//
// Interactive commands:
//
//	help, ?      Render the command index
//	commands     List dispatchable root names
//	exit, quit   Leave the shell
//	Ctrl+C       Cancel the running command
//	Ctrl+D       Leave the shell
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/arbor/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.arbor/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Fatal]"), err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	shell, err := NewShell(cfg)
	if err != nil {
		return err
	}
	defer shell.Close()

	// First Ctrl+C during execution cancels the running command.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigChan {
			if sig == syscall.SIGTERM {
				shell.Close()
				os.Exit(0)
			}
			shell.CancelCurrent()
		}
	}()

	// Hot-reload presentation settings when the config file changes.
	watchPath := configPath
	if watchPath == "" {
		watchPath, err = config.ConfigPath()
		if err != nil {
			watchPath = ""
		}
	}
	if watchPath != "" {
		if watcher, werr := config.NewWatcher(watchPath, shell.Reconfigure); werr == nil {
			if werr := watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}

	return shell.Run()
}
