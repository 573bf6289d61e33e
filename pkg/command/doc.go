// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command implements the arbor command tree: a trie of registered
// command definitions that parses tokenized input into a bound invocation,
// and separately computes permission-aware tab completion for partial input.
//
// # Key Types
//
//   - Command: an immutable command definition built with Builder
//   - Tree: the shared trie produced by merging all registered commands
//   - Manager: the public facade (Register, Parse, Execute, Suggest)
//   - Context: per-invocation store for the sender and bound argument values
//   - Coordinator: decides which goroutine runs parsing and handlers
//
// # Lifecycle
//
// A Manager starts in the building state. All commands are registered up
// front, then Lock is called exactly once. Parsing and suggestion are only
// available after the lock, which is what makes concurrent dispatch safe
// without a lock on the hot path.
//
// # Usage
//
// Register and dispatch a command:
//
//	mgr := command.NewManager()
//	cmd, _ := command.NewBuilder("group").
//	    Literal("create").
//	    Required("name", arg.String(), "group name").
//	    Handler(createGroup).
//	    Build()
//	mgr.Register(cmd)
//	mgr.Lock()
//	err := mgr.Execute(ctx, sender, "group create widgets")
//
// Get completions:
//
//	mgr.Suggest(sender, "group cr")
//	// Returns ["create"]
package command
