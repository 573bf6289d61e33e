// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - The dispatch error taxonomy. Every failure mode of a tree
// walk is a distinct type so callers can present each one differently
// (chat message, stderr, client packet). None of these are fatal to the
// host; they are all recoverable at the dispatch boundary.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// LIFECYCLE ERRORS
// =============================================================================

var (
	// ErrLocked is returned when a command is registered or deleted after
	// the manager transitioned to the locked state.
	ErrLocked = errors.New("command tree is locked; registration phase is over")

	// ErrNotLocked is returned when Parse, Execute or Suggest is called
	// while the manager is still in the building state.
	ErrNotLocked = errors.New("command tree is not locked; call Lock before dispatching")

	// ErrDuplicatePath is returned when a command is registered on a path
	// that already terminates another command and overriding is disabled.
	ErrDuplicatePath = errors.New("a command is already registered at this path")

	// ErrUnknownPath is returned by Delete for a path that does not
	// terminate a registered command.
	ErrUnknownPath = errors.New("no command registered at this path")
)

// =============================================================================
// PARSE FAILURES
// =============================================================================

// NoSuchCommandError is returned when the root token does not match any
// registered command name or alias.
type NoSuchCommandError struct {
	// Token is the unrecognized root token.
	Token string

	// Suggestion is the closest registered name by edit distance, or
	// empty if nothing was close enough.
	Suggestion string
}

func (e *NoSuchCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Token, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Token)
}

// InvalidSyntaxError is returned when a valid command prefix was matched
// but the tokens ran out, or mismatched, before reaching a terminal node.
type InvalidSyntaxError struct {
	// Syntax is the corrected syntax hint for the deepest matched node,
	// e.g. "group create <name>".
	Syntax string

	// Continuations are the valid next components at the failure depth.
	Continuations []string
}

func (e *InvalidSyntaxError) Error() string {
	if len(e.Continuations) > 0 {
		return fmt.Sprintf("invalid command syntax, correct syntax is: %s (expected one of: %s)",
			e.Syntax, strings.Join(e.Continuations, ", "))
	}
	return fmt.Sprintf("invalid command syntax, correct syntax is: %s", e.Syntax)
}

// NoPermissionError is returned when the sender lacks the permission
// required to descend into a node. The walk fails fast; no sibling branch
// is attempted and no parser below the denied node runs.
type NoPermissionError struct {
	// Permission is the permission string that was checked.
	Permission string
}

func (e *NoPermissionError) Error() string {
	return fmt.Sprintf("missing permission %q", e.Permission)
}

// ArgumentParseError is returned when a specific argument parser rejected
// its token(s). Err carries the parser-specific detail.
type ArgumentParseError struct {
	// Argument is the declared argument name.
	Argument string

	// Input is the token (or joined tokens) the parser rejected.
	Input string

	// Err is the parser's own failure.
	Err error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("invalid value %q for argument %q: %v", e.Input, e.Argument, e.Err)
}

func (e *ArgumentParseError) Unwrap() error {
	return e.Err
}

// InvalidSenderError is returned when the terminal node was reached but the
// command's sender constraint rejected the sender.
type InvalidSenderError struct {
	// Command is the full path of the rejected command.
	Command string
}

func (e *InvalidSenderError) Error() string {
	return fmt.Sprintf("this sender cannot execute %q", e.Command)
}

// =============================================================================
// EXECUTION FAILURES
// =============================================================================

// ExecutionError wraps an error (or recovered panic) raised by a command
// handler. The tree itself is never left in a corrupted state by a failing
// handler.
type ExecutionError struct {
	// Command is the full path of the command whose handler failed.
	Command string

	// Err is the handler's error, or a wrapped panic value.
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// RateLimitedError is returned when a sender exceeded the manager's
// configured command rate.
type RateLimitedError struct {
	// Sender is the throttled sender's name.
	Sender string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("sender %q is sending commands too fast", e.Sender)
}
