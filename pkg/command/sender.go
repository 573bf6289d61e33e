// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sender.go - The sender abstraction and permission checks.
package command

// Sender is whoever issued a command: a console operator, a connected
// player, an automation hook. The framework only ever asks a sender two
// things: who it is and what it may do.
type Sender interface {
	// Name identifies the sender. Used for rate limiting and audit output.
	Name() string

	// HasPermission reports whether the sender holds the given permission.
	HasPermission(permission string) bool
}

// SenderCheck constrains which senders may execute a command, independent
// of permissions. A nil check accepts every sender.
type SenderCheck func(Sender) bool

// =============================================================================
// BUILT-IN SENDERS
// =============================================================================

// ConsoleSender is a sender that holds every permission. Useful for
// server consoles and tests.
type ConsoleSender struct {
	// ConsoleName overrides the default name.
	ConsoleName string
}

// Name implements Sender.
func (c ConsoleSender) Name() string {
	if c.ConsoleName != "" {
		return c.ConsoleName
	}
	return "console"
}

// HasPermission implements Sender. The console is never denied.
func (c ConsoleSender) HasPermission(string) bool {
	return true
}

// nodeAllows reports whether the sender may descend into a node. A node is
// open if any command routed through it requires no permission; otherwise
// the sender must hold at least one of the permissions of the commands
// below it. This keeps two commands sharing a literal prefix independently
// reachable (holding either one's permission is enough to pass the shared
// node).
func nodeAllows(sender Sender, n *Node) bool {
	if n.openCount > 0 || len(n.perms) == 0 {
		return true
	}
	if sender == nil {
		return false
	}
	for perm := range n.perms {
		if sender.HasPermission(perm) {
			return true
		}
	}
	return false
}
