// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tree.go - Construction and maintenance of the command trie: prefix
// merging on registration, conflict detection, deletion with upward
// pruning.
package command

import (
	"fmt"
)

// Tree is the shared trie produced by merging every registered command
// path. It is mutated only during the registration phase; the Manager
// guarantees no dispatch happens while the tree is still mutable.
type Tree struct {
	root *Node

	caseInsensitive bool
	allowOverride   bool
	allowAmbiguous  bool
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{root: newNode(nil, nil)}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// =============================================================================
// INSERTION
// =============================================================================

// Insert registers a command, reusing existing nodes for any shared
// prefix. Two commands with the identical full path conflict; the second
// registration is rejected unless overriding is enabled, in which case the
// previous mapping at that path is deleted first.
func (t *Tree) Insert(cmd *Command) error {
	// Walk first without mutating, so a rejected registration leaves the
	// tree untouched.
	if err := t.checkInsert(cmd); err != nil {
		return err
	}

	cur := t.root
	for _, comp := range cmd.components {
		child := cur.findChild(comp, t.caseInsensitive)
		if child == nil {
			child = newNode(comp, cur)
			cur.children = append(cur.children, child)
		} else if comp.Kind == KindLiteral {
			mergeAliases(child.component, comp)
		}
		cur = child
	}

	if cur.owner != nil {
		// checkInsert already verified overriding is permitted.
		t.removeRoutes(cur, cur.owner.permission)
		cur.owner = nil
	}

	cur.owner = cmd
	for n := cur; n != nil && n.component != nil; n = n.parent {
		n.addRoute(cmd.permission)
	}

	return nil
}

// checkInsert validates a registration against the current tree.
func (t *Tree) checkInsert(cmd *Command) error {
	if len(cmd.components) == 0 || cmd.components[0].Kind != KindLiteral {
		return fmt.Errorf("command must start with a literal")
	}

	cur := t.root
	for _, comp := range cmd.components {
		child := cur.findChild(comp, t.caseInsensitive)
		if child == nil {
			if comp.Kind == KindLiteral {
				if err := t.checkLiteralConflicts(cur, comp, nil); err != nil {
					return err
				}
			} else if len(cur.argumentChildren()) > 0 && !t.allowAmbiguous {
				return fmt.Errorf("sibling argument ambiguity at %q: argument %q conflicts with an existing argument (enable WithAmbiguousArguments to permit ordered fallback)",
					nodePath(cur), comp.Name)
			}
			// The rest of the path is brand new; nodes created below
			// this point have no pre-existing siblings to conflict with.
			return nil
		}
		if comp.Kind == KindLiteral && len(comp.Aliases) > 0 {
			// Merging into an existing literal may introduce new aliases;
			// they must stay unique across the node's siblings too.
			if err := t.checkLiteralConflicts(cur, comp, child); err != nil {
				return err
			}
		}
		cur = child
	}

	if cur.owner != nil && !t.allowOverride {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, cmd.PathString())
	}
	return nil
}

// checkLiteralConflicts rejects a literal whose name or aliases collide
// with a different sibling literal. Uniqueness across siblings is what
// lets the walk treat a literal match as exclusive. merging, when non-nil,
// is the existing node the component is being merged into and is exempt
// from the check.
func (t *Tree) checkLiteralConflicts(parent *Node, comp *Component, merging *Node) error {
	names := append([]string{comp.Name}, comp.Aliases...)
	for _, name := range names {
		for _, sibling := range parent.children {
			if sibling == merging || sibling.component.Kind != KindLiteral {
				continue
			}
			if sibling.component.Matches(name, t.caseInsensitive) {
				return fmt.Errorf("literal %q collides with sibling %q at %q",
					name, sibling.component.Name, nodePath(parent))
			}
		}
	}
	return nil
}

// mergeAliases extends an existing literal node with the aliases of a
// newly registered component, without creating sibling nodes.
func mergeAliases(existing, incoming *Component) {
	for _, alias := range incoming.Aliases {
		found := false
		for _, have := range existing.Aliases {
			if have == alias {
				found = true
				break
			}
		}
		if !found {
			existing.Aliases = append(existing.Aliases, alias)
		}
	}
}

// =============================================================================
// DELETION
// =============================================================================

// Delete removes the command terminating at the given component path and
// prunes any intermediate nodes that existed only to reach it. Nodes still
// owning, or leading to, other live commands are untouched.
func (t *Tree) Delete(cmd *Command) error {
	cur := t.root
	for _, comp := range cmd.components {
		child := cur.findChild(comp, t.caseInsensitive)
		if child == nil {
			return fmt.Errorf("%w: %q", ErrUnknownPath, cmd.PathString())
		}
		cur = child
	}

	if cur.owner == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPath, cmd.PathString())
	}

	t.removeRoutes(cur, cur.owner.permission)
	cur.owner = nil

	// Prune upward: a node whose only purpose was reaching the deleted
	// command has no owner and no children left.
	for n := cur; n != nil && n.component != nil; {
		parent := n.parent
		if n.owner == nil && len(n.children) == 0 {
			parent.removeChild(n)
		}
		n = parent
	}

	return nil
}

// removeRoutes removes one command's permission contribution from the
// terminal node and every ancestor.
func (t *Tree) removeRoutes(terminal *Node, permission string) {
	for n := terminal; n != nil && n.component != nil; n = n.parent {
		n.removeRoute(permission)
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// Commands returns every registered command in depth-first order.
func (t *Tree) Commands() []*Command {
	var cmds []*Command
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.owner != nil {
			cmds = append(cmds, n.owner)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
	return cmds
}

// RootNames returns the primary names and aliases of the root literals
// visible to the sender, excluding hidden-only and permission-denied
// branches so typo suggestions never reveal a name the sender could not
// run anyway.
func (t *Tree) RootNames(sender Sender) []string {
	var names []string
	for _, child := range t.root.children {
		if !child.visible(sender) {
			continue
		}
		names = append(names, child.component.Name)
		names = append(names, child.component.Aliases...)
	}
	return names
}

// nodePath renders a node's position for error messages.
func nodePath(n *Node) string {
	comps := n.pathComponents()
	if len(comps) == 0 {
		return "<root>"
	}
	path := ""
	for i, comp := range comps {
		if i > 0 {
			path += " "
		}
		path += comp.SyntaxToken()
	}
	return path
}
