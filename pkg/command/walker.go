// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// walker.go - The dispatch walk: literals first, then variable arguments
// in registration order, permission checks fail fast, and optional tail
// arguments bind their defaults when input runs out.
package command

import (
	"fmt"
	"sort"
)

// parse walks the tree against the token queue and returns the resolved
// command with every argument bound into the context. A panicking parser
// is an implementation bug, not expected invalid input; the walk boundary
// recovers it so it cannot propagate raw into a host event loop.
func (t *Tree) parse(cctx *Context, queue *TokenQueue) (cmd *Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			cmd, err = nil, fmt.Errorf("internal dispatch error: %v", r)
		}
	}()
	return t.walk(t.root, cctx, queue)
}

func (t *Tree) walk(n *Node, cctx *Context, queue *TokenQueue) (*Command, error) {
	tok, ok := queue.Peek()
	if !ok {
		return t.finish(n, cctx)
	}

	// Literal children win over variable arguments; sibling uniqueness
	// means at most one can match.
	if child := n.literalChild(tok, t.caseInsensitive); child != nil {
		if !nodeAllows(cctx.Sender(), child) {
			return nil, &NoPermissionError{Permission: representativePerm(child)}
		}
		queue.Pop()
		return t.walk(child, cctx, queue)
	}

	args := n.argumentChildren()
	if len(args) == 0 {
		if n == t.root {
			return nil, &NoSuchCommandError{
				Token:      tok,
				Suggestion: closestName(tok, t.RootNames(cctx.Sender())),
			}
		}
		// Unknown literal mid-path, or leftover tokens after a complete
		// command.
		return nil, t.syntaxError(n, cctx)
	}

	// Variable arguments are tried in registration order; the first
	// successful parse commits the branch. A permission failure fails the
	// whole walk rather than falling through to a sibling.
	var lastErr error
	for _, child := range args {
		if !nodeAllows(cctx.Sender(), child) {
			return nil, &NoPermissionError{Permission: representativePerm(child)}
		}
		mark := queue.Mark()
		value, perr := child.component.Parser.Parse(cctx, queue)
		if perr != nil {
			queue.Reset(mark)
			lastErr = &ArgumentParseError{
				Argument: child.component.Name,
				Input:    tok,
				Err:      perr,
			}
			continue
		}
		cctx.Bind(child.component.Name, value)
		return t.walk(child, cctx, queue)
	}
	return nil, lastErr
}

// finish resolves a node once the queue is exhausted. Trailing optional
// arguments are skipped, binding their defaults, until a terminal node is
// reached.
func (t *Tree) finish(n *Node, cctx *Context) (*Command, error) {
	cur := n
	for cur.owner == nil {
		var next *Node
		for _, child := range cur.argumentChildren() {
			if child.component.Kind == KindOptional {
				next = child
				break
			}
		}
		if next == nil {
			// Intermediate node with required continuations: invalid
			// syntax, reported with the valid continuations at this depth.
			return nil, t.syntaxError(n, cctx)
		}
		if !nodeAllows(cctx.Sender(), next) {
			return nil, &NoPermissionError{Permission: representativePerm(next)}
		}
		if next.component.Default != nil {
			cctx.Bind(next.component.Name, next.component.Default)
		}
		cur = next
	}

	if !cur.owner.checkSender(cctx.Sender()) {
		return nil, &InvalidSenderError{Command: cur.owner.PathString()}
	}
	return cur.owner, nil
}

// =============================================================================
// SYNTAX ERRORS
// =============================================================================

// syntaxError builds an InvalidSyntaxError for a failure at node n,
// restricted to branches the sender is allowed to see.
func (t *Tree) syntaxError(n *Node, cctx *Context) error {
	return &InvalidSyntaxError{
		Syntax:        t.syntaxHint(n, cctx.Sender()),
		Continuations: t.continuations(n, cctx.Sender()),
	}
}

// continuations lists the valid next components at a node, permission
// filtered and sorted for deterministic output.
func (t *Tree) continuations(n *Node, sender Sender) []string {
	var out []string
	for _, child := range n.children {
		if !child.visible(sender) {
			continue
		}
		out = append(out, child.component.SyntaxToken())
	}
	sort.Strings(out)
	return out
}

// syntaxHint renders a "correct syntax" string for the deepest matched
// node: the path down to it, extended through any unambiguous chain of
// visible children.
func (t *Tree) syntaxHint(n *Node, sender Sender) string {
	parts := make([]string, 0, 8)
	for _, comp := range n.pathComponents() {
		parts = append(parts, comp.SyntaxToken())
	}

	cur := n
	for {
		var vis []*Node
		for _, child := range cur.children {
			if child.visible(sender) {
				vis = append(vis, child)
			}
		}
		if len(vis) != 1 {
			break
		}
		parts = append(parts, vis[0].component.SyntaxToken())
		cur = vis[0]
		if cur.owner != nil {
			break
		}
	}

	hint := ""
	for i, p := range parts {
		if i > 0 {
			hint += " "
		}
		hint += p
	}
	return hint
}

// representativePerm picks a stable permission string for a denial error.
func representativePerm(n *Node) string {
	if len(n.perms) == 0 {
		return ""
	}
	perms := make([]string, 0, len(n.perms))
	for p := range n.perms {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms[0]
}
