// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// node.go - A node of the command tree. Nodes are created on registration,
// shared between commands with a common prefix, and pruned on deletion.
package command

// Node is one node of the command tree. The root node has a nil component;
// every other node wraps the component it matches.
type Node struct {
	component *Component
	parent    *Node
	children  []*Node

	// owner is the command terminating at this node, if any.
	owner *Command

	// perms is the multiset of permissions of all commands routed through
	// this node; openCount counts routed commands requiring no permission.
	// Together they decide whether a sender may descend here.
	perms     map[string]int
	openCount int
}

func newNode(component *Component, parent *Node) *Node {
	return &Node{
		component: component,
		parent:    parent,
		perms:     make(map[string]int),
	}
}

// Component returns the component this node matches. Nil on the root.
func (n *Node) Component() *Component {
	return n.component
}

// Owner returns the command terminating at this node, or nil.
func (n *Node) Owner() *Command {
	return n.owner
}

// Children returns the node's children in registration order.
func (n *Node) Children() []*Node {
	return n.children
}

// literalChild returns the child literal matching tok, or nil. Literal
// names and aliases are unique across siblings, so at most one child can
// match.
func (n *Node) literalChild(tok string, caseInsensitive bool) *Node {
	for _, child := range n.children {
		if child.component.Kind == KindLiteral && child.component.Matches(tok, caseInsensitive) {
			return child
		}
	}
	return nil
}

// argumentChildren returns the node's variable-argument children in
// registration order.
func (n *Node) argumentChildren() []*Node {
	var args []*Node
	for _, child := range n.children {
		if child.component.IsArgument() {
			args = append(args, child)
		}
	}
	return args
}

// findChild returns the existing child for a component with the same kind
// and primary name, or nil.
func (n *Node) findChild(comp *Component, caseInsensitive bool) *Node {
	for _, child := range n.children {
		if child.component.Kind == comp.Kind && equalToken(child.component.Name, comp.Name, caseInsensitive) {
			return child
		}
	}
	return nil
}

// removeChild detaches a direct child.
func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// addRoute records that a command with the given permission is routed
// through this node.
func (n *Node) addRoute(permission string) {
	if permission == "" {
		n.openCount++
		return
	}
	n.perms[permission]++
}

// removeRoute reverses addRoute.
func (n *Node) removeRoute(permission string) {
	if permission == "" {
		if n.openCount > 0 {
			n.openCount--
		}
		return
	}
	if n.perms[permission] > 1 {
		n.perms[permission]--
	} else {
		delete(n.perms, permission)
	}
}

// visible reports whether the node should appear to the sender at all:
// the sender can descend into it and it leads to at least one non-hidden
// command. Used by suggestions and syntax hints so denied or hidden
// branches never leak.
func (n *Node) visible(sender Sender) bool {
	if !nodeAllows(sender, n) {
		return false
	}
	return n.anyListed()
}

// anyListed reports whether any command at or below this node is not
// hidden.
func (n *Node) anyListed() bool {
	if n.owner != nil && !n.owner.meta.Hidden {
		return true
	}
	for _, child := range n.children {
		if child.anyListed() {
			return true
		}
	}
	return false
}

// pathComponents returns the components from the root down to this node.
func (n *Node) pathComponents() []*Component {
	var comps []*Component
	for cur := n; cur != nil && cur.component != nil; cur = cur.parent {
		comps = append(comps, cur.component)
	}
	// Reverse into root-first order.
	for i, j := 0, len(comps)-1; i < j; i, j = i+1, j-1 {
		comps[i], comps[j] = comps[j], comps[i]
	}
	return comps
}
