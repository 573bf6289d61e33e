// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// component.go - A single element of a command path: a literal keyword
// with aliases, or a typed argument backed by a parser.
package command

import "strings"

// =============================================================================
// ARGUMENT PARSER CONTRACT
// =============================================================================

// ArgParser consumes zero or more tokens from the front of the queue and
// produces a typed value, or a typed failure. Parsers must not panic for
// expected-invalid input; the walk treats a panic as an implementation bug
// and wraps it. A parser may read previously bound sibling arguments from
// the context for cross-argument validation.
type ArgParser interface {
	// Parse consumes tokens and returns the parsed value.
	Parse(ctx *Context, queue *TokenQueue) (any, error)

	// Suggest returns candidate completions for an in-progress token.
	// It must be callable regardless of whether a Parse of the same text
	// would succeed.
	Suggest(ctx *Context, partial string) []string
}

// GreedyParser is implemented by parsers that consume the remainder of the
// queue (e.g. a trailing free-text argument). The suggestion walk uses this
// to know a branch can have no components after the greedy one.
type GreedyParser interface {
	Greedy() bool
}

// isGreedy reports whether p consumes the remainder of the input.
func isGreedy(p ArgParser) bool {
	g, ok := p.(GreedyParser)
	return ok && g.Greedy()
}

// =============================================================================
// COMPONENT
// =============================================================================

// ComponentKind classifies a component within a command path.
type ComponentKind int

const (
	// KindLiteral is a fixed keyword, matched by name or alias equality.
	KindLiteral ComponentKind = iota

	// KindRequired is a typed argument that must parse for the walk to
	// descend.
	KindRequired

	// KindOptional is a typed argument that may be skipped when no tokens
	// remain, binding its default value instead.
	KindOptional
)

// Component is one element of a command's declared path.
type Component struct {
	// Kind classifies the component.
	Kind ComponentKind

	// Name is the primary literal keyword, or the argument name the parsed
	// value is bound under.
	Name string

	// Aliases are alternate keywords for literal components.
	Aliases []string

	// Parser produces the argument value. Nil for literals.
	Parser ArgParser

	// Default is bound for an optional argument when no token remains.
	// May be nil, in which case a skipped optional binds nothing.
	Default any

	// Description explains the component in help output.
	Description string
}

// IsArgument reports whether the component is a required or optional
// argument rather than a literal.
func (c *Component) IsArgument() bool {
	return c.Kind != KindLiteral
}

// Matches reports whether tok equals the literal's name or one of its
// aliases. Only meaningful for literal components.
func (c *Component) Matches(tok string, caseInsensitive bool) bool {
	if equalToken(c.Name, tok, caseInsensitive) {
		return true
	}
	for _, alias := range c.Aliases {
		if equalToken(alias, tok, caseInsensitive) {
			return true
		}
	}
	return false
}

// SyntaxToken renders the component the way it appears in a usage line:
// the bare keyword, "<name>" for required arguments, "[name]" for optional
// ones.
func (c *Component) SyntaxToken() string {
	switch c.Kind {
	case KindRequired:
		return "<" + c.Name + ">"
	case KindOptional:
		return "[" + c.Name + "]"
	default:
		return c.Name
	}
}

func equalToken(a, b string, caseInsensitive bool) bool {
	if caseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}
