// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// command.go - The immutable command definition and its builder.
package command

import (
	"fmt"
	"strings"
)

// Handler executes a fully parsed command. The context carries the sender
// and every bound argument value. A returned error is wrapped in an
// ExecutionError; it never corrupts the tree.
type Handler func(ctx *Context) error

// Meta is descriptive command metadata. It does not affect dispatch.
type Meta struct {
	// Description is shown in help and completion output.
	Description string

	// Category groups commands in help output.
	Category string

	// Hidden commands are dispatchable but never listed or suggested.
	Hidden bool
}

// =============================================================================
// COMMAND
// =============================================================================

// Command is an immutable, fully built path through the tree: an ordered
// sequence of components, a permission, an optional sender constraint and
// an execution handler. Built once via Builder, then registered with a
// Manager, which decomposes it into shared tree nodes.
type Command struct {
	components  []*Component
	permission  string
	senderCheck SenderCheck
	handler     Handler
	meta        Meta
}

// Components returns the ordered component sequence.
func (c *Command) Components() []*Component {
	return c.components
}

// Permission returns the permission required to execute the command,
// or "" if none.
func (c *Command) Permission() string {
	return c.permission
}

// Handler returns the execution handler.
func (c *Command) Handler() Handler {
	return c.handler
}

// Meta returns the command's metadata.
func (c *Command) Meta() Meta {
	return c.meta
}

// RootName returns the primary name of the first literal.
func (c *Command) RootName() string {
	return c.components[0].Name
}

// PathString renders the full declared path, e.g. "group create <name>".
func (c *Command) PathString() string {
	parts := make([]string, len(c.components))
	for i, comp := range c.components {
		parts[i] = comp.SyntaxToken()
	}
	return strings.Join(parts, " ")
}

// checkSender applies the sender constraint at the terminal node.
func (c *Command) checkSender(sender Sender) bool {
	return c.senderCheck == nil || c.senderCheck(sender)
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder assembles a Command. Methods mutate the builder and return it so
// declarations read as one chain; Build validates the whole declaration at
// once and reports the first recorded problem.
type Builder struct {
	components []*Component
	permission string
	check      SenderCheck
	handler    Handler
	meta       Meta
	err        error
}

// NewBuilder starts a command rooted at the given literal name, with
// optional aliases. Every command starts with a literal: a bare argument
// can never open a command path.
func NewBuilder(name string, aliases ...string) *Builder {
	b := &Builder{}
	if name == "" {
		b.fail(fmt.Errorf("command name must not be empty"))
		return b
	}
	b.components = append(b.components, &Component{
		Kind:    KindLiteral,
		Name:    name,
		Aliases: aliases,
	})
	return b
}

// Literal appends a fixed keyword, with optional aliases.
func (b *Builder) Literal(name string, aliases ...string) *Builder {
	if name == "" {
		return b.fail(fmt.Errorf("literal name must not be empty"))
	}
	if b.lastIsOptional() {
		return b.fail(fmt.Errorf("literal %q may not follow an optional argument", name))
	}
	b.components = append(b.components, &Component{
		Kind:    KindLiteral,
		Name:    name,
		Aliases: aliases,
	})
	return b
}

// Required appends a required typed argument.
func (b *Builder) Required(name string, parser ArgParser, description string) *Builder {
	return b.argument(&Component{
		Kind:        KindRequired,
		Name:        name,
		Parser:      parser,
		Description: description,
	})
}

// Optional appends a trailing optional argument with no default. When no
// token remains the argument simply stays unbound.
func (b *Builder) Optional(name string, parser ArgParser, description string) *Builder {
	return b.argument(&Component{
		Kind:        KindOptional,
		Name:        name,
		Parser:      parser,
		Description: description,
	})
}

// OptionalDefault appends a trailing optional argument that binds def when
// no token remains.
func (b *Builder) OptionalDefault(name string, parser ArgParser, def any, description string) *Builder {
	return b.argument(&Component{
		Kind:        KindOptional,
		Name:        name,
		Parser:      parser,
		Default:     def,
		Description: description,
	})
}

// Syntax appends components parsed from a declared syntax string. Argument
// fragments look up their parser by name in parsers; a missing entry is a
// build error. Example:
//
//	NewBuilder("region").
//	    Syntax("flag|f <region> <flag> [value]", map[string]command.ArgParser{
//	        "region": arg.String(),
//	        "flag":   arg.Enum("pvp", "mobs", "build"),
//	        "value":  arg.Bool(),
//	    })
func (b *Builder) Syntax(syntax string, parsers map[string]ArgParser) *Builder {
	fragments, err := ParseSyntax(syntax)
	if err != nil {
		return b.fail(err)
	}
	for _, frag := range fragments {
		switch frag.Kind {
		case FragmentLiteral:
			b.Literal(frag.Name, frag.Aliases...)
		case FragmentRequired, FragmentOptional:
			parser, ok := parsers[frag.Name]
			if !ok {
				return b.fail(fmt.Errorf("no parser supplied for argument %q", frag.Name))
			}
			kind := KindRequired
			if frag.Kind == FragmentOptional {
				kind = KindOptional
			}
			b.argument(&Component{
				Kind:   kind,
				Name:   frag.Name,
				Parser: parser,
			})
		}
	}
	return b
}

// Permission sets the permission required to run the command.
func (b *Builder) Permission(permission string) *Builder {
	b.permission = permission
	return b
}

// SenderCheck constrains which senders may run the command.
func (b *Builder) SenderCheck(check SenderCheck) *Builder {
	b.check = check
	return b
}

// Description sets the help description.
func (b *Builder) Description(description string) *Builder {
	b.meta.Description = description
	return b
}

// Category sets the help category.
func (b *Builder) Category(category string) *Builder {
	b.meta.Category = category
	return b
}

// Hidden marks the command as dispatchable but unlisted.
func (b *Builder) Hidden() *Builder {
	b.meta.Hidden = true
	return b
}

// Handler sets the execution handler.
func (b *Builder) Handler(handler Handler) *Builder {
	b.handler = handler
	return b
}

// Build validates the declaration and returns the immutable command.
func (b *Builder) Build() (*Command, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.components) == 0 {
		return nil, fmt.Errorf("command has no components")
	}
	if b.components[0].Kind != KindLiteral {
		return nil, fmt.Errorf("command must start with a literal")
	}
	if b.handler == nil {
		return nil, fmt.Errorf("command %q has no handler", b.components[0].Name)
	}

	seen := make(map[string]bool)
	for i, comp := range b.components {
		if !comp.IsArgument() {
			continue
		}
		if comp.Parser == nil {
			return nil, fmt.Errorf("argument %q has no parser", comp.Name)
		}
		if seen[comp.Name] {
			return nil, fmt.Errorf("duplicate argument name %q", comp.Name)
		}
		seen[comp.Name] = true
		if isGreedy(comp.Parser) && i != len(b.components)-1 {
			return nil, fmt.Errorf("greedy argument %q must be the last component", comp.Name)
		}
	}

	return &Command{
		components:  b.components,
		permission:  b.permission,
		senderCheck: b.check,
		handler:     b.handler,
		meta:        b.meta,
	}, nil
}

func (b *Builder) argument(comp *Component) *Builder {
	if comp.Name == "" {
		return b.fail(fmt.Errorf("argument name must not be empty"))
	}
	if comp.Kind == KindRequired && b.lastIsOptional() {
		return b.fail(fmt.Errorf("required argument %q may not follow an optional argument", comp.Name))
	}
	b.components = append(b.components, comp)
	return b
}

func (b *Builder) lastIsOptional() bool {
	return len(b.components) > 0 && b.components[len(b.components)-1].Kind == KindOptional
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}
