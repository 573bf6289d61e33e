// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// context.go - Per-invocation state: the sender, bound argument values and
// ambient data. A Context is created at the start of a parse cycle and is
// never shared between invocations.
package command

import (
	"time"

	"github.com/google/uuid"
)

// Context is the mutable key/value store of a single parse/execute cycle.
// Handlers read bound argument values from it; parsers may read values
// bound by earlier siblings for cross-argument validation.
type Context struct {
	id         uuid.UUID
	sender     Sender
	rawInput   string
	createdAt  time.Time
	suggesting bool

	values  map[string]any
	ambient map[string]any
}

// NewContext creates a context for one invocation by the given sender.
func NewContext(sender Sender, rawInput string) *Context {
	return &Context{
		id:        uuid.New(),
		sender:    sender,
		rawInput:  rawInput,
		createdAt: time.Now(),
		values:    make(map[string]any),
		ambient:   make(map[string]any),
	}
}

// ID returns the unique invocation ID.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Sender returns the sender of this invocation.
func (c *Context) Sender() Sender {
	return c.sender
}

// RawInput returns the original, untokenized input string.
func (c *Context) RawInput() string {
	return c.rawInput
}

// CreatedAt returns the time the invocation started.
func (c *Context) CreatedAt() time.Time {
	return c.createdAt
}

// Suggesting reports whether this context belongs to a suggestion
// traversal rather than a real dispatch. Parsers with side effects should
// stay passive when this is set.
func (c *Context) Suggesting() bool {
	return c.suggesting
}

// =============================================================================
// BOUND ARGUMENT VALUES
// =============================================================================

// Bind stores a parsed argument value under its declared name.
func (c *Context) Bind(name string, value any) {
	c.values[name] = value
}

// Get returns the bound value for an argument name.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// String returns a bound string argument, or "" if absent or not a string.
func (c *Context) String(name string) string {
	v, _ := c.values[name].(string)
	return v
}

// Int returns a bound int argument, or 0 if absent or not an int.
func (c *Context) Int(name string) int {
	v, _ := c.values[name].(int)
	return v
}

// Float returns a bound float argument, or 0 if absent.
func (c *Context) Float(name string) float64 {
	v, _ := c.values[name].(float64)
	return v
}

// Bool returns a bound bool argument, or false if absent.
func (c *Context) Bool(name string) bool {
	v, _ := c.values[name].(bool)
	return v
}

// Duration returns a bound duration argument, or 0 if absent.
func (c *Context) Duration(name string) time.Duration {
	v, _ := c.values[name].(time.Duration)
	return v
}

// UUID returns a bound UUID argument, or uuid.Nil if absent.
func (c *Context) UUID(name string) uuid.UUID {
	v, ok := c.values[name].(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return v
}

// =============================================================================
// AMBIENT DATA
// =============================================================================

// SetAmbient stores platform data that is not an argument value (e.g. the
// world a player stands in). Kept separate so argument names can never
// collide with platform keys.
func (c *Context) SetAmbient(key string, value any) {
	c.ambient[key] = value
}

// Ambient returns previously stored platform data.
func (c *Context) Ambient(key string) (any, bool) {
	v, ok := c.ambient[key]
	return v, ok
}

// =============================================================================
// COPYING
// =============================================================================

// fork returns a suggestion-mode copy of the context. Values bound during
// a suggestion traversal must never leak into a later real execution, so
// the suggestion engine works on the copy and discards it.
func (c *Context) fork() *Context {
	cp := &Context{
		id:         c.id,
		sender:     c.sender,
		rawInput:   c.rawInput,
		createdAt:  c.createdAt,
		suggesting: true,
		values:     make(map[string]any, len(c.values)),
		ambient:    make(map[string]any, len(c.ambient)),
	}
	for k, v := range c.values {
		cp.values[k] = v
	}
	for k, v := range c.ambient {
		cp.ambient[k] = v
	}
	return cp
}
