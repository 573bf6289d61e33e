// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// manager.go - The public facade: registration, the building -> locked
// lifecycle, dispatch and suggestion.
package command

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// State is the manager's lifecycle state.
type State int

const (
	// StateBuilding accepts registrations and deletions; dispatch is
	// rejected.
	StateBuilding State = iota

	// StateLocked accepts dispatch; the tree is immutable. Concurrent
	// parses are safe precisely because nothing mutates the tree anymore.
	StateLocked
)

// Invocation is a successful parse: the resolved command and the context
// holding the sender and every bound argument value.
type Invocation struct {
	Command *Command
	Context *Context
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns a command tree and its lifecycle. Register everything,
// call Lock once, then dispatch from as many goroutines as you like.
type Manager struct {
	mu    sync.RWMutex
	state State
	tree  *Tree

	coordinator Coordinator

	// Per-sender command rate limiting; disabled when limit is zero.
	limit    rate.Limit
	burst    int
	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Manager.
type Option func(*Manager)

// WithCaseInsensitive makes literal matching case-insensitive.
func WithCaseInsensitive() Option {
	return func(m *Manager) { m.tree.caseInsensitive = true }
}

// WithOverride lets a registration replace an existing command at the
// identical full path instead of being rejected.
func WithOverride() Option {
	return func(m *Manager) { m.tree.allowOverride = true }
}

// WithAmbiguousArguments permits multiple variable-argument siblings at
// one depth. They are tried in registration order and the first
// successful parse wins; without this option such a registration is
// rejected outright.
func WithAmbiguousArguments() Option {
	return func(m *Manager) { m.tree.allowAmbiguous = true }
}

// WithCoordinator sets the execution coordinator.
func WithCoordinator(c Coordinator) Option {
	return func(m *Manager) { m.coordinator = c }
}

// WithRateLimit throttles each sender to the given sustained rate and
// burst. Exceeding it fails dispatch with a RateLimitedError before any
// parsing happens.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(m *Manager) {
		m.limit = limit
		m.burst = burst
	}
}

// NewManager creates a manager in the building state.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		tree:        NewTree(),
		coordinator: SyncCoordinator{},
		limiters:    make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Tree exposes the underlying tree for help generation and inspection.
func (m *Manager) Tree() *Tree {
	return m.tree
}

// =============================================================================
// REGISTRATION PHASE
// =============================================================================

// Register inserts a built command into the tree. Only valid in the
// building state.
func (m *Manager) Register(cmd *Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateBuilding {
		return ErrLocked
	}
	return m.tree.Insert(cmd)
}

// Delete removes a previously registered command and prunes nodes that
// existed only to reach it. Only valid in the building state.
func (m *Manager) Delete(cmd *Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateBuilding {
		return ErrLocked
	}
	return m.tree.Delete(cmd)
}

// Lock transitions Building -> Locked. After the lock the tree is
// immutable and dispatch becomes available. Locking twice is an error.
func (m *Manager) Lock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLocked {
		return ErrLocked
	}
	m.state = StateLocked
	return nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// Parse resolves raw input against the tree without executing anything.
// On success the invocation carries the resolved command and a context
// with every argument bound.
func (m *Manager) Parse(sender Sender, input string) (*Invocation, error) {
	if m.State() != StateLocked {
		return nil, ErrNotLocked
	}

	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return nil, &NoSuchCommandError{Token: ""}
	}

	cctx := NewContext(sender, input)
	cmd, err := m.tree.parse(cctx, NewTokenQueue(tokens))
	if err != nil {
		return nil, err
	}
	return &Invocation{Command: cmd, Context: cctx}, nil
}

// Execute parses the input and runs the resolved handler through the
// coordinator. A cancelled ctx abandons waiting for the result; work
// already running is not force-terminated, its result is discarded.
func (m *Manager) Execute(ctx context.Context, sender Sender, input string) error {
	if m.State() != StateLocked {
		return ErrNotLocked
	}
	if !m.allowSender(sender) {
		return &RateLimitedError{Sender: senderName(sender)}
	}

	result := m.coordinator.Run(ctx, func() error {
		inv, err := m.Parse(sender, input)
		if err != nil {
			return err
		}
		return runHandler(inv)
	})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Suggest computes tab completions for partial input. Returns nil before
// the manager is locked.
func (m *Manager) Suggest(sender Sender, input string) []string {
	if m.State() != StateLocked {
		return nil
	}

	tokens := Tokenize(input)
	committed := tokens
	partial := ""
	if len(tokens) > 0 && EndsOpen(input) {
		committed = tokens[:len(tokens)-1]
		partial = tokens[len(tokens)-1]
	}

	cctx := NewContext(sender, input).fork()
	return m.tree.suggest(cctx, committed, partial)
}

// HelpIndex returns visible commands grouped by category for the sender.
func (m *Manager) HelpIndex(sender Sender) map[string][]HelpEntry {
	return m.tree.HelpIndex(sender)
}

// MarkdownHelp renders the sender's help index as markdown.
func (m *Manager) MarkdownHelp(sender Sender, title string) string {
	return m.tree.MarkdownHelp(sender, title)
}

// Commands returns every registered command.
func (m *Manager) Commands() []*Command {
	return m.tree.Commands()
}

// =============================================================================
// INTERNALS
// =============================================================================

// runHandler invokes the handler, converting errors and recovered panics
// into ExecutionErrors so a misbehaving handler cannot take down the host.
func runHandler(inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{
				Command: inv.Command.PathString(),
				Err:     fmt.Errorf("handler panic: %v", r),
			}
		}
	}()
	if herr := inv.Command.Handler()(inv.Context); herr != nil {
		return &ExecutionError{Command: inv.Command.PathString(), Err: herr}
	}
	return nil
}

// allowSender applies per-sender rate limiting.
func (m *Manager) allowSender(sender Sender) bool {
	if m.limit <= 0 {
		return true
	}
	name := senderName(sender)

	m.limMu.Lock()
	limiter, ok := m.limiters[name]
	if !ok {
		limiter = rate.NewLimiter(m.limit, m.burst)
		m.limiters[name] = limiter
	}
	m.limMu.Unlock()

	return limiter.Allow()
}

func senderName(sender Sender) string {
	if sender == nil {
		return ""
	}
	return sender.Name()
}
