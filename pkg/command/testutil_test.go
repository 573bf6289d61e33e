// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"errors"
	"testing"
)

// testSender is a sender with an explicit permission set.
type testSender struct {
	name  string
	perms map[string]bool
}

func (s testSender) Name() string { return s.name }

func (s testSender) HasPermission(p string) bool { return s.perms[p] }

// openSender has no permissions but a name.
func openSender(name string) testSender {
	return testSender{name: name}
}

// permSender holds exactly the given permissions.
func permSender(name string, perms ...string) testSender {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return testSender{name: name, perms: m}
}

func noop(*Context) error { return nil }

// wordParser consumes one token as-is.
type wordParser struct {
	suggestions []string
}

func (p wordParser) Parse(_ *Context, q *TokenQueue) (any, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, errInput
	}
	return tok, nil
}

func (p wordParser) Suggest(*Context, string) []string { return p.suggestions }

// numParser consumes one token that must be all digits.
type numParser struct{}

func (numParser) Parse(_ *Context, q *TokenQueue) (any, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, errInput
	}
	n := 0
	for _, r := range tok {
		if r < '0' || r > '9' {
			return nil, errNotNumeric
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

func (numParser) Suggest(*Context, string) []string { return nil }

var (
	errInput      = errors.New("expected a value")
	errNotNumeric = errors.New("not a number")
)

// mustCmd builds a command or fails the test.
func mustCmd(t *testing.T, b *Builder) *Command {
	t.Helper()
	cmd, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cmd
}
