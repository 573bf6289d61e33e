// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// string.go - Single-token and greedy string parsers.
package arg

import (
	"fmt"

	"github.com/jeranaias/arbor/pkg/command"
)

// =============================================================================
// SINGLE TOKEN
// =============================================================================

type stringParser struct {
	complete func() []string
}

// String parses a single token as-is.
func String() command.ArgParser {
	return &stringParser{}
}

// StringSuggest parses a single token and completes from the values the
// given callback returns at suggestion time. The callback runs on every
// completion request, so it can reflect live state (online players,
// loaded worlds, saved sessions).
func StringSuggest(complete func() []string) command.ArgParser {
	return &stringParser{complete: complete}
}

func (p *stringParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected a value")
	}
	return tok, nil
}

func (p *stringParser) Suggest(_ *command.Context, _ string) []string {
	if p.complete == nil {
		return nil
	}
	return p.complete()
}

// =============================================================================
// GREEDY
// =============================================================================

type greedyParser struct{}

// Greedy parses the remainder of the input as a single space-joined
// string. Must be the last component of a command.
func Greedy() command.ArgParser {
	return greedyParser{}
}

func (greedyParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	if queue.Empty() {
		return nil, fmt.Errorf("expected a value")
	}
	rest := queue.PopAll()
	joined := ""
	for i, tok := range rest {
		if i > 0 {
			joined += " "
		}
		joined += tok
	}
	return joined, nil
}

func (greedyParser) Suggest(_ *command.Context, _ string) []string {
	return nil
}

// Greedy implements command.GreedyParser.
func (greedyParser) Greedy() bool {
	return true
}
