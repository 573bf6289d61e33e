// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// number.go - Integer and float parsers.
package arg

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/arbor/pkg/command"
)

// =============================================================================
// INTEGER
// =============================================================================

type intParser struct {
	min, max int
	bounded  bool
}

// Int parses a single token as a base-10 integer.
func Int() command.ArgParser {
	return &intParser{}
}

// IntRange parses an integer and rejects values outside [min, max].
func IntRange(min, max int) command.ArgParser {
	return &intParser{min: min, max: max, bounded: true}
}

func (p *intParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected an integer")
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid integer", tok)
	}
	if p.bounded && (n < p.min || n > p.max) {
		return nil, fmt.Errorf("%d is outside the range %d..%d", n, p.min, p.max)
	}
	return n, nil
}

func (p *intParser) Suggest(_ *command.Context, partial string) []string {
	// Suggest the bounds when nothing is typed yet; there is no useful
	// completion for a half-typed number.
	if partial != "" || !p.bounded {
		return nil
	}
	return []string{strconv.Itoa(p.min), strconv.Itoa(p.max)}
}

// =============================================================================
// FLOAT
// =============================================================================

type floatParser struct{}

// Float parses a single token as a 64-bit float.
func Float() command.ArgParser {
	return floatParser{}
}

func (floatParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected a number")
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid number", tok)
	}
	return f, nil
}

func (floatParser) Suggest(_ *command.Context, _ string) []string {
	return nil
}
