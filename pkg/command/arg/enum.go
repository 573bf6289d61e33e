// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// enum.go - Fixed-value-set and boolean parsers.
package arg

import (
	"fmt"
	"strings"

	"github.com/jeranaias/arbor/pkg/command"
)

// =============================================================================
// ENUM
// =============================================================================

type enumParser struct {
	values []string
}

// Enum parses a single token that must equal (case-insensitively) one of
// the given values. The canonical value from the set is what gets bound,
// not the raw token.
func Enum(values ...string) command.ArgParser {
	return &enumParser{values: values}
}

func (p *enumParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected one of: %s", strings.Join(p.values, ", "))
	}
	for _, v := range p.values {
		if strings.EqualFold(tok, v) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%q is not one of: %s", tok, strings.Join(p.values, ", "))
}

func (p *enumParser) Suggest(_ *command.Context, _ string) []string {
	return p.values
}

// =============================================================================
// BOOLEAN
// =============================================================================

type boolParser struct{}

// Bool parses true/false, yes/no, on/off (case-insensitive) into a bool.
func Bool() command.ArgParser {
	return boolParser{}
}

func (boolParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected true or false")
	}
	switch strings.ToLower(tok) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return nil, fmt.Errorf("%q is not a valid boolean", tok)
}

func (boolParser) Suggest(_ *command.Context, _ string) []string {
	return []string{"true", "false"}
}
