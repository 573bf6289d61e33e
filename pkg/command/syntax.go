// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// syntax.go - Parsing of declared syntax strings ("create <name> [count]")
// into classified fragments. Fragments only exist while a command is being
// built; the tree stores components, never fragments.
package command

import (
	"fmt"
	"strings"
)

// FragmentKind classifies one token of a declared syntax string.
type FragmentKind int

const (
	// FragmentLiteral is a fixed keyword, possibly with |-separated aliases.
	FragmentLiteral FragmentKind = iota

	// FragmentRequired is "<name>".
	FragmentRequired

	// FragmentOptional is "[name]".
	FragmentOptional
)

// SyntaxFragment is the intermediate parse of one syntax token.
type SyntaxFragment struct {
	Kind    FragmentKind
	Name    string
	Aliases []string
}

// ParseSyntax splits a declared syntax string into ordered fragments.
// Literals may declare aliases with a pipe: "teleport|tp". Arguments are
// "<name>" (required) or "[name]" (optional). A required fragment may not
// follow an optional one: optionals are trailing only, which is what makes
// default binding unambiguous.
func ParseSyntax(syntax string) ([]SyntaxFragment, error) {
	fields := strings.Fields(syntax)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty syntax string")
	}

	fragments := make([]SyntaxFragment, 0, len(fields))
	sawOptional := false

	for _, field := range fields {
		frag, err := parseFragment(field)
		if err != nil {
			return nil, fmt.Errorf("syntax %q: %w", syntax, err)
		}

		if sawOptional && frag.Kind != FragmentOptional {
			return nil, fmt.Errorf("syntax %q: %q may not follow an optional argument", syntax, field)
		}
		if frag.Kind == FragmentOptional {
			sawOptional = true
		}

		fragments = append(fragments, frag)
	}

	return fragments, nil
}

func parseFragment(field string) (SyntaxFragment, error) {
	switch {
	case strings.HasPrefix(field, "<") && strings.HasSuffix(field, ">"):
		name := field[1 : len(field)-1]
		if name == "" || strings.ContainsAny(name, "<>[]| ") {
			return SyntaxFragment{}, fmt.Errorf("invalid required argument %q", field)
		}
		return SyntaxFragment{Kind: FragmentRequired, Name: name}, nil

	case strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]"):
		name := field[1 : len(field)-1]
		if name == "" || strings.ContainsAny(name, "<>[]| ") {
			return SyntaxFragment{}, fmt.Errorf("invalid optional argument %q", field)
		}
		return SyntaxFragment{Kind: FragmentOptional, Name: name}, nil

	case strings.ContainsAny(field, "<>[]"):
		return SyntaxFragment{}, fmt.Errorf("malformed fragment %q", field)

	default:
		parts := strings.Split(field, "|")
		for _, p := range parts {
			if p == "" {
				return SyntaxFragment{}, fmt.Errorf("empty literal in %q", field)
			}
		}
		// A plain literal carries nil aliases, not an empty slice, so
		// fragments compare equal to hand-built ones.
		var aliases []string
		if len(parts) > 1 {
			aliases = parts[1:]
		}
		return SyntaxFragment{Kind: FragmentLiteral, Name: parts[0], Aliases: aliases}, nil
	}
}
