// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"reflect"
	"testing"
)

func TestParseSyntax(t *testing.T) {
	tests := []struct {
		syntax string
		want   []SyntaxFragment
	}{
		{
			"create <name>",
			[]SyntaxFragment{
				{Kind: FragmentLiteral, Name: "create"},
				{Kind: FragmentRequired, Name: "name"},
			},
		},
		{
			"teleport|tp <x> [y]",
			[]SyntaxFragment{
				{Kind: FragmentLiteral, Name: "teleport", Aliases: []string{"tp"}},
				{Kind: FragmentRequired, Name: "x"},
				{Kind: FragmentOptional, Name: "y"},
			},
		},
		{
			"gamemode|gm|mode <mode>",
			[]SyntaxFragment{
				{Kind: FragmentLiteral, Name: "gamemode", Aliases: []string{"gm", "mode"}},
				{Kind: FragmentRequired, Name: "mode"},
			},
		},
	}

	for _, tc := range tests {
		got, err := ParseSyntax(tc.syntax)
		if err != nil {
			t.Errorf("ParseSyntax(%q) error: %v", tc.syntax, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseSyntax(%q) = %+v, want %+v", tc.syntax, got, tc.want)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"create <>",
		"create []",
		"create <na me>",
		"create [x] <y>", // required after optional
		"create [x] y",   // literal after optional
		"create <x",
		"create x>",
		"a||b <x>",
	}

	for _, syntax := range tests {
		if _, err := ParseSyntax(syntax); err == nil {
			t.Errorf("ParseSyntax(%q) succeeded, want error", syntax)
		}
	}
}
