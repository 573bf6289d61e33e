// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import "testing"

func TestClosestName(t *testing.T) {
	candidates := []string{"group", "give", "teleport", "ban"}

	tests := []struct {
		input string
		want  string
	}{
		{"gruop", "group"},
		{"grup", "group"},
		{"teleprot", "teleport"},
		{"bam", "ban"},
		{"bna", ""}, // short inputs only get one edit; a transposition is two
		{"xyzzy", ""},
		{"g", ""}, // too short to guess
	}

	for _, tc := range tests {
		if got := closestName(tc.input, candidates); got != tc.want {
			t.Errorf("closestName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"group", "group", 0},
		{"gruop", "group", 2},
	}

	for _, tc := range tests {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCommandPathString(t *testing.T) {
	cmd := mustCmd(t, NewBuilder("group").
		Literal("create").
		Required("name", wordParser{}, "").
		OptionalDefault("size", numParser{}, 10, "").
		Handler(noop))

	if got := cmd.PathString(); got != "group create <name> [size]" {
		t.Fatalf("PathString() = %q", got)
	}
	if got := cmd.RootName(); got != "group" {
		t.Fatalf("RootName() = %q", got)
	}
}

func TestBuilderValidation(t *testing.T) {
	// Missing handler.
	if _, err := NewBuilder("x").Build(); err == nil {
		t.Errorf("Build without handler succeeded")
	}

	// Required after optional.
	if _, err := NewBuilder("x").
		Optional("a", wordParser{}, "").
		Required("b", wordParser{}, "").
		Handler(noop).
		Build(); err == nil {
		t.Errorf("required-after-optional succeeded")
	}

	// Duplicate argument names.
	if _, err := NewBuilder("x").
		Required("a", wordParser{}, "").
		Required("a", numParser{}, "").
		Handler(noop).
		Build(); err == nil {
		t.Errorf("duplicate argument name succeeded")
	}

	// Greedy argument must be last.
	if _, err := NewBuilder("x").
		Required("rest", greedyTestParser{}, "").
		Required("after", wordParser{}, "").
		Handler(noop).
		Build(); err == nil {
		t.Errorf("greedy-not-last succeeded")
	}

	// Empty root name.
	if _, err := NewBuilder("").Handler(noop).Build(); err == nil {
		t.Errorf("empty root name succeeded")
	}
}

func TestBuilderSyntax(t *testing.T) {
	cmd, err := NewBuilder("region").
		Syntax("flag|f <name> [value]", map[string]ArgParser{
			"name":  wordParser{},
			"value": wordParser{},
		}).
		Handler(noop).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	comps := cmd.Components()
	if len(comps) != 4 {
		t.Fatalf("components = %d, want 4", len(comps))
	}
	if comps[1].Name != "flag" || len(comps[1].Aliases) != 1 || comps[1].Aliases[0] != "f" {
		t.Fatalf("literal fragment = %+v", comps[1])
	}
	if comps[2].Kind != KindRequired || comps[3].Kind != KindOptional {
		t.Fatalf("argument kinds = %v, %v", comps[2].Kind, comps[3].Kind)
	}

	// Missing parser mapping is a build error.
	if _, err := NewBuilder("region").
		Syntax("set <name>", nil).
		Handler(noop).
		Build(); err == nil {
		t.Errorf("syntax with missing parser succeeded")
	}
}
