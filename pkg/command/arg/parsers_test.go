// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package arg

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/arbor/pkg/command"
)

func parseOne(t *testing.T, p command.ArgParser, tokens ...string) (any, error) {
	t.Helper()
	ctx := command.NewContext(command.ConsoleSender{}, "")
	return p.Parse(ctx, command.NewTokenQueue(tokens))
}

// =============================================================================
// STRING PARSERS
// =============================================================================

func TestStringParser(t *testing.T) {
	v, err := parseOne(t, String(), "widgets")
	if err != nil || v != "widgets" {
		t.Fatalf("Parse = %v, %v", v, err)
	}

	if _, err := parseOne(t, String()); err == nil {
		t.Fatalf("empty queue succeeded")
	}
}

func TestStringSuggest(t *testing.T) {
	p := StringSuggest(func() []string { return []string{"alpha", "beta"} })
	ctx := command.NewContext(command.ConsoleSender{}, "")

	got := p.Suggest(ctx, "")
	if len(got) != 2 || got[0] != "alpha" {
		t.Fatalf("Suggest = %v", got)
	}
}

func TestGreedyParser(t *testing.T) {
	v, err := parseOne(t, Greedy(), "hello", "cruel", "world")
	if err != nil || v != "hello cruel world" {
		t.Fatalf("Parse = %v, %v", v, err)
	}

	if _, err := parseOne(t, Greedy()); err == nil {
		t.Fatalf("empty queue succeeded")
	}

	// The queue must be fully consumed.
	q := command.NewTokenQueue([]string{"a", "b"})
	ctx := command.NewContext(command.ConsoleSender{}, "")
	if _, err := Greedy().Parse(ctx, q); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !q.Empty() {
		t.Fatalf("greedy parser left tokens behind")
	}
}

// =============================================================================
// NUMBERS
// =============================================================================

func TestIntParser(t *testing.T) {
	tests := []struct {
		token   string
		parser  command.ArgParser
		want    int
		wantErr bool
	}{
		{"42", Int(), 42, false},
		{"-7", Int(), -7, false},
		{"0", Int(), 0, false},
		{"abc", Int(), 0, true},
		{"4.5", Int(), 0, true},
		{"5", IntRange(1, 10), 5, false},
		{"1", IntRange(1, 10), 1, false},
		{"10", IntRange(1, 10), 10, false},
		{"0", IntRange(1, 10), 0, true},
		{"11", IntRange(1, 10), 0, true},
	}

	for _, tc := range tests {
		v, err := parseOne(t, tc.parser, tc.token)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.token, err)
			continue
		}
		if v.(int) != tc.want {
			t.Errorf("Parse(%q) = %v, want %d", tc.token, v, tc.want)
		}
	}
}

func TestFloatParser(t *testing.T) {
	v, err := parseOne(t, Float(), "3.25")
	if err != nil || v.(float64) != 3.25 {
		t.Fatalf("Parse = %v, %v", v, err)
	}
	if _, err := parseOne(t, Float(), "west"); err == nil {
		t.Fatalf("Parse(\"west\") succeeded")
	}
}

// =============================================================================
// ENUM AND BOOL
// =============================================================================

func TestEnumParser(t *testing.T) {
	p := Enum("survival", "creative", "adventure")

	// Matching is case-insensitive but binds the canonical value.
	v, err := parseOne(t, p, "CREATIVE")
	if err != nil || v != "creative" {
		t.Fatalf("Parse = %v, %v", v, err)
	}

	if _, err := parseOne(t, p, "spectator"); err == nil {
		t.Fatalf("Parse(\"spectator\") succeeded")
	}

	ctx := command.NewContext(command.ConsoleSender{}, "")
	if got := p.Suggest(ctx, ""); len(got) != 3 {
		t.Fatalf("Suggest = %v", got)
	}
}

func TestBoolParser(t *testing.T) {
	tests := []struct {
		token   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"yes", true, false},
		{"on", true, false},
		{"false", false, false},
		{"no", false, false},
		{"off", false, false},
		{"maybe", false, true},
	}

	for _, tc := range tests {
		v, err := parseOne(t, Bool(), tc.token)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.token, err)
			continue
		}
		if v.(bool) != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.token, v, tc.want)
		}
	}
}

// =============================================================================
// DURATION AND UUID
// =============================================================================

func TestDurationParser(t *testing.T) {
	v, err := parseOne(t, Duration(), "1h30m")
	if err != nil || v.(time.Duration) != 90*time.Minute {
		t.Fatalf("Parse = %v, %v", v, err)
	}

	if _, err := parseOne(t, Duration(), "soon"); err == nil {
		t.Fatalf("Parse(\"soon\") succeeded")
	}
	if _, err := parseOne(t, Duration(), "-5m"); err == nil {
		t.Fatalf("negative duration succeeded")
	}
}

func TestUUIDParser(t *testing.T) {
	id := uuid.New()
	v, err := parseOne(t, UUID(), id.String())
	if err != nil || v.(uuid.UUID) != id {
		t.Fatalf("Parse = %v, %v", v, err)
	}

	if _, err := parseOne(t, UUID(), "not-a-uuid"); err == nil {
		t.Fatalf("Parse(\"not-a-uuid\") succeeded")
	}
}
