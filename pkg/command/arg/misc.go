// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// misc.go - Duration and UUID parsers.
package arg

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/arbor/pkg/command"
)

// =============================================================================
// DURATION
// =============================================================================

type durationParser struct{}

// Duration parses a single token with Go duration syntax ("90s", "1h30m")
// into a time.Duration.
func Duration() command.ArgParser {
	return durationParser{}
}

func (durationParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected a duration")
	}
	d, err := time.ParseDuration(tok)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid duration (try 30s, 10m, 1h)", tok)
	}
	if d < 0 {
		return nil, fmt.Errorf("duration must not be negative")
	}
	return d, nil
}

func (durationParser) Suggest(_ *command.Context, partial string) []string {
	if partial != "" {
		return nil
	}
	return []string{"30s", "5m", "1h"}
}

// =============================================================================
// UUID
// =============================================================================

type uuidParser struct{}

// UUID parses a single token as an RFC 4122 UUID.
func UUID() command.ArgParser {
	return uuidParser{}
}

func (uuidParser) Parse(_ *command.Context, queue *command.TokenQueue) (any, error) {
	tok, ok := queue.Pop()
	if !ok {
		return nil, fmt.Errorf("expected a UUID")
	}
	id, err := uuid.Parse(tok)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid UUID", tok)
	}
	return id, nil
}

func (uuidParser) Suggest(_ *command.Context, _ string) []string {
	return nil
}
