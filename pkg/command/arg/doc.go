// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package arg provides the standard argument parsers for the arbor
// command tree.
//
// Every parser consumes tokens from the front of the queue and either
// returns a typed value or a descriptive error; invalid input is an
// expected condition, never a panic. Suggestion output is independent of
// whether a parse of the same text would succeed, which is what keeps tab
// completion working while the user is mid-typo.
//
// # Parsers
//
//   - String, StringSuggest: a single token
//   - Greedy: the remainder of the input as one string
//   - Int, IntRange, Float: numbers
//   - Bool: true/false/yes/no/on/off
//   - Enum: one of a fixed value set
//   - Duration: Go duration syntax ("90s", "1h30m")
//   - UUID: RFC 4122 identifiers
package arg
