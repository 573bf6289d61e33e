// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tokenizer.go - Quote-aware input tokenization and the token queue
// consumed by argument parsers.
package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// TOKENIZATION
// =============================================================================

// Tokenize splits raw input into tokens, respecting quotes.
// Supports both single and double quotes for arguments with spaces.
func Tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote bool

	// Decode rune by rune so multi-byte UTF-8 input survives intact; the
	// quoting and escape characters themselves are all single-byte.
	for i := 0; i < len(input); {
		char, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote

		case char == '\\' && i+1 < len(input) && (inDoubleQuote || inSingleQuote):
			// Escape sequence inside quotes
			next := input[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteByte(next)
				size = 2
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			// Space outside quotes - end current token
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}

		i += size
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// EndsOpen reports whether input ends mid-token. Interactive completion
// uses this to decide if the last token is still being typed or if the
// cursor sits at the start of a fresh token.
func EndsOpen(input string) bool {
	if input == "" {
		return false
	}
	return !unicode.IsSpace(rune(input[len(input)-1]))
}

// =============================================================================
// TOKEN QUEUE
// =============================================================================

// TokenQueue is an ordered queue of input tokens. Argument parsers consume
// tokens from the front; the tree walk rewinds the queue when it tries the
// next sibling parser after a failure.
type TokenQueue struct {
	tokens []string
	pos    int
}

// NewTokenQueue creates a queue over the given tokens.
func NewTokenQueue(tokens []string) *TokenQueue {
	return &TokenQueue{tokens: tokens}
}

// Peek returns the next token without consuming it.
func (q *TokenQueue) Peek() (string, bool) {
	if q.pos >= len(q.tokens) {
		return "", false
	}
	return q.tokens[q.pos], true
}

// Pop consumes and returns the next token.
func (q *TokenQueue) Pop() (string, bool) {
	if q.pos >= len(q.tokens) {
		return "", false
	}
	tok := q.tokens[q.pos]
	q.pos++
	return tok, true
}

// PopAll consumes and returns every remaining token.
func (q *TokenQueue) PopAll() []string {
	rest := q.tokens[q.pos:]
	q.pos = len(q.tokens)
	return rest
}

// Remaining returns the number of unconsumed tokens.
func (q *TokenQueue) Remaining() int {
	return len(q.tokens) - q.pos
}

// Empty reports whether all tokens have been consumed.
func (q *TokenQueue) Empty() bool {
	return q.pos >= len(q.tokens)
}

// Mark returns a position that can later be passed to Reset.
func (q *TokenQueue) Mark() int {
	return q.pos
}

// Reset rewinds the queue to a position previously returned by Mark.
func (q *TokenQueue) Reset(mark int) {
	if mark >= 0 && mark <= len(q.tokens) {
		q.pos = mark
	}
}

// Joined returns the remaining tokens joined with single spaces.
func (q *TokenQueue) Joined() string {
	return strings.Join(q.tokens[q.pos:], " ")
}
