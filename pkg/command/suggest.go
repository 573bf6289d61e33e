// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - The suggestion traversal. Unlike dispatch, it explores
// every branch consistent with the committed tokens, because the user has
// not finished typing and the first successful branch is not necessarily
// the one they are heading for.
package command

import (
	"sort"
	"strings"
)

// suggest computes completions for the in-progress token. committed holds
// the tokens the user has finished typing; partial is the token under the
// cursor (possibly empty). The context is a suggestion-mode fork, so
// values bound here can never leak into a real execution.
func (t *Tree) suggest(cctx *Context, committed []string, partial string) []string {
	nodes := []*Node{t.root}

	for _, tok := range committed {
		var next []*Node
		for _, n := range nodes {
			if child := n.literalChild(tok, t.caseInsensitive); child != nil {
				if nodeAllows(cctx.Sender(), child) {
					next = append(next, child)
				}
			}
			for _, child := range n.argumentChildren() {
				if !nodeAllows(cctx.Sender(), child) {
					continue
				}
				if isGreedy(child.component.Parser) {
					// A greedy argument swallows the rest of the line;
					// there is nothing after it to complete.
					continue
				}
				// Best effort: bind the value when the token parses, but
				// descend either way. A malformed earlier argument should
				// not block completing the current token.
				tryBind(cctx, child.component, tok)
				next = append(next, child)
			}
		}
		nodes = next
		if len(nodes) == 0 {
			return nil
		}
	}

	entries := make(map[string]int)
	for _, n := range nodes {
		for _, child := range n.children {
			if !child.visible(cctx.Sender()) {
				continue
			}
			comp := child.component
			if comp.Kind == KindLiteral {
				addCandidate(entries, comp.Name, partial, 0)
				for _, alias := range comp.Aliases {
					// Aliases rank below primary names, as in the
					// completion UI this feeds.
					addCandidate(entries, alias, partial, -10)
				}
			} else {
				for _, s := range comp.Parser.Suggest(cctx, partial) {
					addCandidate(entries, s, partial, 0)
				}
			}
		}
	}

	return rankCandidates(entries)
}

// tryBind parses a single committed token with the component's parser,
// binding the value on success and swallowing failures and panics.
func tryBind(cctx *Context, comp *Component, tok string) {
	defer func() {
		recover() // a broken parser must not kill completion
	}()
	q := NewTokenQueue([]string{tok})
	if value, err := comp.Parser.Parse(cctx, q); err == nil {
		cctx.Bind(comp.Name, value)
	}
}

// =============================================================================
// RANKING
// =============================================================================

// addCandidate records a candidate if it matches the partial token's
// prefix, keeping the best score on duplicates.
func addCandidate(entries map[string]int, value, partial string, bias int) {
	if value == "" {
		return
	}
	if !strings.HasPrefix(strings.ToLower(value), strings.ToLower(partial)) {
		return
	}
	score := matchScore(value, partial) + bias
	if have, ok := entries[value]; !ok || score > have {
		entries[value] = score
	}
}

// rankCandidates orders candidates by score (descending), then
// alphabetically.
func rankCandidates(entries map[string]int) []string {
	out := make([]string, 0, len(entries))
	for value := range entries {
		out = append(out, value)
	}
	sort.Slice(out, func(i, j int) bool {
		if entries[out[i]] != entries[out[j]] {
			return entries[out[i]] > entries[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// matchScore scores a candidate against the partial token. Higher is
// better: exact matches first, then prefix matches, shorter candidates
// ahead of longer ones.
func matchScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100
	if value == partial {
		return score + 100
	}
	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}
	score -= len(value) / 2
	return score
}
