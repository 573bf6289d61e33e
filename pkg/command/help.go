// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Help output generated from the tree, and the "did you mean"
// suggestion used by NoSuchCommand errors.
package command

import (
	"sort"
	"strings"
)

// =============================================================================
// HELP INDEX
// =============================================================================

// HelpEntry describes one registered command for help output.
type HelpEntry struct {
	// Syntax is the full declared path, e.g. "group create <name>".
	Syntax string

	// Description is the command's help description.
	Description string

	// Category groups the entry; empty categories render as "General".
	Category string
}

// HelpIndex returns help entries for every visible command, grouped by
// category. Hidden commands and commands the sender cannot execute are
// excluded. A nil sender holds no permissions, matching how the walk and
// the suggestion engine treat it.
func (t *Tree) HelpIndex(sender Sender) map[string][]HelpEntry {
	index := make(map[string][]HelpEntry)
	for _, cmd := range t.Commands() {
		if cmd.meta.Hidden {
			continue
		}
		if cmd.permission != "" && (sender == nil || !sender.HasPermission(cmd.permission)) {
			continue
		}
		category := cmd.meta.Category
		if category == "" {
			category = "General"
		}
		index[category] = append(index[category], HelpEntry{
			Syntax:      cmd.PathString(),
			Description: cmd.meta.Description,
			Category:    category,
		})
	}
	for _, entries := range index {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Syntax < entries[j].Syntax
		})
	}
	return index
}

// MarkdownHelp renders the help index as a markdown document, suitable
// for terminal markdown renderers.
func (t *Tree) MarkdownHelp(sender Sender, title string) string {
	index := t.HelpIndex(sender)

	categories := make([]string, 0, len(index))
	for category := range index {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("# " + title + "\n")
	for _, category := range categories {
		sb.WriteString("\n## " + category + "\n\n")
		for _, entry := range index[category] {
			sb.WriteString("- `" + entry.Syntax + "`")
			if entry.Description != "" {
				sb.WriteString(" - " + entry.Description)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// =============================================================================
// DID YOU MEAN
// =============================================================================

// closestName returns the candidate closest to input by edit distance, or
// "" when nothing is close enough. The acceptable distance scales with the
// input length so short tokens don't match everything.
func closestName(input string, candidates []string) string {
	input = strings.ToLower(input)
	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, candidate := range candidates {
		distance := levenshtein(input, strings.ToLower(candidate))
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = candidate
		}
	}
	return bestMatch
}

// levenshtein calculates the edit distance between two strings using two
// rolling rows instead of the full matrix.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = minOf3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}

func minOf3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
