// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"errors"
	"testing"
)

// =============================================================================
// INSERTION / MERGE TESTS
// =============================================================================

func TestInsertSharedPrefix(t *testing.T) {
	tree := NewTree()

	create := mustCmd(t, NewBuilder("group").
		Literal("create").
		Required("name", wordParser{}, "").
		Handler(noop))
	del := mustCmd(t, NewBuilder("group").
		Literal("delete").
		Required("name", wordParser{}, "").
		Handler(noop))

	if err := tree.Insert(create); err != nil {
		t.Fatalf("Insert(create): %v", err)
	}
	if err := tree.Insert(del); err != nil {
		t.Fatalf("Insert(delete): %v", err)
	}

	// Both commands share a single "group" root node.
	if len(tree.Root().Children()) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Root().Children()))
	}
	group := tree.Root().Children()[0]
	if group.Component().Name != "group" {
		t.Fatalf("root child = %q", group.Component().Name)
	}
	if len(group.Children()) != 2 {
		t.Fatalf("group children = %d, want 2", len(group.Children()))
	}

	if len(tree.Commands()) != 2 {
		t.Fatalf("Commands() = %d, want 2", len(tree.Commands()))
	}
}

func TestInsertDuplicatePath(t *testing.T) {
	tree := NewTree()

	first := mustCmd(t, NewBuilder("ping").Handler(noop))
	second := mustCmd(t, NewBuilder("ping").Handler(noop))

	if err := tree.Insert(first); err != nil {
		t.Fatalf("Insert(first): %v", err)
	}
	err := tree.Insert(second)
	if !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("Insert(second) = %v, want ErrDuplicatePath", err)
	}

	// With overriding enabled the second registration replaces the first.
	tree.allowOverride = true
	if err := tree.Insert(second); err != nil {
		t.Fatalf("Insert(second) with override: %v", err)
	}
	if got := len(tree.Commands()); got != 1 {
		t.Fatalf("Commands() = %d, want 1", got)
	}
	if tree.Commands()[0] != second {
		t.Fatalf("override did not replace the owner")
	}
}

func TestInsertMergesAliases(t *testing.T) {
	tree := NewTree()

	a := mustCmd(t, NewBuilder("teleport", "tp").Literal("here").Handler(noop))
	b := mustCmd(t, NewBuilder("teleport", "tele").Literal("there").Handler(noop))

	if err := tree.Insert(a); err != nil {
		t.Fatalf("Insert(a): %v", err)
	}
	if err := tree.Insert(b); err != nil {
		t.Fatalf("Insert(b): %v", err)
	}

	// One node answers to all three names; no sibling was created.
	if len(tree.Root().Children()) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Root().Children()))
	}
	node := tree.Root().Children()[0]
	for _, tok := range []string{"teleport", "tp", "tele"} {
		if !node.Component().Matches(tok, false) {
			t.Errorf("node does not match %q", tok)
		}
	}
}

func TestInsertLiteralCollision(t *testing.T) {
	tree := NewTree()

	a := mustCmd(t, NewBuilder("save", "s").Handler(noop))
	// "status" aliased "s" collides with the existing alias.
	b := mustCmd(t, NewBuilder("status", "s").Handler(noop))

	if err := tree.Insert(a); err != nil {
		t.Fatalf("Insert(a): %v", err)
	}
	if err := tree.Insert(b); err == nil {
		t.Fatalf("Insert(b) succeeded, want alias collision error")
	}
}

func TestInsertAliasMergeCollision(t *testing.T) {
	tree := NewTree()

	save := mustCmd(t, NewBuilder("save", "s").Handler(noop))
	statusOn := mustCmd(t, NewBuilder("status").Literal("on").Handler(noop))
	// Merging alias "s" onto the existing "status" root node would make
	// two sibling literals answer to the same token.
	statusOff := mustCmd(t, NewBuilder("status", "s").Literal("off").Handler(noop))

	if err := tree.Insert(save); err != nil {
		t.Fatalf("Insert(save): %v", err)
	}
	if err := tree.Insert(statusOn); err != nil {
		t.Fatalf("Insert(statusOn): %v", err)
	}
	if err := tree.Insert(statusOff); err == nil {
		t.Fatal("Insert(statusOff) succeeded, want alias collision error")
	}

	// The rejected registration must leave the tree untouched: exactly
	// one root literal still answers to "s".
	matches := 0
	for _, child := range tree.root.children {
		if child.component.Matches("s", false) {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("token \"s\" matches %d root literals, want 1", matches)
	}
}

func TestInsertAliasMergeDeepCollision(t *testing.T) {
	tree := NewTree()

	groupCreate := mustCmd(t, NewBuilder("group").
		Literal("create", "c").Required("name", wordParser{}, "").Handler(noop))
	groupClear := mustCmd(t, NewBuilder("group").
		Literal("clear").Handler(noop))
	// Aliasing "clear" as "c" under the shared "group" node collides with
	// the sibling "create" alias.
	groupClearAlias := mustCmd(t, NewBuilder("group").
		Literal("clear", "c").Required("name", wordParser{}, "").Handler(noop))

	if err := tree.Insert(groupCreate); err != nil {
		t.Fatalf("Insert(groupCreate): %v", err)
	}
	if err := tree.Insert(groupClear); err != nil {
		t.Fatalf("Insert(groupClear): %v", err)
	}
	if err := tree.Insert(groupClearAlias); err == nil {
		t.Fatal("Insert(groupClearAlias) succeeded, want alias collision error")
	}
}

func TestInsertAmbiguousArguments(t *testing.T) {
	count := mustCmd(t, NewBuilder("give").
		Required("count", numParser{}, "").
		Handler(noop))
	item := mustCmd(t, NewBuilder("give").
		Required("item", wordParser{}, "").
		Handler(noop))

	tree := NewTree()
	if err := tree.Insert(count); err != nil {
		t.Fatalf("Insert(count): %v", err)
	}
	if err := tree.Insert(item); err == nil {
		t.Fatalf("sibling argument registration succeeded, want ambiguity error")
	}

	// Explicitly permitted, the second sibling registers in order.
	tree = NewTree()
	tree.allowAmbiguous = true
	if err := tree.Insert(count); err != nil {
		t.Fatalf("Insert(count): %v", err)
	}
	if err := tree.Insert(item); err != nil {
		t.Fatalf("Insert(item) with ambiguity allowed: %v", err)
	}
}

// =============================================================================
// DELETION TESTS
// =============================================================================

func TestDeletePrunesOrphans(t *testing.T) {
	tree := NewTree()

	create := mustCmd(t, NewBuilder("group").
		Literal("create").
		Required("name", wordParser{}, "").
		Handler(noop))
	del := mustCmd(t, NewBuilder("group").
		Literal("delete").
		Required("name", wordParser{}, "").
		Handler(noop))

	if err := tree.Insert(create); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tree.Insert(del); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := tree.Delete(create); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The "create" branch is gone; the shared "group" node and the
	// "delete" branch survive.
	group := tree.Root().Children()[0]
	if len(group.Children()) != 1 {
		t.Fatalf("group children = %d, want 1", len(group.Children()))
	}
	if group.Children()[0].Component().Name != "delete" {
		t.Fatalf("surviving child = %q", group.Children()[0].Component().Name)
	}

	// Deleting the last command through a prefix removes the prefix too.
	if err := tree.Delete(del); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(tree.Root().Children()) != 0 {
		t.Fatalf("root children = %d, want 0", len(tree.Root().Children()))
	}

	if err := tree.Delete(del); !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("second Delete = %v, want ErrUnknownPath", err)
	}
}

func TestDeleteClearsPermissionRoutes(t *testing.T) {
	tree := NewTree()

	admin := mustCmd(t, NewBuilder("region").
		Literal("wipe").
		Permission("region.admin").
		Handler(noop))
	open := mustCmd(t, NewBuilder("region").
		Literal("info").
		Handler(noop))

	if err := tree.Insert(admin); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tree.Insert(open); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	region := tree.Root().Children()[0]
	if !nodeAllows(openSender("u"), region) {
		t.Fatalf("shared node should be open via the unpermissioned command")
	}

	if err := tree.Delete(open); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Only the admin command routes through "region" now.
	if nodeAllows(openSender("u"), region) {
		t.Fatalf("node still open after unpermissioned command was deleted")
	}
	if !nodeAllows(permSender("a", "region.admin"), region) {
		t.Fatalf("admin sender denied")
	}
}
