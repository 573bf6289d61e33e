// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Demo command set for the arbor shell.
//
// Registers a small server-admin command tree that exercises literals,
// aliases, typed arguments, optional defaults, greedy tails, permissions,
// and sender-scoped completion.

package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/arbor/pkg/command"
	"github.com/jeranaias/arbor/pkg/command/arg"
)

// =============================================================================
// DEMO WORLD STATE
// =============================================================================

// worldState is the in-memory backing state the demo commands mutate.
type worldState struct {
	mu     sync.Mutex
	groups map[string]int // name -> member count
	bans   map[string]string
	mutes  map[string]time.Duration
}

func newWorldState() *worldState {
	return &worldState{
		groups: make(map[string]int),
		bans:   make(map[string]string),
		mutes:  make(map[string]time.Duration),
	}
}

func (w *worldState) groupNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.groups))
	for name := range w.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// knownPlayers backs player-name completion for the demo.
var knownPlayers = []string{"alex", "casey", "jordan", "morgan", "riley", "sam"}

func playerParser() command.ArgParser {
	return arg.StringSuggest(func() []string {
		return knownPlayers
	})
}

// =============================================================================
// COMMAND REGISTRATION
// =============================================================================

// registerCommands builds the demo command set on the manager. Every command
// is registered before the manager is locked.
func registerCommands(mgr *command.Manager, world *worldState) error {
	builders := []*command.Builder{
		groupCreate(world),
		groupDelete(world),
		groupList(world),
		banCommand(world),
		pardonCommand(world),
		muteCommand(world),
		teleportCommand(),
		gamemodeCommand(),
		messageCommand(),
		regionWipe(),
		regionInfo(),
		seedCommand(),
	}

	for _, b := range builders {
		cmd, err := b.Build()
		if err != nil {
			return fmt.Errorf("build command: %w", err)
		}
		if err := mgr.Register(cmd); err != nil {
			return fmt.Errorf("register %s: %w", cmd.RootName(), err)
		}
	}
	return nil
}

func groupCreate(world *worldState) *command.Builder {
	return command.NewBuilder("group", "g").
		Literal("create").
		Required("name", arg.String(), "Name of the new group").
		OptionalDefault("size", arg.IntRange(1, 64), 8, "Maximum member count").
		Description("Create a player group").
		Category("Groups").
		Handler(func(ctx *command.Context) error {
			name := ctx.String("name")
			size := ctx.Int("size")
			world.mu.Lock()
			defer world.mu.Unlock()
			if _, exists := world.groups[name]; exists {
				return fmt.Errorf("group %q already exists", name)
			}
			world.groups[name] = size
			fmt.Println(successStyle.Render(fmt.Sprintf("Created group %q (max %d members)", name, size)))
			return nil
		})
}

func groupDelete(world *worldState) *command.Builder {
	return command.NewBuilder("group", "g").
		Literal("delete").
		Required("name", arg.StringSuggest(world.groupNames), "Group to delete").
		Description("Delete a player group").
		Category("Groups").
		Handler(func(ctx *command.Context) error {
			name := ctx.String("name")
			world.mu.Lock()
			defer world.mu.Unlock()
			if _, exists := world.groups[name]; !exists {
				return fmt.Errorf("no group named %q", name)
			}
			delete(world.groups, name)
			fmt.Println(successStyle.Render(fmt.Sprintf("Deleted group %q", name)))
			return nil
		})
}

func groupList(world *worldState) *command.Builder {
	return command.NewBuilder("group", "g").
		Literal("list").
		Description("List all player groups").
		Category("Groups").
		Handler(func(ctx *command.Context) error {
			names := world.groupNames()
			if len(names) == 0 {
				fmt.Println(infoStyle.Render("No groups defined."))
				return nil
			}
			for _, name := range names {
				world.mu.Lock()
				size := world.groups[name]
				world.mu.Unlock()
				fmt.Printf("  %s (max %d)\n", name, size)
			}
			return nil
		})
}

func banCommand(world *worldState) *command.Builder {
	return command.NewBuilder("ban").
		Required("player", playerParser(), "Player to ban").
		OptionalDefault("reason", arg.Greedy(), "banned by an operator", "Reason shown to the player").
		Permission("admin.ban").
		Description("Ban a player from the server").
		Category("Moderation").
		Handler(func(ctx *command.Context) error {
			player := ctx.String("player")
			reason := ctx.String("reason")
			world.mu.Lock()
			world.bans[player] = reason
			world.mu.Unlock()
			fmt.Println(warningStyle.Render(fmt.Sprintf("Banned %s: %s", player, reason)))
			return nil
		})
}

func pardonCommand(world *worldState) *command.Builder {
	return command.NewBuilder("pardon", "unban").
		Required("player", playerParser(), "Player to pardon").
		Permission("admin.ban").
		Description("Lift a player's ban").
		Category("Moderation").
		Handler(func(ctx *command.Context) error {
			player := ctx.String("player")
			world.mu.Lock()
			_, banned := world.bans[player]
			delete(world.bans, player)
			world.mu.Unlock()
			if !banned {
				return fmt.Errorf("%s is not banned", player)
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Pardoned %s", player)))
			return nil
		})
}

func muteCommand(world *worldState) *command.Builder {
	return command.NewBuilder("mute").
		Required("player", playerParser(), "Player to mute").
		OptionalDefault("duration", arg.Duration(), 5*time.Minute, "How long the mute lasts").
		Permission("mod.mute").
		Description("Temporarily mute a player").
		Category("Moderation").
		Handler(func(ctx *command.Context) error {
			player := ctx.String("player")
			d := ctx.Duration("duration")
			world.mu.Lock()
			world.mutes[player] = d
			world.mu.Unlock()
			fmt.Println(warningStyle.Render(fmt.Sprintf("Muted %s for %s", player, d)))
			return nil
		})
}

func teleportCommand() *command.Builder {
	return command.NewBuilder("teleport", "tp").
		Required("x", arg.Float(), "X coordinate").
		Required("y", arg.Float(), "Y coordinate").
		Required("z", arg.Float(), "Z coordinate").
		Description("Teleport to coordinates").
		Category("World").
		Handler(func(ctx *command.Context) error {
			x, y, z := ctx.Float("x"), ctx.Float("y"), ctx.Float("z")
			fmt.Println(successStyle.Render(fmt.Sprintf("Teleported to %.1f %.1f %.1f", x, y, z)))
			return nil
		})
}

func gamemodeCommand() *command.Builder {
	return command.NewBuilder("gamemode", "gm").
		Required("mode", arg.Enum("survival", "creative", "adventure", "spectator"), "Game mode").
		OptionalDefault("player", playerParser(), "self", "Player to change").
		Description("Change a player's game mode").
		Category("World").
		Handler(func(ctx *command.Context) error {
			mode := ctx.String("mode")
			player := ctx.String("player")
			fmt.Println(successStyle.Render(fmt.Sprintf("Set %s to %s mode", player, mode)))
			return nil
		})
}

func messageCommand() *command.Builder {
	return command.NewBuilder("msg", "tell", "w").
		Required("player", playerParser(), "Recipient").
		Required("message", arg.Greedy(), "Message text").
		Description("Send a private message").
		Category("Chat").
		Handler(func(ctx *command.Context) error {
			player := ctx.String("player")
			message := ctx.String("message")
			fmt.Printf("%s -> %s: %s\n", ctx.Sender().Name(), player, message)
			return nil
		})
}

func regionWipe() *command.Builder {
	return command.NewBuilder("region").
		Literal("wipe").
		Required("name", arg.String(), "Region to wipe").
		Permission("admin.region").
		Description("Erase a region permanently").
		Category("World").
		Handler(func(ctx *command.Context) error {
			fmt.Println(warningStyle.Render(fmt.Sprintf("Wiped region %q", ctx.String("name"))))
			return nil
		})
}

func regionInfo() *command.Builder {
	return command.NewBuilder("region").
		Literal("info").
		Required("name", arg.String(), "Region to inspect").
		Description("Show region details").
		Category("World").
		Handler(func(ctx *command.Context) error {
			fmt.Printf("Region %q: 16 chunks, last saved 2m ago\n", ctx.String("name"))
			return nil
		})
}

// seedCommand is dispatchable but hidden from help and completion.
func seedCommand() *command.Builder {
	return command.NewBuilder("seed").
		Description("Show the world seed").
		Hidden().
		Handler(func(ctx *command.Context) error {
			fmt.Println("World seed: 8592113210237")
			return nil
		})
}
