// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Interactive REPL for the arbor shell.
//
// USABILITY: Supports arrow keys for history navigation and line editing.
// Tab completion is wired to the command tree's permission-aware
// suggestion engine, so a sender is never shown a command it cannot run.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"
	"golang.org/x/time/rate"

	"github.com/jeranaias/arbor/internal/config"
	"github.com/jeranaias/arbor/internal/history"
	"github.com/jeranaias/arbor/internal/util"
	"github.com/jeranaias/arbor/pkg/command"
)

// =============================================================================
// SENDER
// =============================================================================

// shellSender is the command sender the shell dispatches as. An empty
// permission list grants everything (console semantics); otherwise only the
// listed permission nodes are held.
type shellSender struct {
	name  string
	perms map[string]struct{}
}

func newShellSender(name string, perms []string) *shellSender {
	s := &shellSender{name: name}
	if len(perms) > 0 {
		s.perms = make(map[string]struct{}, len(perms))
		for _, p := range perms {
			s.perms[p] = struct{}{}
		}
	}
	return s
}

func (s *shellSender) Name() string { return s.name }

func (s *shellSender) HasPermission(permission string) bool {
	if s.perms == nil {
		return true
	}
	if _, ok := s.perms["*"]; ok {
		return true
	}
	_, ok := s.perms[permission]
	return ok
}

// =============================================================================
// SHELL
// =============================================================================

// Shell owns the liner state, the command manager, and persistent history.
type Shell struct {
	mu       sync.Mutex
	cfg      *config.Config
	mgr      *command.Manager
	world    *worldState
	sender   *shellSender
	line     *liner.State
	hist     *history.Store
	renderer *glamour.TermRenderer

	// cancelCurrent aborts the command in flight, if any.
	cancelCurrent context.CancelFunc
}

// NewShell builds a locked manager from the config and prepares the REPL.
func NewShell(cfg *config.Config) (*Shell, error) {
	var opts []command.Option
	if cfg.Dispatch.CaseInsensitive {
		opts = append(opts, command.WithCaseInsensitive())
	}
	if cfg.Dispatch.Async {
		opts = append(opts, command.WithCoordinator(command.NewAsyncCoordinator(cfg.Dispatch.Workers)))
	}
	if cfg.Dispatch.RateLimit > 0 {
		opts = append(opts, command.WithRateLimit(rate.Limit(cfg.Dispatch.RateLimit), cfg.Dispatch.RateBurst))
	}

	mgr := command.NewManager(opts...)
	world := newWorldState()
	if err := registerCommands(mgr, world); err != nil {
		return nil, err
	}
	if err := mgr.Lock(); err != nil {
		return nil, err
	}

	sh := &Shell{
		cfg:    cfg,
		mgr:    mgr,
		world:  world,
		sender: newShellSender(cfg.Shell.Sender, cfg.Shell.Permissions),
	}

	if cfg.Render.Color && IsStdoutTTY() {
		sh.renderer = newMarkdownRenderer(cfg.Render.HelpStyle, cfg.Render.Width)
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(sh.complete)
	sh.line = line

	if cfg.History.Enabled {
		if err := sh.openHistory(); err != nil {
			// History is a convenience; keep going without it.
			fmt.Fprintf(os.Stderr, "%s history unavailable: %v\n",
				warningStyle.Render("[Warn]"), err)
		}
	}

	return sh, nil
}

// openHistory opens the history database and preloads the liner buffer.
func (sh *Shell) openHistory() error {
	path, err := sh.cfg.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	sh.hist = store

	entries, err := store.Recent(sh.cfg.History.Keep)
	if err != nil {
		return err
	}
	for _, e := range entries {
		sh.line.AppendHistory(e.Input)
	}
	return nil
}

// Close persists and prunes history and releases the terminal.
func (sh *Shell) Close() {
	if sh.hist != nil {
		if sh.cfg.History.Keep > 0 {
			_ = sh.hist.Prune(sh.cfg.History.Keep)
		}
		_ = sh.hist.Close()
	}
	sh.line.Close()
}

// Reconfigure applies a hot-reloaded config. Only presentation settings
// take effect live; dispatch options are fixed once the tree is locked.
func (sh *Shell) Reconfigure(cfg *config.Config) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.cfg.Shell.Prompt = cfg.Shell.Prompt
	sh.cfg.Render = cfg.Render
	if cfg.Render.Color && IsStdoutTTY() {
		sh.renderer = newMarkdownRenderer(cfg.Render.HelpStyle, cfg.Render.Width)
	} else {
		sh.renderer = nil
	}
	fmt.Println(infoStyle.Render("Config reloaded (dispatch settings apply on restart)."))
}

func (sh *Shell) prompt() string {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	p := sh.cfg.Shell.Prompt
	if sh.cfg.Render.Color && IsStdoutTTY() {
		return promptStyle.Render(p)
	}
	return p
}

// CancelCurrent aborts the in-flight command, if any. Returns true when
// something was cancelled.
func (sh *Shell) CancelCurrent() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.cancelCurrent != nil {
		sh.cancelCurrent()
		sh.cancelCurrent = nil
		return true
	}
	return false
}

// =============================================================================
// COMPLETION
// =============================================================================

// complete adapts the manager's suggestion engine to liner, which expects
// whole-line replacements. The committed prefix is re-attached to each
// suggested token.
func (sh *Shell) complete(input string) []string {
	suggestions := sh.mgr.Suggest(sh.sender, input)
	if len(suggestions) == 0 {
		return nil
	}

	prefix := ""
	if idx := strings.LastIndex(input, " "); idx >= 0 {
		prefix = input[:idx+1]
	}

	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, prefix+s)
	}
	return out
}

// =============================================================================
// REPL LOOP
// =============================================================================

// Run reads and dispatches lines until EOF, Ctrl+C at the prompt, or an
// explicit exit command.
func (sh *Shell) Run() error {
	sh.printWelcome()

	for {
		input, err := sh.line.Prompt(sh.prompt())
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			// EOF (Ctrl+D) or terminal error - exit gracefully
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		sh.line.AppendHistory(input)
		if sh.hist != nil {
			_ = sh.hist.Append(sh.sender.Name(), input)
		}

		handled, quit := sh.runBuiltin(input)
		if quit {
			return nil
		}
		if handled {
			continue
		}

		sh.dispatch(input)
	}
}

// runBuiltin handles shell-level commands that never reach the tree.
func (sh *Shell) runBuiltin(input string) (handled, quit bool) {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true, true
	case "help", "?":
		sh.printHelp()
		return true, false
	case "commands":
		sh.printCommandTable()
		return true, false
	}
	return false, false
}

// printCommandTable lists every command visible to the sender as an
// aligned syntax/description table.
func (sh *Shell) printCommandTable() {
	index := sh.mgr.HelpIndex(sh.sender)

	categories := make([]string, 0, len(index))
	for category := range index {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	syntaxWidth := 0
	for _, entries := range index {
		for _, e := range entries {
			if w := util.StringWidth(e.Syntax); w > syntaxWidth {
				syntaxWidth = w
			}
		}
	}
	descWidth := GetTerminalWidth() - syntaxWidth - 6
	if descWidth < 16 {
		descWidth = 16
	}

	for _, category := range categories {
		fmt.Println(infoStyle.Render(category))
		for _, e := range index[category] {
			fmt.Printf("  %s  %s\n",
				util.PadWidth(e.Syntax, syntaxWidth),
				util.TruncateRunes(e.Description, descWidth))
		}
	}
}

func (sh *Shell) dispatch(input string) {
	ctx, cancel := context.WithCancel(context.Background())
	sh.mu.Lock()
	sh.cancelCurrent = cancel
	sh.mu.Unlock()

	err := sh.mgr.Execute(ctx, sh.sender, input)

	sh.mu.Lock()
	sh.cancelCurrent = nil
	sh.mu.Unlock()
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println(warningStyle.Render("[Cancelled]"))
			return
		}
		sh.printError(err)
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func (sh *Shell) printWelcome() {
	fmt.Println(welcomeStyle.Render("arbor shell"))
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"Dispatching as %q. Tab completes, 'help' lists commands, Ctrl+D exits.",
		sh.sender.Name())))
	fmt.Println()
}

func (sh *Shell) printHelp() {
	md := sh.mgr.MarkdownHelp(sh.sender, "Arbor Commands")
	sh.mu.Lock()
	renderer := sh.renderer
	sh.mu.Unlock()
	fmt.Print(renderMarkdown(renderer, md))
}

// printError renders dispatch failures with the right tone per failure
// class, plus a hint line where the error carries one.
func (sh *Shell) printError(err error) {
	var (
		noSuch      *command.NoSuchCommandError
		badSyntax   *command.InvalidSyntaxError
		noPerm      *command.NoPermissionError
		badArg      *command.ArgumentParseError
		badSender   *command.InvalidSenderError
		execFailure *command.ExecutionError
		throttled   *command.RateLimitedError
	)

	switch {
	case errors.As(err, &noSuch):
		fmt.Fprintf(os.Stderr, "%s unknown command %q\n",
			errorStyle.Render("[Error]"), noSuch.Token)
		if noSuch.Suggestion != "" {
			fmt.Fprintln(os.Stderr, hintStyle.Render(
				fmt.Sprintf("  did you mean %q?", noSuch.Suggestion)))
		}

	case errors.As(err, &badSyntax):
		fmt.Fprintf(os.Stderr, "%s invalid syntax\n", errorStyle.Render("[Error]"))
		fmt.Fprintln(os.Stderr, hintStyle.Render("  usage: "+badSyntax.Syntax))
		if len(badSyntax.Continuations) > 0 {
			fmt.Fprintln(os.Stderr, hintStyle.Render(
				"  expected one of: "+strings.Join(badSyntax.Continuations, ", ")))
		}

	case errors.As(err, &noPerm):
		fmt.Fprintf(os.Stderr, "%s missing permission %q\n",
			errorStyle.Render("[Denied]"), noPerm.Permission)

	case errors.As(err, &badArg):
		fmt.Fprintf(os.Stderr, "%s invalid value %q for <%s>: %v\n",
			errorStyle.Render("[Error]"), badArg.Input, badArg.Argument, badArg.Err)

	case errors.As(err, &badSender):
		fmt.Fprintf(os.Stderr, "%s this sender cannot run %q\n",
			errorStyle.Render("[Error]"), badSender.Command)

	case errors.As(err, &throttled):
		fmt.Fprintf(os.Stderr, "%s slow down\n", warningStyle.Render("[Throttled]"))

	case errors.As(err, &execFailure):
		fmt.Fprintf(os.Stderr, "%s %s: %v\n",
			errorStyle.Render("[Error]"), execFailure.Command, execFailure.Err)

	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
	}
}
