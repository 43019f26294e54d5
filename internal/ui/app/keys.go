// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// DASHBOARD KEYS
// =============================================================================

// DashboardKeyMap holds the form bindings. Letters and digits go to the
// text input, so everything else sits on modifiers.
type DashboardKeyMap struct {
	Submit      key.Binding
	ToggleQuick key.Binding
	Demo        [4]key.Binding
	Retry       key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultDashboardKeyMap returns the default form bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "generate"),
		),
		ToggleQuick: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "quick mode"),
		),
		Demo: [4]key.Binding{
			key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("M-1", "demo 1")),
			key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("M-2", "demo 2")),
			key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("M-3", "demo 3")),
			key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("M-4", "demo 4")),
		},
		Retry: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleQuick, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.ToggleQuick},
		k.Demo[:],
		{k.Retry, k.Back, k.Help, k.Quit},
	}
}

// =============================================================================
// RESULT KEYS
// =============================================================================

// ResultKeyMap holds the result view bindings.
type ResultKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
	Toggle     key.Binding
	Section    [5]key.Binding
	NextCard   key.Binding
	PrevCard   key.Binding
	ToggleCard key.Binding
	Copy       key.Binding
	Export     key.Binding
	Refetch    key.Binding
	Clear      key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultResultKeyMap returns the default result view bindings.
func DefaultResultKeyMap() ResultKeyMap {
	return ResultKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next section"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "prev section"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "expand/collapse"),
		),
		Section: [5]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "summary")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "talking points")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "opportunities")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "agents")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "risks")),
		},
		NextCard: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next card"),
		),
		PrevCard: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev card"),
		),
		ToggleCard: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "show more/less"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy summary"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export brief"),
		),
		Refetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear cache"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "new search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k ResultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Toggle, k.Copy, k.Back, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k ResultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.NextFocus, k.PrevFocus, k.Toggle},
		k.Section[:],
		{k.NextCard, k.PrevCard, k.ToggleCard},
		{k.Copy, k.Export, k.Refetch, k.Clear, k.Back, k.Quit},
	}
}
