// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea program behind the interactive salesbrief
// command.
//
// It has two views. The dashboard holds the company form, the quick-mode
// toggle and the demo shortcuts; submitting goes through submit.Controller,
// whose Navigator hands the key back to the program as a RouteMsg. The
// result view reads the same key from the shared cache, normalizes it and
// renders a present.Page inside a scrolling viewport.
//
// All blocking work (submission, cache reads, upstream cache clears, the
// clipboard) runs in tea.Cmd goroutines and reports back as messages.
package app
