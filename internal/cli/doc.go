// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the salesbrief command tree.
//
// Running salesbrief with no subcommand starts the interactive TUI. The
// subcommands reuse the same core packages without the terminal UI:
//
//	salesbrief brief <company> [--quick] [--json] [--all]
//	salesbrief history <company> [--limit N]
//	salesbrief cache clear <company>
//	salesbrief status
//	salesbrief config show|path|keys|get|set
//	salesbrief version
//
// Configuration, the log file and the insight client are built once in the
// root command's PersistentPreRunE and handed to subcommands through env.
// Commands that support --json write a JSONResponse to stdout; human
// output is plain text when stdout is not a terminal.
package cli
