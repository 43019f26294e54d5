// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// salesbrief - AI-generated sales briefs in the terminal.
//
// Run without arguments for the interactive dashboard, or see
// `salesbrief --help` for the non-interactive commands.
package main

import (
	"os"

	"github.com/jeranaias/salesbrief/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
