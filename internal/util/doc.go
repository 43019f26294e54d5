// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI and the TUI.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: column-aware truncation with ellipsis
//   - WrapWidth: column-aware word wrapping
//   - PadRight: column-aware padding for tables
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
