// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a generated brief to a file.
//
// # Supported Formats
//
//   - Markdown: YAML frontmatter followed by the brief's sections
//   - JSON: the shaped page plus request metadata
//   - HTML: a standalone, escaped page for sharing
//
// # Usage
//
//	b := export.Brief{Key: key, Page: page, RequestID: res.RequestID, GeneratedAt: res.ReceivedAt}
//	path, err := export.ToFile(b, export.NewMarkdownExporter(nil), nil)
package export
