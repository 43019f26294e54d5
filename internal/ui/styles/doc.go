// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the salesbrief TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// A Theme is created once at startup and passed to the views that need it.
//
// # Usage
//
//	theme := styles.NewTheme()
//	title := theme.SectionTitle.Render("Executive Summary")
package styles
