// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the rendering building blocks of the salesbrief TUI.

Renderers take a *styles.Theme and a value from package present and return a
string; they hold no state. The two stateful pieces, LoadingView and
Markdown, follow the Bubble Tea component shape.

# Display Components

Header (header.go) - Company name, readiness badge and run metadata.
Section (section.go) - Collapsible result section with its body.
Card (card.go) - Agent card with truncated insight list and toggle label.
ErrorBox (error.go) - Failed-request panel with a retry hint.

# Progress and Feedback

LoadingView (loading.go) - Spinner with staggered per-agent step labels.

# Markdown

Markdown (markdown.go) - Glamour renderer with a plain-text fallback.
*/
package components
