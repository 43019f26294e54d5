// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/salesbrief/internal/util"
)

// Markdown renders markdown at a fixed width. If glamour cannot be
// initialised or fails on some input, text is word-wrapped instead.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdown builds a renderer for a glamour style name (dark, light, notty).
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{width: width, style: style}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		m.renderer = r
	}
	return m
}

// Width returns the wrap width the renderer was built for.
func (m *Markdown) Width() int {
	return m.width
}

// Style returns the glamour style name.
func (m *Markdown) Style() string {
	return m.style
}

// Render returns the rendered text without glamour's surrounding blank lines.
func (m *Markdown) Render(text string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return strings.Join(util.WrapWidth(text, m.width), "\n")
}
