// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
	"github.com/jeranaias/salesbrief/internal/util"
)

// RenderCard draws one agent card. width is the outer width including the border.
func RenderCard(t *styles.Theme, c present.Card, width int, focused bool) string {
	inner := max(10, width-4)

	pill := t.StatusPill.Foreground(styles.StatusColor(c.Status)).Render(c.Status)
	title := t.CardTitle.Render(c.Title)
	gap := inner - util.StringWidth(c.Title) - util.StringWidth(c.Status) - 2
	header := title + strings.Repeat(" ", max(1, gap)) + pill

	lines := []string{header}
	if c.Confidence != "" {
		lines = append(lines, t.Muted.Render(c.Confidence))
	}
	if c.Error != "" {
		lines = append(lines, t.ErrorText.Render(util.TruncateWidth(c.Error, inner)))
	}
	for _, in := range c.Visible {
		wrapped := util.WrapWidth(in, inner-2)
		for i, l := range wrapped {
			prefix := "  "
			if i == 0 {
				prefix = t.Bullet.Render("•") + " "
			}
			lines = append(lines, prefix+l)
		}
	}
	if len(c.Visible) == 0 {
		lines = append(lines, t.Muted.Render("No insights"))
	}
	if c.Toggle != "" {
		lines = append(lines, t.Toggle.Render(c.Toggle))
	}

	style := t.Card
	if focused {
		style = t.CardFocused
	}
	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
