// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
	"github.com/jeranaias/salesbrief/internal/util"
)

// RenderHeader draws the result view header. The readiness meter is only
// drawn when the payload carried a score.
func RenderHeader(t *styles.Theme, h present.Header, readiness normalize.Optional[int], width int) string {
	title := t.Company.Render(util.TruncateWidth(h.Company, max(10, width-20)))
	if h.Quick {
		title += " " + t.ModeOn.Render("quick")
	}
	if h.Badge != "" {
		pct := readiness.Or(0)
		badge := t.Badge.Background(styles.ReadinessColor(pct)).Render(h.Badge)
		title += "  " + badge
	}

	lines := []string{title}
	if pct, ok := readiness.Get(); ok {
		meter := styles.RenderProgressBar(20, float64(pct))
		if h.Level != "" {
			meter += " " + h.Level
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.ReadinessColor(pct)).Render(meter))
	}

	var meta []string
	if h.Timestamp != "" {
		meta = append(meta, h.Timestamp)
	}
	if h.Elapsed != "" {
		meta = append(meta, h.Elapsed)
	}
	if len(meta) > 0 {
		lines = append(lines, t.Muted.Render(strings.Join(meta, " · ")))
	}
	return strings.Join(lines, "\n")
}
