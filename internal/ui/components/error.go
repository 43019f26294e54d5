// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
	"github.com/jeranaias/salesbrief/internal/util"
)

// RenderErrorBox draws the failed-request panel. detail is the underlying
// error text and may be empty; hints are the key bindings to recover.
func RenderErrorBox(t *styles.Theme, detail string, hints []string, width int) string {
	inner := max(20, width-6)
	lines := []string{
		t.ErrorText.Bold(true).Render(present.ErrorTitle),
		"",
		present.ErrorMessage,
	}
	if detail != "" {
		lines = append(lines, "")
		for _, l := range util.WrapWidth(detail, inner) {
			lines = append(lines, t.Muted.Render(l))
		}
	}
	if len(hints) > 0 {
		lines = append(lines, "", t.Help.Render(strings.Join(hints, "  ")))
	}
	return t.ErrorBox.Width(inner + 4).Render(strings.Join(lines, "\n"))
}
