// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "strings"

// Progress bar characters for the readiness meter.
var (
	ProgressFull  = "█"
	ProgressEmpty = "░"
)

// RenderProgressBar draws a bar width cells wide, percent (0-100) filled.
func RenderProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := int(float64(width)*percent/100 + 0.5)

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(ProgressFull, filled))
	sb.WriteString(strings.Repeat(ProgressEmpty, width-filled))
	return sb.String()
}
