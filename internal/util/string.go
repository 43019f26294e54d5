// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// TruncateWidth shortens s to at most maxWidth terminal columns, appending
// an ellipsis when it cuts. Wide (CJK) and zero-width runes are measured
// correctly.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width columns. Longer strings are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// WrapWidth breaks s into lines of at most width columns on word
// boundaries. Words longer than width are split.
func WrapWidth(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				if lineWidth > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineWidth = 0
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					// a single rune wider than the line
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				lines = append(lines, head)
				w = w[len(head):]
			}
			ww := runewidth.StringWidth(w)
			if ww == 0 {
				continue
			}
			switch {
			case lineWidth == 0:
				line.WriteString(w)
				lineWidth = ww
			case lineWidth+1+ww <= width:
				line.WriteString(" " + w)
				lineWidth += 1 + ww
			default:
				lines = append(lines, line.String())
				line.Reset()
				line.WriteString(w)
				lineWidth = ww
			}
		}
		if lineWidth > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

// Plural returns singular when n == 1, otherwise plural.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
