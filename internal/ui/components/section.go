// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
	"github.com/jeranaias/salesbrief/internal/util"
)

// SectionOptions carries the interactive context of one section.
type SectionOptions struct {
	Width       int
	Number      int // 1-based hotkey shown next to the title
	Focused     bool
	FocusedCard int // index into Cards, -1 for none
	Markdown    *Markdown
}

// RenderSection draws a section title and, when expanded, its body.
func RenderSection(t *styles.Theme, s present.Section, opts SectionOptions) string {
	arrow := "▾"
	if !s.Expanded {
		arrow = "▸"
	}
	titleStyle := t.SectionTitle
	if opts.Focused {
		titleStyle = t.SectionFocused
	}
	title := fmt.Sprintf("%s %s", arrow, titleStyle.Render(s.Title))
	if opts.Number > 0 {
		title = t.HelpKey.Render(fmt.Sprintf("%d", opts.Number)) + " " + title
	}
	if !s.Expanded {
		return title + " " + t.Muted.Render(collapsedHint(s))
	}
	return title + "\n" + renderBody(t, s, opts)
}

func collapsedHint(s present.Section) string {
	switch {
	case len(s.Cards) > 0:
		return fmt.Sprintf("(%d %s)", len(s.Cards), util.Plural(len(s.Cards), "agent", "agents"))
	case len(s.Opportunities) > 0:
		return fmt.Sprintf("(%d)", len(s.Opportunities))
	case len(s.Risks) > 0:
		return fmt.Sprintf("(%d)", len(s.Risks))
	case len(s.Points) > 0:
		return fmt.Sprintf("(%d)", len(s.Points))
	}
	return ""
}

func renderBody(t *styles.Theme, s present.Section, opts SectionOptions) string {
	width := max(20, opts.Width-2)
	var lines []string

	switch s.ID {
	case present.SectionSummary:
		if opts.Markdown != nil {
			lines = append(lines, opts.Markdown.Render(s.Summary))
		} else {
			lines = append(lines, util.WrapWidth(s.Summary, width)...)
		}
	case present.SectionTalking:
		for i, p := range s.Points {
			lines = append(lines, bulletLines(t, fmt.Sprintf("%d.", i+1), p, width)...)
		}
		if len(s.Actions) > 0 {
			lines = append(lines, "", t.Label.Render("Action items"))
			for _, a := range s.Actions {
				lines = append(lines, bulletLines(t, "☐", actionText(a), width)...)
			}
		}
	case present.SectionOpportunities:
		for _, o := range s.Opportunities {
			head := t.Opportunity.Render(o.Title)
			if v, ok := o.PotentialValue.Get(); ok {
				head += " " + t.Muted.Render(v)
			}
			if c, ok := o.Confidence.Get(); ok {
				head += " " + t.Label.Render("confidence: "+c)
			}
			lines = append(lines, head)
			if d, ok := o.Description.Get(); ok {
				lines = append(lines, util.WrapWidth(d, width)...)
			}
		}
	case present.SectionRisks:
		for _, r := range s.Risks {
			head := t.Risk.Render(r.Risk)
			if sev, ok := r.Severity.Get(); ok {
				head += " " + t.Label.Render("("+sev+")")
			}
			lines = append(lines, head)
			if d, ok := r.Description.Get(); ok {
				lines = append(lines, util.WrapWidth(d, width)...)
			}
			if m, ok := r.Mitigation.Get(); ok {
				lines = append(lines, util.WrapWidth(t.Label.Render("Mitigation: ")+m, width)...)
			}
		}
	case present.SectionAgents:
		for i, c := range s.Cards {
			lines = append(lines, RenderCard(t, c, width, opts.Focused && i == opts.FocusedCard))
		}
	}
	return t.SectionBody.Render(strings.Join(lines, "\n"))
}

func bulletLines(t *styles.Theme, bullet, text string, width int) []string {
	indent := strings.Repeat(" ", util.StringWidth(bullet)+1)
	wrapped := util.WrapWidth(text, width-len(indent))
	out := make([]string, 0, len(wrapped))
	for i, l := range wrapped {
		if i == 0 {
			out = append(out, t.Bullet.Render(bullet)+" "+l)
			continue
		}
		out = append(out, indent+l)
	}
	return out
}

func actionText(a normalize.ActionItem) string {
	var extra []string
	if p, ok := a.Priority.Get(); ok {
		extra = append(extra, p)
	}
	if d, ok := a.Due.Get(); ok {
		extra = append(extra, d)
	}
	if len(extra) == 0 {
		return a.Action
	}
	return a.Action + " (" + strings.Join(extra, ", ") + ")"
}
