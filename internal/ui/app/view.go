// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/components"
)

const (
	headerRows = 5
	footerRows = 2

	defaultWidth = 80
	maxWidth     = 120
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m Model) View() string {
	var body string
	if m.view == ViewResult {
		body = m.resultView()
	} else {
		body = m.dashboardView()
	}
	return m.theme.App.Render(body)
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return min(maxWidth, m.theme.ContentWidth())
}

func (m Model) helpView() string {
	if m.view == ViewResult {
		if m.showHelp {
			return m.help.FullHelpView(m.result.keys.FullHelp())
		}
		return m.help.ShortHelpView(m.result.keys.ShortHelp())
	}
	if m.showHelp {
		return m.help.FullHelpView(m.dash.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.dash.keys.ShortHelp())
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) dashboardView() string {
	t := m.theme
	width := m.contentWidth()

	if m.dash.pending {
		return m.dash.loading.View() + "\n\n" + t.Help.Render("Esc cancel")
	}
	if m.dash.err != nil {
		return components.RenderErrorBox(t, m.dash.err.Error(), []string{"r retry", "Esc back"}, min(width, 72))
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("SalesBrief") + "\n")
	b.WriteString(t.Subtitle.Render("AI-powered sales intelligence for your next meeting") + "\n\n")

	var form strings.Builder
	form.WriteString(t.InputLabel.Render("Company name") + "\n")
	form.WriteString(m.dash.input.View() + "\n")
	if m.dash.validation != "" {
		form.WriteString(t.Validation.Render(m.dash.validation) + "\n")
	}
	form.WriteString("\n" + m.modeLine() + "\n")
	b.WriteString(t.Form.Width(min(width, 72)).Render(strings.TrimRight(form.String(), "\n")) + "\n\n")

	b.WriteString(t.Label.Render("Try a demo company:") + "\n")
	demos := make([]string, 0, len(submit.DemoCompanies))
	for i, name := range submit.DemoCompanies {
		demos = append(demos, t.DemoCompany.Render(fmt.Sprintf("M-%d %s", i+1, name)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, demos...) + "\n\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) modeLine() string {
	t := m.theme
	full, quick := t.ModeOn.Render("● Full analysis"), t.ModeOff.Render("○ Quick brief")
	if m.dash.quick {
		full, quick = t.ModeOff.Render("○ Full analysis"), t.ModeOn.Render("● Quick brief")
	}
	return full + "   " + quick + "  " + t.Muted.Render("(Tab)")
}

// =============================================================================
// RESULT
// =============================================================================

func (m Model) resultView() string {
	t := m.theme
	width := m.contentWidth()
	r := m.result

	if r.pending {
		return r.loading.View() + "\n\n" + m.helpView()
	}
	if r.err != nil {
		return components.RenderErrorBox(t, r.err.Error(), []string{"r retry", "Esc back"}, min(width, 72)) +
			"\n\n" + m.helpView()
	}
	if !r.loaded {
		return m.helpView()
	}
	if status, _ := r.data.Status.Get(); status == "error" {
		detail := r.data.Error.Or(r.data.Message.Or(""))
		return components.RenderErrorBox(t, detail, []string{"r retry", "Esc back"}, min(width, 72)) +
			"\n\n" + m.helpView()
	}

	header := components.RenderHeader(t, r.page.Header, r.data.Readiness, width)
	footer := m.helpView()
	if r.toast != "" {
		footer = t.Toast.Render(r.toast) + "\n" + footer
	}
	return header + "\n\n" + r.viewport.View() + "\n" + footer
}

// renderSections draws every section of the page for the viewport.
func (m Model) renderSections() string {
	t := m.theme
	r := m.result
	if len(r.page.Sections) == 0 {
		return t.Muted.Render(emptyMessage(r.key))
	}
	width := m.contentWidth()
	blocks := make([]string, 0, len(r.page.Sections))
	for i, sec := range r.page.Sections {
		blocks = append(blocks, components.RenderSection(t, sec, components.SectionOptions{
			Width:       width,
			Number:      sectionNumber(sec.ID),
			Focused:     i == r.focus,
			FocusedCard: r.card,
			Markdown:    r.markdown,
		}))
	}
	return strings.Join(blocks, "\n\n")
}

func sectionNumber(id present.SectionID) int {
	for i, s := range present.SectionOrder {
		if s == id {
			return i + 1
		}
	}
	return 0
}

func emptyMessage(key insight.Key) string {
	return fmt.Sprintf("No insights were returned for %s.", key.Company)
}
