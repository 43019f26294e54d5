// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/components"
)

// Messages shown in the dashboard and result status line.
const (
	msgEmptyCompany = "Please enter a company name"
	msgCopied       = "Summary copied to clipboard"
	msgNothingCopy  = "No summary to copy"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles every message for both views.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if m.dash.pending {
			m.dash.loading, cmd = m.dash.loading.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.result.pending {
			m.result.loading, cmd = m.result.loading.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case RouteMsg:
		return m.handleRoute(msg)

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case cacheClearedMsg:
		if msg.Err != nil {
			m.result.toast = "Upstream cache clear failed: " + msg.Err.Error()
		} else {
			m.result.toast = "Cache cleared for " + msg.Company
		}
		return m, nil

	case exportedMsg:
		if msg.Err != nil {
			m.logger.Warn("export failed", zap.Error(msg.Err))
			m.result.toast = "Export failed: " + msg.Err.Error()
		} else {
			m.logger.Info("brief exported", zap.String("path", msg.Path))
			m.result.toast = "Exported to " + msg.Path
		}
		return m, nil

	case clipboardMsg:
		if msg.Err != nil {
			m.result.toast = "Copy failed: " + msg.Err.Error()
		} else {
			m.result.toast = msgCopied
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == ViewResult {
			return m.handleResultKey(msg)
		}
		return m.handleDashboardKey(msg)
	}

	if m.view == ViewResult {
		var cmd tea.Cmd
		m.result.viewport, cmd = m.result.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.dash.input, cmd = m.dash.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.dash.input.Width = max(20, min(60, msg.Width-12))
	m.result.viewport.Width = msg.Width
	m.result.viewport.Height = max(3, msg.Height-m.chromeHeight())
	m.result.markdown = nil
	if m.result.loaded {
		m.refreshPage()
	}
	return m, nil
}

// chromeHeight is the number of rows outside the result viewport.
func (m Model) chromeHeight() int {
	return headerRows + footerRows
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.dash.keys
	if key.Matches(msg, k.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, k.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch {
	case m.dash.pending:
		if key.Matches(msg, k.Back) {
			m.controller.Reset()
			m.dash.pending = false
			m.dash.loading.Stop()
		}
		return m, nil

	case m.dash.err != nil:
		switch {
		case key.Matches(msg, k.Retry):
			return m.startSubmit(m.dash.company)
		case key.Matches(msg, k.Back):
			m.controller.Reset()
			m.dash.err = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Submit):
		return m.startSubmit(m.dash.input.Value())
	case key.Matches(msg, k.ToggleQuick):
		m.dash.quick = !m.dash.quick
		return m, nil
	}
	for i, b := range k.Demo {
		if key.Matches(msg, b) && i < len(submit.DemoCompanies) {
			m.dash.input.SetValue(submit.DemoCompanies[i])
			m.dash.input.CursorEnd()
			m.dash.validation = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.dash.input, cmd = m.dash.input.Update(msg)
	if m.dash.validation != "" && insight.NormalizeCompany(m.dash.input.Value()) != "" {
		m.dash.validation = ""
	}
	return m, cmd
}

// startSubmit validates the name and hands it to the controller.
func (m Model) startSubmit(raw string) (tea.Model, tea.Cmd) {
	company := insight.NormalizeCompany(raw)
	if company == "" {
		m.dash.validation = msgEmptyCompany
		return m, nil
	}
	m.dash.validation = ""
	m.dash.err = nil
	m.dash.company = company
	m.dash.pending = true
	m.dash.loading = components.NewLoadingView(m.theme, company, submit.KindFor(m.dash.quick))
	start := m.dash.loading.Start()
	m.logger.Debug("submit", zap.String("company", company), zap.Bool("quick", m.dash.quick))
	return m, tea.Batch(start, m.submitCmd(company, m.dash.quick))
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		// RouteMsg does the rest.
		return m, nil
	}
	st := m.controller.State()
	if st.Phase != submit.PhaseFailed || st.Company != insight.NormalizeCompany(msg.Company) || st.Quick != msg.Quick {
		return m, nil
	}
	m.dash.pending = false
	m.dash.loading.Stop()
	m.dash.err = st.Err
	return m, nil
}

func (m Model) handleRoute(msg RouteMsg) (tea.Model, tea.Cmd) {
	m.dash.pending = false
	m.dash.loading.Stop()
	m.dash.err = nil

	m.view = ViewResult
	m.showHelp = false
	m.result = result{
		keys:       m.result.keys,
		key:        msg.Key,
		disclosure: present.NewState(),
		viewport:   m.result.viewport,
		markdown:   m.result.markdown,
		pending:    true,
		loading:    components.NewLoadingView(m.theme, msg.Key.Company, msg.Key.Kind),
	}
	m.result.viewport.SetContent("")
	m.result.viewport.GotoTop()
	start := m.result.loading.Start()
	return m, tea.Batch(start, m.waitForRoute(), m.fetchCmd(msg.Key, false))
}

// =============================================================================
// RESULT
// =============================================================================

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewResult || msg.Key != m.result.key {
		return m, nil
	}
	m.result.pending = false
	m.result.loading.Stop()
	if msg.Err != nil {
		m.result.err = msg.Err
		m.result.loaded = false
		return m, nil
	}
	m.result.err = nil
	m.result.data = normalize.Normalize(msg.Result.Payload)
	m.result.requestID = msg.Result.RequestID
	m.result.received = msg.Result.ReceivedAt
	m.result.loaded = true
	m.refreshPage()
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.result.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, k.Back):
		m.controller.Reset()
		m.view = ViewDashboard
		m.result.pending = false
		m.result.loading.Stop()
		return m, m.dash.input.Focus()
	case key.Matches(msg, k.Refetch):
		m.result.pending = true
		m.result.err = nil
		m.result.toast = ""
		m.result.loading = components.NewLoadingView(m.theme, m.result.key.Company, m.result.key.Kind)
		return m, tea.Batch(m.result.loading.Start(), m.fetchCmd(m.result.key, true))
	}

	if m.result.pending || !m.result.loaded {
		return m, nil
	}

	sections := m.result.page.Sections
	switch {
	case key.Matches(msg, k.NextFocus):
		if len(sections) > 0 {
			m.result.focus = (m.result.focus + 1) % len(sections)
			m.result.card = 0
			m.refreshPage()
		}
		return m, nil
	case key.Matches(msg, k.PrevFocus):
		if len(sections) > 0 {
			m.result.focus = (m.result.focus - 1 + len(sections)) % len(sections)
			m.result.card = 0
			m.refreshPage()
		}
		return m, nil
	case key.Matches(msg, k.Toggle):
		if sec, ok := m.focusedSection(); ok {
			m.result.disclosure.Dispatch(present.ToggleSection{ID: sec.ID})
			m.refreshPage()
		}
		return m, nil
	case key.Matches(msg, k.NextCard), key.Matches(msg, k.PrevCard):
		if sec, ok := m.focusedSection(); ok && len(sec.Cards) > 0 {
			step := 1
			if key.Matches(msg, k.PrevCard) {
				step = -1
			}
			m.result.card = (m.result.card + step + len(sec.Cards)) % len(sec.Cards)
			m.refreshPage()
		}
		return m, nil
	case key.Matches(msg, k.ToggleCard):
		if sec, ok := m.focusedSection(); ok && m.result.card < len(sec.Cards) {
			m.result.disclosure.Dispatch(present.ToggleCard{Agent: sec.Cards[m.result.card].Agent})
			m.refreshPage()
		}
		return m, nil
	case key.Matches(msg, k.Copy):
		summary, ok := m.result.data.Summary.Get()
		if !ok {
			m.result.toast = msgNothingCopy
			return m, nil
		}
		return m, copyCmd(summary)
	case key.Matches(msg, k.Export):
		m.result.toast = "Exporting..."
		return m, m.exportCmd()
	case key.Matches(msg, k.Clear):
		m.cache.Invalidate(m.result.key)
		m.result.toast = "Clearing cache..."
		return m, m.clearCmd(m.result.key.Company)
	}

	for i, b := range k.Section {
		if key.Matches(msg, b) {
			m.result.disclosure.Dispatch(present.ToggleSection{ID: present.SectionOrder[i]})
			m.refreshPage()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.result.viewport, cmd = m.result.viewport.Update(msg)
	return m, cmd
}

func (m Model) focusedSection() (present.Section, bool) {
	sections := m.result.page.Sections
	if m.result.focus < 0 || m.result.focus >= len(sections) {
		return present.Section{}, false
	}
	return sections[m.result.focus], true
}

// refreshPage rebuilds the page from the cached data and the disclosure
// state and re-renders the viewport content.
func (m *Model) refreshPage() {
	r := &m.result
	r.page = present.Build(r.data, r.key.Company, r.disclosure)
	if r.focus >= len(r.page.Sections) {
		r.focus = max(0, len(r.page.Sections)-1)
	}
	if sec, ok := m.focusedSection(); ok && r.card >= len(sec.Cards) {
		r.card = 0
	}
	if r.markdown == nil {
		r.markdown = components.NewMarkdown(m.theme.GlamourStyle(m.style), m.contentWidth())
	}
	r.viewport.SetContent(m.renderSections())
}
