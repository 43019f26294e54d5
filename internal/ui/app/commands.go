// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/salesbrief/internal/export"
	"github.com/jeranaias/salesbrief/internal/insight"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// waitForRoute blocks until the submission controller navigates.
func (m Model) waitForRoute() tea.Cmd {
	routes := m.routes
	return func() tea.Msg {
		return RouteMsg{Key: <-routes}
	}
}

// submitCmd runs a form submission through the controller.
func (m Model) submitCmd(company string, quick bool) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		err := ctrl.Submit(ctx, company, quick)
		return submitDoneMsg{Company: company, Quick: quick, Err: err}
	}
}

// fetchCmd reads key from the cache. refetch forces a new request.
func (m Model) fetchCmd(key insight.Key, refetch bool) tea.Cmd {
	cache, ctx := m.cache, m.ctx
	return func() tea.Msg {
		var (
			res *insight.Result
			err error
		)
		if refetch {
			res, err = cache.Refetch(ctx, key)
		} else {
			res, err = cache.Fetch(ctx, key)
		}
		return fetchDoneMsg{Key: key, Result: res, Err: err}
	}
}

// clearCmd drops the service-side cache for company.
func (m Model) clearCmd(company string) tea.Cmd {
	clearer, ctx := m.clearer, m.ctx
	return func() tea.Msg {
		if clearer == nil {
			return cacheClearedMsg{Company: company}
		}
		return cacheClearedMsg{Company: company, Err: clearer.ClearCache(ctx, company)}
	}
}

// exportCmd writes the current brief into the export directory.
func (m Model) exportCmd() tea.Cmd {
	b := export.Brief{
		Key:         m.result.key,
		Page:        m.result.page,
		RequestID:   m.result.requestID,
		GeneratedAt: m.result.received,
	}
	opts := export.DefaultOptions()
	if m.exportDir != "" {
		opts.OutputDir = m.exportDir
	}
	format := export.Format(m.exportFormat)
	if format == "" {
		format = export.FormatMarkdown
	}
	return func() tea.Msg {
		exporter, err := export.New(format, opts)
		if err != nil {
			return exportedMsg{Err: err}
		}
		path, err := export.ToFile(b, exporter, opts)
		return exportedMsg{Path: path, Err: err}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{Err: copyToClipboard(text)}
	}
}
