// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/query"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

const microsoftPayload = `{
	"timestamp": "2025-01-01T00:00:00Z",
	"execution_time_ms": 1800,
	"agent_outputs": {"research": {"status": "success", "insights": ["a", "b"]}},
	"synthesis": {
		"executive_summary": "Microsoft is doubling down on AI.",
		"talking_points": ["Azure growth"],
		"meeting_preparation_score": {"percentage": 82}
	}
}`

// =============================================================================
// FAKES
// =============================================================================

type fakeGenerator struct {
	mu      sync.Mutex
	full    []insight.Request
	quick   []insight.QuickRequest
	payload string
	err     error
}

func (g *fakeGenerator) result(kind insight.Kind) (*insight.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	var payload any
	if err := json.Unmarshal([]byte(g.payload), &payload); err != nil {
		return nil, err
	}
	return &insight.Result{Kind: kind, Payload: payload, StatusCode: 200}, nil
}

func (g *fakeGenerator) GenerateFull(ctx context.Context, req insight.Request) (*insight.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.full = append(g.full, req)
	return g.result(insight.KindFull)
}

func (g *fakeGenerator) GenerateQuick(ctx context.Context, req insight.QuickRequest) (*insight.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quick = append(g.quick, req)
	return g.result(insight.KindQuick)
}

func (g *fakeGenerator) calls() (full, quick int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.full), len(g.quick)
}

type fakeClearer struct {
	mu      sync.Mutex
	cleared []string
}

func (c *fakeClearer) ClearCache(ctx context.Context, company string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, company)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

type harness struct {
	gen     *fakeGenerator
	clearer *fakeClearer
	cache   *submit.Cache
	routes  <-chan tea.Msg
}

func newHarness(t *testing.T, gen *fakeGenerator) (*harness, Model) {
	t.Helper()
	h := &harness{gen: gen, clearer: &fakeClearer{}}
	h.cache = submit.NewCache(gen, query.WithClock(time.Now))
	m := New(context.Background(), Options{
		Cache:   h.cache,
		Clearer: h.clearer,
		Theme:   styles.NewThemeWithProfile(termenv.Ascii, true),
	})
	h.routes = collect(m.Init())
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 200})
	return h, m
}

// collect runs cmd, expanding batches, and delivers every message it produces.
func collect(cmd tea.Cmd) <-chan tea.Msg {
	out := make(chan tea.Msg, 32)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			out <- msg
		}()
	}
	run(cmd)
	return out
}

func await[T tea.Msg](t *testing.T, ch <-chan tea.Msg) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if v, ok := msg.(T); ok {
				return v
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

// submitAndRoute presses enter and drives the program into the result view.
func (h *harness) submitAndRoute(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.dash.pending)
	done := await[submitDoneMsg](t, collect(cmd))
	require.NoError(t, done.Err)
	m = send(t, m, done)

	route := await[RouteMsg](t, h.routes)
	m, cmd = sendCmd(t, m, route)
	require.Equal(t, ViewResult, m.CurrentView())
	return send(t, m, await[fetchDoneMsg](t, collect(cmd)))
}

// =============================================================================
// DASHBOARD TESTS
// =============================================================================

func TestDashboard_SubmitNavigatesAndReadsCache(t *testing.T) {
	gen := &fakeGenerator{payload: microsoftPayload}
	h, m := newHarness(t, gen)

	m = typeText(t, m, "Microsoft")
	m = h.submitAndRoute(t, m)

	full, quick := gen.calls()
	assert.Equal(t, 1, full, "result view must be served from the cache")
	assert.Zero(t, quick)
	assert.Equal(t, insight.Request{CompanyName: "Microsoft", TimeframeDays: 30, Priority: insight.PriorityHigh}, gen.full[0])

	view := m.View()
	assert.Contains(t, view, "Microsoft")
	assert.Contains(t, view, "82% Ready")
	assert.Contains(t, view, "Executive Summary")
	assert.Contains(t, view, "Research Agent")
	assert.Contains(t, view, "Azure growth")
}

func TestDashboard_EmptyNameIsRejected(t *testing.T) {
	gen := &fakeGenerator{payload: microsoftPayload}
	_, m := newHarness(t, gen)

	m = typeText(t, m, "   ")
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.dash.pending)
	assert.Contains(t, m.View(), msgEmptyCompany)

	full, quick := gen.calls()
	assert.Zero(t, full+quick)

	m = typeText(t, m, "A")
	assert.Empty(t, m.dash.validation, "typing a name clears the message")
}

func TestDashboard_QuickToggleAndDemoShortcut(t *testing.T) {
	gen := &fakeGenerator{payload: `{"type": "quick_brief"}`}
	h, m := newHarness(t, gen)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.dash.quick)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	assert.Equal(t, "Adobe", m.dash.input.Value())

	m = h.submitAndRoute(t, m)
	full, quick := gen.calls()
	assert.Zero(t, full)
	assert.Equal(t, 1, quick)
	assert.Equal(t, insight.NewKey("Adobe", insight.KindQuick), m.result.key)
}

func TestDashboard_FailureShowsErrorAndRetries(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("HTTP 500")}
	h, m := newHarness(t, gen)

	m = typeText(t, m, "Acme")
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	done := await[submitDoneMsg](t, collect(cmd))
	require.Error(t, done.Err)
	m = send(t, m, done)

	assert.False(t, m.dash.pending)
	assert.Equal(t, ViewDashboard, m.CurrentView())
	view := m.View()
	assert.Contains(t, view, present.ErrorTitle)
	assert.Contains(t, view, "HTTP 500")
	assert.Equal(t, query.StatusError, h.cache.Snapshot(insight.NewKey("Acme", insight.KindFull)).Status)

	full, _ := gen.calls()
	assert.Equal(t, 1, full, "no automatic retry")

	m, cmd = sendCmd(t, m, runes("r"))
	assert.True(t, m.dash.pending)
	_ = await[submitDoneMsg](t, collect(cmd))
	full, _ = gen.calls()
	assert.Equal(t, 2, full)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.dash.pending)
}

func TestDashboard_EscapeFromErrorReturnsToForm(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	_, m := newHarness(t, gen)

	m = typeText(t, m, "Acme")
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, await[submitDoneMsg](t, collect(cmd)))
	require.NotNil(t, m.dash.err)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.dash.err)
	assert.Contains(t, m.View(), "Company name")
	assert.Equal(t, submit.PhaseIdle, m.controller.State().Phase)
}

// =============================================================================
// RESULT TESTS
// =============================================================================

func loadedModel(t *testing.T, payload string) (*harness, Model) {
	t.Helper()
	gen := &fakeGenerator{payload: payload}
	h, m := newHarness(t, gen)
	m = typeText(t, m, "Microsoft")
	return h, h.submitAndRoute(t, m)
}

func TestResult_SectionHotkeysToggle(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)
	require.Contains(t, m.View(), "Microsoft is doubling down on AI.")

	m = send(t, m, runes("1"))
	assert.False(t, m.result.disclosure.Expanded(present.SectionSummary))
	assert.NotContains(t, m.View(), "Microsoft is doubling down on AI.")
	assert.Contains(t, m.View(), "Executive Summary")

	m = send(t, m, runes("1"))
	assert.Contains(t, m.View(), "Microsoft is doubling down on AI.")
}

func TestResult_EnterTogglesFocusedSection(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sec, ok := m.focusedSection()
	require.True(t, ok)
	assert.Equal(t, present.SectionTalking, sec.ID)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.result.disclosure.Expanded(present.SectionTalking))
	assert.True(t, m.result.disclosure.Expanded(present.SectionSummary))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	sec, _ = m.focusedSection()
	assert.Equal(t, present.SectionSummary, sec.ID)
}

func TestResult_CardShowMore(t *testing.T) {
	insights := make([]string, 8)
	for i := range insights {
		insights[i] = fmt.Sprintf("%q", fmt.Sprintf("finding-%d", i+1))
	}
	payload := fmt.Sprintf(`{"agent_outputs": {"news": {"status": "success", "insights": [%s]}}}`,
		strings.Join(insights, ","))
	_, m := loadedModel(t, payload)

	require.Len(t, m.result.page.Sections, 1)
	assert.Contains(t, m.View(), "Show 3 More")
	assert.NotContains(t, m.View(), "finding-8")

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Contains(t, m.View(), "finding-8")
	assert.Contains(t, m.View(), "Show Less")
}

func TestResult_CopySummary(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	_, m := loadedModel(t, microsoftPayload)
	m, cmd := sendCmd(t, m, runes("c"))
	m = send(t, m, await[clipboardMsg](t, collect(cmd)))

	assert.Equal(t, "Microsoft is doubling down on AI.", copied)
	assert.Contains(t, m.View(), msgCopied)
}

func TestResult_Export(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)
	dir := t.TempDir()
	m.exportDir = dir
	m.exportFormat = "json"

	m, cmd := sendCmd(t, m, runes("e"))
	assert.Equal(t, "Exporting...", m.result.toast)
	msg := await[exportedMsg](t, collect(cmd))
	require.NoError(t, msg.Err)
	m = send(t, m, msg)

	assert.Equal(t, dir, filepath.Dir(msg.Path))
	assert.Equal(t, ".json", filepath.Ext(msg.Path))
	data, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"company": "Microsoft"`)
	assert.Contains(t, m.View(), "Exported to")
}

func TestResult_CopyWithoutSummary(t *testing.T) {
	_, m := loadedModel(t, `{"agent_outputs": {}}`)
	m, cmd := sendCmd(t, m, runes("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, msgNothingCopy, m.result.toast)
	assert.Contains(t, m.View(), "No insights were returned for Microsoft.")
}

func TestResult_ClearInvalidatesLocalAndUpstream(t *testing.T) {
	h, m := loadedModel(t, microsoftPayload)
	key := insight.NewKey("Microsoft", insight.KindFull)
	require.Equal(t, query.StatusSuccess, h.cache.Snapshot(key).Status)

	m, cmd := sendCmd(t, m, runes("x"))
	assert.Equal(t, query.StatusIdle, h.cache.Snapshot(key).Status)
	m = send(t, m, await[cacheClearedMsg](t, collect(cmd)))

	assert.Equal(t, []string{"Microsoft"}, h.clearer.cleared)
	assert.Contains(t, m.View(), "Cache cleared for Microsoft")
}

func TestResult_RefetchIssuesNewRequest(t *testing.T) {
	h, m := loadedModel(t, microsoftPayload)

	m, cmd := sendCmd(t, m, runes("r"))
	assert.True(t, m.result.pending)
	assert.Contains(t, m.View(), "Generating Insights for Microsoft")
	m = send(t, m, await[fetchDoneMsg](t, collect(cmd)))

	full, _ := h.gen.calls()
	assert.Equal(t, 2, full)
	assert.False(t, m.result.pending)
	assert.Contains(t, m.View(), "82% Ready")
}

func TestResult_RefetchKeepsDisclosure(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sec, ok := m.focusedSection()
	require.True(t, ok)
	require.Equal(t, present.SectionAgents, sec.ID)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(t, m, runes("1"))
	require.True(t, m.result.disclosure.CardExpanded(normalize.AgentResearch))
	require.False(t, m.result.disclosure.Expanded(present.SectionSummary))

	m, cmd := sendCmd(t, m, runes("r"))
	m = send(t, m, await[fetchDoneMsg](t, collect(cmd)))

	require.True(t, m.result.loaded)
	assert.False(t, m.result.disclosure.Expanded(present.SectionSummary), "summary expanded after refetch")
	assert.True(t, m.result.disclosure.CardExpanded(normalize.AgentResearch), "card collapsed after refetch")
	assert.True(t, m.result.disclosure.Expanded(present.SectionAgents))
}

func TestResult_ErrorPayloadShowsErrorBox(t *testing.T) {
	_, m := loadedModel(t, `{"status": "error", "error": "orchestrator unavailable"}`)
	view := m.View()
	assert.Contains(t, view, present.ErrorTitle)
	assert.Contains(t, view, "orchestrator unavailable")
}

func TestResult_StaleFetchIgnored(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)
	other := insight.NewKey("Adobe", insight.KindFull)
	next := send(t, m, fetchDoneMsg{Key: other, Err: errors.New("late")})
	assert.Nil(t, next.result.err)
}

func TestResult_EscapeReturnsToDashboard(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.CurrentView())
	assert.Equal(t, submit.PhaseIdle, m.controller.State().Phase)
	assert.Equal(t, "Microsoft", m.dash.input.Value())
}

func TestResult_QuitKey(t *testing.T) {
	_, m := loadedModel(t, microsoftPayload)
	_, cmd := sendCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
