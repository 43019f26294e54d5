// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
)

const microsoftPayload = `{
	"timestamp": "2025-01-01T00:00:00Z",
	"execution_time_ms": 1800,
	"agent_outputs": {"research": {"status": "success", "insights": ["a", "b"]}},
	"synthesis": {"executive_summary": "S", "talking_points": ["t1"], "meeting_preparation_score": {"percentage": 82}}
}`

// =============================================================================
// STATE TESTS
// =============================================================================

func TestState_Defaults(t *testing.T) {
	st := NewState()
	for _, id := range SectionOrder {
		assert.True(t, st.Expanded(id), "section %s", id)
	}
	for _, a := range normalize.AgentOrder {
		assert.False(t, st.CardExpanded(a), "card %s", a)
	}
}

func TestState_ToggleSectionTwiceIsIdentity(t *testing.T) {
	for _, id := range SectionOrder {
		t.Run(string(id), func(t *testing.T) {
			st := NewState()
			st.Dispatch(ToggleCard{Agent: normalize.AgentNews})
			before := st.Snapshot()

			st.Dispatch(ToggleSection{ID: id})
			assert.False(t, st.Expanded(id))
			st.Dispatch(ToggleSection{ID: id})

			assert.Equal(t, before, st.Snapshot())
		})
	}
}

func TestState_ToggleFlipsExactlyOneEntry(t *testing.T) {
	st := NewState()
	before := st.Snapshot()
	st.Dispatch(ToggleSection{ID: SectionRisks})
	after := st.Snapshot()

	for _, id := range SectionOrder {
		if id == SectionRisks {
			assert.NotEqual(t, before.Sections[id], after.Sections[id])
			continue
		}
		assert.Equal(t, before.Sections[id], after.Sections[id])
	}
	assert.Equal(t, before.Cards, after.Cards)
}

func TestState_UnknownIntentTargetsIgnored(t *testing.T) {
	st := NewState()
	before := st.Snapshot()
	st.Dispatch(ToggleSection{ID: "weather"})
	st.Dispatch(ToggleCard{Agent: "weather"})
	assert.Equal(t, before, st.Snapshot())
}

func TestState_SnapshotIsACopy(t *testing.T) {
	st := NewState()
	snap := st.Snapshot()
	snap.Sections[SectionSummary] = false
	assert.True(t, st.Expanded(SectionSummary))
}

// =============================================================================
// BUILD TESTS
// =============================================================================

func TestBuild_MicrosoftScenario(t *testing.T) {
	page := Build(normalize.DecodeJSON([]byte(microsoftPayload)), "Microsoft", NewState())

	assert.Equal(t, "Microsoft", page.Header.Company)
	assert.Equal(t, "82% Ready", page.Header.Badge)
	assert.Equal(t, "Jan 1, 2025 00:00 UTC", page.Header.Timestamp)
	assert.Equal(t, "Executed in 1800ms", page.Header.Elapsed)

	agents, ok := page.Section(SectionAgents)
	require.True(t, ok)
	require.Len(t, agents.Cards, 1)
	card := agents.Cards[0]
	assert.Equal(t, "Research Agent", card.Title)
	assert.Equal(t, []string{"a", "b"}, card.Visible)
	assert.Zero(t, card.Hidden)
	assert.Empty(t, card.Toggle)

	talking, ok := page.Section(SectionTalking)
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, talking.Points)

	_, ok = page.Section(SectionOpportunities)
	assert.False(t, ok)
	_, ok = page.Section(SectionRisks)
	assert.False(t, ok)

	summary, ok := page.Section(SectionSummary)
	require.True(t, ok)
	assert.Equal(t, "S", summary.Summary)
}

func TestBuild_MissingAgentOutputs(t *testing.T) {
	in := normalize.DecodeJSON([]byte(`{"synthesis": {"executive_summary": "S"}}`))
	page := Build(in, "Microsoft", NewState())
	_, ok := page.Section(SectionAgents)
	assert.False(t, ok)
	assert.Len(t, page.Sections, 1)
}

func TestBuild_NoScoreNoBadge(t *testing.T) {
	page := Build(normalize.DecodeJSON([]byte(`{}`)), "Acme", nil)
	assert.Empty(t, page.Header.Badge)
	assert.Empty(t, page.Header.Timestamp)
	assert.Empty(t, page.Header.Elapsed)
	assert.Empty(t, page.Sections)
}

func TestBuild_CompanyFallsBackToPayload(t *testing.T) {
	page := Build(normalize.DecodeJSON([]byte(`{"company_name": "Adobe"}`)), "  ", nil)
	assert.Equal(t, "Adobe", page.Header.Company)
}

func TestBuild_CollapsedSectionKeepsData(t *testing.T) {
	st := NewState()
	st.Dispatch(ToggleSection{ID: SectionSummary})
	page := Build(normalize.DecodeJSON([]byte(microsoftPayload)), "Microsoft", st)

	summary, ok := page.Section(SectionSummary)
	require.True(t, ok)
	assert.False(t, summary.Expanded)
	assert.Equal(t, "S", summary.Summary)
}

func TestBuild_CardTruncation(t *testing.T) {
	insights := make([]string, 8)
	for i := range insights {
		insights[i] = fmt.Sprintf("i%d", i)
	}
	in := normalize.Insight{Agents: []normalize.AgentOutput{{
		Agent: normalize.AgentNews, Status: "success", Insights: insights,
	}}}
	st := NewState()

	card := Build(in, "Acme", st).Sections[0].Cards[0]
	assert.Equal(t, insights[:5], card.Visible)
	assert.Equal(t, 3, card.Hidden)
	assert.Equal(t, "Show 3 More", card.Toggle)

	st.Dispatch(ToggleCard{Agent: normalize.AgentNews})
	card = Build(in, "Acme", st).Sections[0].Cards[0]
	assert.Equal(t, insights, card.Visible)
	assert.Zero(t, card.Hidden)
	assert.Equal(t, "Show Less", card.Toggle)

	st.Dispatch(ToggleCard{Agent: normalize.AgentNews})
	card = Build(in, "Acme", st).Sections[0].Cards[0]
	assert.Len(t, card.Visible, 5)
	assert.Len(t, insights, 8, "source list must not be mutated")
}

// =============================================================================
// DERIVED VALUE TESTS
// =============================================================================

func TestVisibleInsights_DoesNotAlias(t *testing.T) {
	all := []string{"a", "b", "c"}
	vis := VisibleInsights(all, false)
	vis[0] = "changed"
	assert.Equal(t, "a", all[0])
}

func TestToggleLabel(t *testing.T) {
	assert.Empty(t, ToggleLabel(5, false))
	assert.Equal(t, "Show 1 More", ToggleLabel(6, false))
	assert.Equal(t, "Show Less", ToggleLabel(6, true))
}

func TestReadinessBadge(t *testing.T) {
	_, ok := ReadinessBadge(normalize.Optional[int]{})
	assert.False(t, ok)
	badge, ok := ReadinessBadge(normalize.Some(0))
	assert.True(t, ok)
	assert.Equal(t, "0% Ready", badge)
}

func TestLoadingSteps(t *testing.T) {
	assert.Len(t, LoadingSteps(insight.KindFull), 5)
	assert.Equal(t, "Synthesizing Insights", LoadingSteps(insight.KindFull)[4])
	assert.Equal(t, []string{"Research Agent", "News Agent"}, LoadingSteps(insight.KindQuick))
}

func TestPage_PlainText(t *testing.T) {
	text := Build(normalize.DecodeJSON([]byte(microsoftPayload)), "Microsoft", nil).PlainText()
	assert.Contains(t, text, "Microsoft [82% Ready]")
	assert.Contains(t, text, "## Executive Summary")
	assert.Contains(t, text, "- t1")
	assert.Contains(t, text, "### Research Agent (success)")
}
