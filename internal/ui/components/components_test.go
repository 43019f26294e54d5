// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewThemeWithProfile(termenv.Ascii, true)
}

// =============================================================================
// LOADING VIEW TESTS
// =============================================================================

func TestLoadingView_RevealsStepsOverTime(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lv := NewLoadingView(testTheme(), "Microsoft", insight.KindFull)
	lv.now = func() time.Time { return now }

	assert.Empty(t, lv.View(), "inactive view renders nothing")
	require.NotNil(t, lv.Start())
	assert.True(t, lv.IsActive())
	assert.Equal(t, 1, lv.VisibleSteps())

	now = now.Add(2 * StepInterval)
	assert.Equal(t, 3, lv.VisibleSteps())

	now = now.Add(time.Minute)
	assert.Equal(t, 5, lv.VisibleSteps(), "never more than the step count")

	view := lv.View()
	assert.Contains(t, view, "Generating Insights for Microsoft")
	assert.Contains(t, view, present.LoadingSubtitle)
	assert.Contains(t, view, "Synthesizing Insights")
	assert.Contains(t, view, "Elapsed 1m 0s")

	lv.Stop()
	assert.False(t, lv.IsActive())
}

func TestLoadingView_QuickHasTwoSteps(t *testing.T) {
	lv := NewLoadingView(testTheme(), "Adobe", insight.KindQuick)
	start := time.Now()
	lv.now = func() time.Time { return start.Add(time.Hour) }
	lv.Start()
	lv.startTime = start
	assert.Equal(t, 2, lv.VisibleSteps())
	assert.NotContains(t, lv.View(), "Financial Agent")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0s", formatElapsed(400*time.Millisecond))
	assert.Equal(t, "59s", formatElapsed(59*time.Second))
	assert.Equal(t, "2m 5s", formatElapsed(125*time.Second))
}

// =============================================================================
// RENDER TESTS
// =============================================================================

func TestRenderHeader(t *testing.T) {
	th := testTheme()
	h := present.Header{
		Company:   "Microsoft",
		Badge:     "82% Ready",
		Level:     "High",
		Timestamp: "Jan 1, 2025 00:00 UTC",
		Elapsed:   "Executed in 1800ms",
	}
	out := RenderHeader(th, h, normalize.Some(82), 80)
	assert.Contains(t, out, "Microsoft")
	assert.Contains(t, out, "82% Ready")
	assert.Contains(t, out, "82%")
	assert.Contains(t, out, "Executed in 1800ms")

	bare := RenderHeader(th, present.Header{Company: "Acme"}, normalize.Optional[int]{}, 80)
	assert.Equal(t, "Acme", strings.TrimSpace(bare))
}

func TestRenderCard_TruncatedList(t *testing.T) {
	insights := make([]string, 8)
	for i := range insights {
		insights[i] = fmt.Sprintf("insight-%d", i+1)
	}
	c := present.Card{
		Title:   "Research Agent",
		Status:  "success",
		Visible: present.VisibleInsights(insights, false),
		Total:   8,
		Hidden:  3,
		Toggle:  present.ToggleLabel(8, false),
	}
	out := RenderCard(testTheme(), c, 60, false)
	assert.Contains(t, out, "Research Agent")
	assert.Contains(t, out, "insight-5")
	assert.NotContains(t, out, "insight-6")
	assert.Contains(t, out, "Show 3 More")
}

func TestRenderCard_ErrorAndEmpty(t *testing.T) {
	c := present.Card{Title: "News Agent", Status: "error", Error: "rate limited"}
	out := RenderCard(testTheme(), c, 40, true)
	assert.Contains(t, out, "rate limited")
	assert.Contains(t, out, "No insights")
}

func TestRenderSection_CollapsedShowsTitleOnly(t *testing.T) {
	s := present.Section{
		ID:       present.SectionTalking,
		Title:    present.SectionTalking.Title(),
		Expanded: false,
		Points:   []string{"Azure growth", "Copilot adoption"},
	}
	out := RenderSection(testTheme(), s, SectionOptions{Width: 80, Number: 2})
	assert.Contains(t, out, "Key Talking Points")
	assert.Contains(t, out, "(2)")
	assert.NotContains(t, out, "Azure growth")

	s.Expanded = true
	out = RenderSection(testTheme(), s, SectionOptions{Width: 80})
	assert.Contains(t, out, "1. Azure growth")
	assert.Contains(t, out, "2. Copilot adoption")
}

func TestRenderSection_OpportunitiesAndRisks(t *testing.T) {
	th := testTheme()
	opp := present.Section{
		ID: present.SectionOpportunities, Title: "Opportunities", Expanded: true,
		Opportunities: []normalize.Opportunity{{
			Title:       "Cloud migration",
			Description: normalize.Some("Move workloads"),
			Confidence:  normalize.Some("High"),
		}},
	}
	out := RenderSection(th, opp, SectionOptions{Width: 80})
	assert.Contains(t, out, "Cloud migration")
	assert.Contains(t, out, "confidence: High")
	assert.Contains(t, out, "Move workloads")

	risk := present.Section{
		ID: present.SectionRisks, Title: "Potential Risks & Mitigation", Expanded: true,
		Risks: []normalize.Risk{{Risk: "Budget freeze", Severity: normalize.Some("medium"), Mitigation: normalize.Some("Phase rollout")}},
	}
	out = RenderSection(th, risk, SectionOptions{Width: 80})
	assert.Contains(t, out, "Budget freeze")
	assert.Contains(t, out, "(medium)")
	assert.Contains(t, out, "Phase rollout")
}

func TestRenderSection_ActionItems(t *testing.T) {
	s := present.Section{
		ID: present.SectionTalking, Title: "Key Talking Points", Expanded: true,
		Actions: []normalize.ActionItem{{Action: "Send deck", Priority: normalize.Some("high")}},
	}
	out := RenderSection(testTheme(), s, SectionOptions{Width: 80})
	assert.Contains(t, out, "Action items")
	assert.Contains(t, out, "Send deck (high)")
}

func TestRenderErrorBox(t *testing.T) {
	out := RenderErrorBox(testTheme(), "HTTP 500: boom", []string{"r retry", "esc back"}, 60)
	assert.Contains(t, out, present.ErrorTitle)
	assert.Contains(t, out, present.ErrorMessage)
	assert.Contains(t, out, "HTTP 500: boom")
	assert.Contains(t, out, "r retry")
}

func TestMarkdown_RendersText(t *testing.T) {
	md := NewMarkdown("notty", 40)
	assert.Equal(t, 40, md.Width())
	out := md.Render("Microsoft is investing **heavily** in AI.")
	assert.Contains(t, out, "heavily")
	assert.False(t, strings.HasPrefix(out, "\n"))
}
