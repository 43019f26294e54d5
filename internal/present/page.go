// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"fmt"
	"strings"

	"github.com/jeranaias/salesbrief/internal/normalize"
)

// CollapsedInsightLimit is how many insights a collapsed agent card shows.
const CollapsedInsightLimit = 5

// TimestampLayout formats the header timestamp.
const TimestampLayout = "Jan 2, 2006 15:04 MST"

// Header is the top of the result view.
type Header struct {
	Company   string
	Badge     string // empty when no readiness score
	Level     string
	Timestamp string
	Elapsed   string
	Quick     bool
}

// Card is one agent's panel.
type Card struct {
	Agent      normalize.Agent
	Title      string
	Status     string
	Expanded   bool
	Visible    []string
	Total      int
	Hidden     int
	Toggle     string // empty when the list fits
	Error      string
	Confidence string
}

// Section is one collapsible block. Only the field matching ID is populated.
type Section struct {
	ID       SectionID
	Title    string
	Expanded bool

	Summary       string
	Points        []string
	Actions       []normalize.ActionItem
	Opportunities []normalize.Opportunity
	Risks         []normalize.Risk
	Cards         []Card
}

// Page is everything the result view needs, already presence-checked.
type Page struct {
	Header   Header
	Sections []Section
}

// Section returns the section with id, if it is on the page.
func (p Page) Section(id SectionID) (Section, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// PlainText renders the page as plain text for copying and non-interactive output.
func (p Page) PlainText() string {
	var b strings.Builder
	b.WriteString(p.Header.Company)
	if p.Header.Badge != "" {
		fmt.Fprintf(&b, " [%s]", p.Header.Badge)
	}
	b.WriteString("\n")
	if meta := joinNonEmpty(" | ", p.Header.Timestamp, p.Header.Elapsed); meta != "" {
		b.WriteString(meta + "\n")
	}
	for _, s := range p.Sections {
		fmt.Fprintf(&b, "\n## %s\n", s.Title)
		if s.Summary != "" {
			b.WriteString(s.Summary + "\n")
		}
		for _, pt := range s.Points {
			b.WriteString("- " + pt + "\n")
		}
		for _, a := range s.Actions {
			b.WriteString("- [ ] " + a.Action + "\n")
		}
		for _, o := range s.Opportunities {
			b.WriteString("- " + o.Title)
			if d, ok := o.Description.Get(); ok {
				b.WriteString(": " + d)
			}
			b.WriteString("\n")
		}
		for _, r := range s.Risks {
			b.WriteString("- " + r.Risk)
			if d, ok := r.Description.Get(); ok {
				b.WriteString(": " + d)
			}
			if m, ok := r.Mitigation.Get(); ok {
				b.WriteString(" (Mitigation: " + m + ")")
			}
			b.WriteString("\n")
		}
		for _, c := range s.Cards {
			fmt.Fprintf(&b, "### %s (%s)\n", c.Title, c.Status)
			for _, in := range c.Visible {
				b.WriteString("- " + in + "\n")
			}
			if c.Hidden > 0 {
				fmt.Fprintf(&b, "  ... %d more\n", c.Hidden)
			}
		}
	}
	return b.String()
}

// =============================================================================
// BUILD
// =============================================================================

// Build shapes a normalized insight for display under the given disclosure
// state. Sections with nothing to show are omitted. company is used for
// the header when the payload does not name one.
func Build(in normalize.Insight, company string, st *State) Page {
	if st == nil {
		st = NewState()
	}
	page := Page{Header: buildHeader(in, company)}

	for _, id := range SectionOrder {
		sec := Section{ID: id, Title: id.Title(), Expanded: st.Expanded(id)}
		switch id {
		case SectionSummary:
			summary, ok := in.Summary.Get()
			if !ok {
				continue
			}
			sec.Summary = summary
		case SectionTalking:
			if len(in.TalkingPoints) == 0 && len(in.ActionItems) == 0 {
				continue
			}
			sec.Points = in.TalkingPoints
			sec.Actions = in.ActionItems
		case SectionOpportunities:
			if len(in.Opportunities) == 0 {
				continue
			}
			sec.Opportunities = in.Opportunities
		case SectionAgents:
			if len(in.Agents) == 0 {
				continue
			}
			sec.Cards = make([]Card, 0, len(in.Agents))
			for _, out := range in.Agents {
				sec.Cards = append(sec.Cards, buildCard(out, st.CardExpanded(out.Agent)))
			}
		case SectionRisks:
			if len(in.Risks) == 0 {
				continue
			}
			sec.Risks = in.Risks
		}
		page.Sections = append(page.Sections, sec)
	}
	return page
}

func buildHeader(in normalize.Insight, company string) Header {
	h := Header{
		Company: strings.TrimSpace(company),
		Level:   in.ReadinessLevel.Or(""),
		Quick:   in.Quick,
	}
	if h.Company == "" {
		h.Company = in.Company.Or("")
	}
	h.Badge, _ = ReadinessBadge(in.Readiness)
	if ts, ok := in.Timestamp.Get(); ok {
		h.Timestamp = ts.Format(TimestampLayout)
	}
	if ms, ok := in.ExecutionMS.Get(); ok {
		h.Elapsed = fmt.Sprintf("Executed in %dms", ms)
	}
	return h
}

func buildCard(out normalize.AgentOutput, expanded bool) Card {
	c := Card{
		Agent:    out.Agent,
		Title:    out.Agent.Title(),
		Status:   out.Status,
		Expanded: expanded,
		Visible:  VisibleInsights(out.Insights, expanded),
		Total:    len(out.Insights),
		Hidden:   HiddenCount(len(out.Insights), expanded),
		Toggle:   ToggleLabel(len(out.Insights), expanded),
		Error:    out.Error.Or(""),
	}
	if conf, ok := out.Confidence.Get(); ok {
		c.Confidence = fmt.Sprintf("%.0f%% confidence", conf*100)
	}
	return c
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// VisibleInsights returns the slice of all to show. The result never
// aliases all, so callers cannot mutate the source list through it.
func VisibleInsights(all []string, expanded bool) []string {
	n := len(all)
	if !expanded && n > CollapsedInsightLimit {
		n = CollapsedInsightLimit
	}
	out := make([]string, n)
	copy(out, all[:n])
	return out
}

// HiddenCount is how many insights a card is not showing.
func HiddenCount(total int, expanded bool) int {
	if expanded || total <= CollapsedInsightLimit {
		return 0
	}
	return total - CollapsedInsightLimit
}

// ToggleLabel is the card's disclosure button text, or "" when every
// insight already fits.
func ToggleLabel(total int, expanded bool) string {
	if total <= CollapsedInsightLimit {
		return ""
	}
	if expanded {
		return "Show Less"
	}
	return fmt.Sprintf("Show %d More", total-CollapsedInsightLimit)
}

// ReadinessBadge formats the preparation score. No score, no badge.
func ReadinessBadge(pct normalize.Optional[int]) (string, bool) {
	p, ok := pct.Get()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d%% Ready", p), true
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
