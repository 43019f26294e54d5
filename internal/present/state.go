// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"maps"

	"github.com/jeranaias/salesbrief/internal/normalize"
)

// =============================================================================
// SECTIONS
// =============================================================================

// SectionID identifies a collapsible section of the result view.
type SectionID string

const (
	SectionSummary       SectionID = "summary"
	SectionTalking       SectionID = "talking"
	SectionOpportunities SectionID = "opportunities"
	SectionAgents        SectionID = "agents"
	SectionRisks         SectionID = "risks"
)

// SectionOrder is the display order of sections.
var SectionOrder = []SectionID{
	SectionSummary,
	SectionTalking,
	SectionOpportunities,
	SectionAgents,
	SectionRisks,
}

// Title returns the section heading.
func (id SectionID) Title() string {
	switch id {
	case SectionSummary:
		return "Executive Summary"
	case SectionTalking:
		return "Key Talking Points"
	case SectionOpportunities:
		return "Opportunities"
	case SectionAgents:
		return "Agent Insights"
	case SectionRisks:
		return "Potential Risks & Mitigation"
	default:
		return string(id)
	}
}

// Known reports whether id is one of the five result sections.
func (id SectionID) Known() bool {
	for _, s := range SectionOrder {
		if s == id {
			return true
		}
	}
	return false
}

// =============================================================================
// INTENTS
// =============================================================================

// Intent is a user action against the disclosure state.
type Intent interface {
	isIntent()
}

// ToggleSection flips one section between expanded and collapsed.
type ToggleSection struct {
	ID SectionID
}

// ToggleCard flips one agent card between truncated and full.
type ToggleCard struct {
	Agent normalize.Agent
}

func (ToggleSection) isIntent() {}
func (ToggleCard) isIntent()    {}

// =============================================================================
// STATE
// =============================================================================

// State is the disclosure state of one mounted result view. It is
// independent of the fetch lifecycle and survives data updates.
// Sections default to expanded, cards to collapsed.
type State struct {
	sections map[SectionID]bool
	cards    map[normalize.Agent]bool
}

// Disclosure is a comparable copy of a State.
type Disclosure struct {
	Sections map[SectionID]bool
	Cards    map[normalize.Agent]bool
}

// NewState returns the default disclosure state.
func NewState() *State {
	s := &State{
		sections: make(map[SectionID]bool, len(SectionOrder)),
		cards:    make(map[normalize.Agent]bool, len(normalize.AgentOrder)),
	}
	for _, id := range SectionOrder {
		s.sections[id] = true
	}
	for _, a := range normalize.AgentOrder {
		s.cards[a] = false
	}
	return s
}

// Dispatch applies an intent. Unknown section ids and agents are ignored.
func (s *State) Dispatch(intent Intent) {
	switch in := intent.(type) {
	case ToggleSection:
		if v, ok := s.sections[in.ID]; ok {
			s.sections[in.ID] = !v
		}
	case ToggleCard:
		if v, ok := s.cards[in.Agent]; ok {
			s.cards[in.Agent] = !v
		}
	}
}

// Expanded reports whether a section is expanded.
func (s *State) Expanded(id SectionID) bool {
	return s.sections[id]
}

// CardExpanded reports whether an agent card shows all of its insights.
func (s *State) CardExpanded(a normalize.Agent) bool {
	return s.cards[a]
}

// Snapshot copies the current state.
func (s *State) Snapshot() Disclosure {
	return Disclosure{
		Sections: maps.Clone(s.sections),
		Cards:    maps.Clone(s.cards),
	}
}

// Reset restores the defaults.
func (s *State) Reset() {
	*s = *NewState()
}
