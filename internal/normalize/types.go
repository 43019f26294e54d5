// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"time"
)

// =============================================================================
// OPTIONAL VALUES
// =============================================================================

// Optional holds a value that may be absent from the payload.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if !o.Present {
		return def
	}
	return o.Value
}

// MarshalJSON writes the value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// =============================================================================
// AGENTS
// =============================================================================

// Agent names one of the upstream research agents.
type Agent string

const (
	AgentResearch    Agent = "research"
	AgentNews        Agent = "news"
	AgentFinancial   Agent = "financial"
	AgentSocialMedia Agent = "social_media"
)

// AgentOrder is the fixed display order of agent cards.
var AgentOrder = []Agent{AgentResearch, AgentNews, AgentFinancial, AgentSocialMedia}

// Title returns the card heading for the agent.
func (a Agent) Title() string {
	switch a {
	case AgentResearch:
		return "Research Agent"
	case AgentNews:
		return "News Agent"
	case AgentFinancial:
		return "Financial Agent"
	case AgentSocialMedia:
		return "Social Media Agent"
	default:
		return string(a)
	}
}

// ParseAgent maps a payload key to an Agent. Unknown keys return false.
func ParseAgent(s string) (Agent, bool) {
	for _, a := range AgentOrder {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// StatusUnknown is used when an agent output carries no status.
const StatusUnknown = "unknown"

// AgentOutput is one agent's contribution.
type AgentOutput struct {
	Agent       Agent
	Status      string
	Insights    []string
	Confidence  Optional[float64] // 0..1
	Error       Optional[string]
	ExecutionMS Optional[int64]
}

// =============================================================================
// SYNTHESIS
// =============================================================================

type Opportunity struct {
	Title          string
	Description    Optional[string]
	Confidence     Optional[string]
	PotentialValue Optional[string]
}

type Risk struct {
	Risk        string
	Description Optional[string]
	Severity    Optional[string]
	Mitigation  Optional[string]
}

type ActionItem struct {
	Action   string
	Priority Optional[string]
	Due      Optional[string]
}

// Insight is the typed, presence-checked view of one insight payload.
// Lists are never nil.
type Insight struct {
	Company     Optional[string]
	Quick       bool
	Status      Optional[string]
	Error       Optional[string]
	Message     Optional[string]
	Timestamp   Optional[time.Time]
	ExecutionMS Optional[int64]

	Agents []AgentOutput

	Summary        Optional[string]
	TalkingPoints  []string
	ActionItems    []ActionItem
	Opportunities  []Opportunity
	Risks          []Risk
	Readiness      Optional[int]
	ReadinessLevel Optional[string]

	DataCompleteness Optional[string]
}

// Agent returns the output for a, if the payload carried one.
func (in *Insight) Agent(a Agent) (AgentOutput, bool) {
	for _, out := range in.Agents {
		if out.Agent == a {
			return out, true
		}
	}
	return AgentOutput{}, false
}

// Empty reports whether nothing displayable was decoded.
func (in *Insight) Empty() bool {
	return len(in.Agents) == 0 &&
		!in.Summary.Present &&
		len(in.TalkingPoints) == 0 &&
		len(in.Opportunities) == 0 &&
		len(in.Risks) == 0 &&
		len(in.ActionItems) == 0
}

func emptyInsight() Insight {
	return Insight{
		Agents:        []AgentOutput{},
		TalkingPoints: []string{},
		ActionItems:   []ActionItem{},
		Opportunities: []Opportunity{},
		Risks:         []Risk{},
	}
}
