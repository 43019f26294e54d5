// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package insight

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// REQUEST KINDS AND KEYS
// =============================================================================

// Kind selects which generation endpoint serves a request.
type Kind string

const (
	// KindFull is the comprehensive multi-agent insight generation.
	KindFull Kind = "full"
	// KindQuick is the reduced-latency quick brief.
	KindQuick Kind = "quick"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Key identifies a cached insight: one company, one request kind.
type Key struct {
	Company string
	Kind    Kind
}

// NewKey builds a cache key from user input. The company name is trimmed
// and NFC-normalised so composed and decomposed spellings share an entry.
func NewKey(company string, kind Kind) Key {
	return Key{Company: NormalizeCompany(company), Kind: kind}
}

// String renders the key for logs.
func (k Key) String() string {
	return k.Company + "#" + string(k.Kind)
}

// NormalizeCompany trims surrounding whitespace and applies Unicode NFC.
func NormalizeCompany(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Priority is the upstream scheduling hint.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the accepted priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Request is the body of POST /insights/generate.
type Request struct {
	CompanyName   string         `json:"company_name"`
	TimeframeDays int            `json:"timeframe_days,omitempty"`
	Priority      Priority       `json:"priority,omitempty"`
	Context       map[string]any `json:"context,omitempty"`
}

// QuickRequest is the body of POST /insights/quick-brief.
type QuickRequest struct {
	CompanyName string `json:"company_name"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Result is a raw insight payload as received from the service.
// Payload is the decoded JSON document and is intentionally untyped; the
// normalize package is responsible for reading it.
type Result struct {
	Kind       Kind
	Payload    any
	StatusCode int
	RequestID  string
	ReceivedAt time.Time
	Duration   time.Duration
}

// History is the decoded reply of GET /insights/history/{company}.
type History struct {
	CompanyName string `json:"company_name"`
	Entries     []any  `json:"history"`
	Message     string `json:"message"`
}

// Health is the decoded reply of GET /health/.
type Health struct {
	Status  string         `json:"status"`
	Version string         `json:"version,omitempty"`
	Raw     map[string]any `json:"-"`
}

// AgentInfo describes one upstream agent.
type AgentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// AgentStatus is the decoded reply of GET /agents/status.
type AgentStatus struct {
	Agents              []AgentInfo `json:"available_agents"`
	TotalAgents         int         `json:"total_agents"`
	OrchestratorVersion string      `json:"orchestrator_version"`
}
