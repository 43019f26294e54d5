// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package normalize

import (
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeJSON parses raw and normalizes it. Invalid JSON yields an empty Insight.
func DecodeJSON(raw []byte) Insight {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return emptyInsight()
	}
	return Normalize(payload)
}

// Normalize reads a decoded payload of unknown shape. It never fails: any
// subtree with the wrong shape is treated as absent and its siblings are
// still read.
func Normalize(raw any) Insight {
	out := emptyInsight()

	root, ok := object(raw)
	if !ok {
		return out
	}
	root, out.Message = unwrapEnvelope(root)

	out.Company = text(root["company_name"])
	out.Status = text(root["status"])
	out.Error = text(root["error"])
	out.Quick = cast.ToString(root["type"]) == "quick_brief"
	out.Timestamp = timestamp(root["timestamp"])
	out.ExecutionMS = milliseconds(root["execution_time_ms"])

	out.Agents = agents(root)

	if synth, ok := object(root["synthesis"]); ok {
		readSynthesis(&out, synth)
	}
	if summary, ok := object(root["summary"]); ok {
		out.DataCompleteness = text(summary["data_completeness"])
		if !out.Readiness.Present {
			if score, ok := object(summary["preparation_score"]); ok {
				out.Readiness = percentage(score["percentage"])
				out.ReadinessLevel = text(score["level"])
			}
		}
	}
	return out
}

// unwrapEnvelope returns the data object of a {success, data, message}
// response, or root unchanged.
func unwrapEnvelope(root map[string]any) (map[string]any, Optional[string]) {
	if _, ok := root["success"]; !ok {
		return root, Optional[string]{}
	}
	msg := text(root["message"])
	if data, ok := object(root["data"]); ok {
		return data, msg
	}
	return root, msg
}

// =============================================================================
// AGENTS
// =============================================================================

func agents(root map[string]any) []AgentOutput {
	source, ok := object(root["agent_outputs"])
	if !ok {
		if _, has := root["agent_outputs"]; has || cast.ToString(root["type"]) != "quick_brief" {
			return []AgentOutput{}
		}
		// Quick briefs carry agents at the top level.
		source = root
	}

	result := make([]AgentOutput, 0, len(AgentOrder))
	for _, a := range AgentOrder {
		obj, ok := object(source[string(a)])
		if !ok {
			continue
		}
		result = append(result, agentOutput(a, obj))
	}
	return result
}

func agentOutput(a Agent, obj map[string]any) AgentOutput {
	out := AgentOutput{
		Agent:       a,
		Status:      StatusUnknown,
		Insights:    textList(obj["insights"]),
		Error:       text(obj["error_message"]),
		ExecutionMS: milliseconds(obj["execution_time_ms"]),
	}
	if status := text(obj["status"]); status.Present && strings.TrimSpace(status.Value) != "" {
		out.Status = status.Value
	}
	if f, ok := number(obj["confidence_score"]); ok && f >= 0 && f <= 1 {
		out.Confidence = Some(f)
	}
	return out
}

// =============================================================================
// SYNTHESIS
// =============================================================================

func readSynthesis(out *Insight, synth map[string]any) {
	data, _ := object(synth["data"])
	field := func(name string) any {
		if v, ok := data[name]; ok && v != nil {
			return v
		}
		return synth[name]
	}

	if s := text(field("executive_summary")); s.Present && strings.TrimSpace(s.Value) != "" {
		out.Summary = s
	}
	out.TalkingPoints = textList(field("talking_points"))

	for _, obj := range objectList(field("opportunities")) {
		title := text(obj["opportunity"])
		if !title.Present {
			title = text(obj["title"])
		}
		if !title.Present {
			continue
		}
		out.Opportunities = append(out.Opportunities, Opportunity{
			Title:          title.Value,
			Description:    text(obj["description"]),
			Confidence:     text(obj["confidence"]),
			PotentialValue: text(obj["potential_value"]),
		})
	}

	for _, obj := range objectList(field("risks")) {
		name := text(obj["risk"])
		if !name.Present {
			continue
		}
		out.Risks = append(out.Risks, Risk{
			Risk:        name.Value,
			Description: text(obj["description"]),
			Severity:    text(obj["severity"]),
			Mitigation:  text(obj["mitigation"]),
		})
	}

	for _, obj := range objectList(field("action_items")) {
		action := text(obj["action"])
		if !action.Present {
			continue
		}
		out.ActionItems = append(out.ActionItems, ActionItem{
			Action:   action.Value,
			Priority: text(obj["priority"]),
			Due:      text(obj["due"]),
		})
	}

	if score, ok := object(field("meeting_preparation_score")); ok {
		out.Readiness = percentage(score["percentage"])
		out.ReadinessLevel = text(score["level"])
	}
}

// =============================================================================
// COERCION
// =============================================================================

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// text accepts strings and plain numbers. Objects, lists, booleans and nil
// are absent.
func text(v any) Optional[string] {
	switch t := v.(type) {
	case string:
		return Some(t)
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		s, err := cast.ToStringE(t)
		if err != nil {
			return Optional[string]{}
		}
		return Some(s)
	}
	return Optional[string]{}
}

func number(v any) (float64, bool) {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func percentage(v any) Optional[int] {
	f, ok := number(v)
	if !ok || f < 0 || f > 100 {
		return Optional[int]{}
	}
	return Some(int(math.Round(f)))
}

func milliseconds(v any) Optional[int64] {
	f, ok := number(v)
	if !ok || f < 0 {
		return Optional[int64]{}
	}
	return Some(int64(math.Round(f)))
}

func timestamp(v any) Optional[time.Time] {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return Optional[time.Time]{}
	}
	t, err := cast.ToTimeInDefaultLocationE(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Optional[time.Time]{}
	}
	return Some(t)
}

// textList keeps the scalar elements of a list and skips the rest.
func textList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := text(item); s.Present {
			out = append(out, s.Value)
		}
	}
	return out
}

func objectList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := object(item); ok {
			out = append(out, obj)
		}
	}
	return out
}
