// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONResponse is the envelope every --json command writes.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated (RFC 3339, UTC)
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates an error response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response as indented JSON.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// OutputJSON runs handler and, in JSON mode, writes its result or error as a
// JSONResponse. Outside JSON mode the handler is responsible for output.
func OutputJSON(w io.Writer, jsonMode bool, command string, handler func() (any, error)) error {
	data, err := handler()
	if !jsonMode {
		return err
	}
	if err != nil {
		_ = NewJSONErrorResponse(command, err).Write(w)
		return err
	}
	return NewJSONResponse(command, data).Write(w)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// BriefData is the data of `brief --json`.
type BriefData struct {
	Company    string   `json:"company"`
	Kind       string   `json:"kind"`
	RequestID  string   `json:"request_id,omitempty"`
	DurationMS int64    `json:"duration_ms"`
	Readiness  *int     `json:"readiness"`
	Sections   []string `json:"sections"`
	Text       string   `json:"text"`
	Payload    any      `json:"payload"`
	ExportPath string   `json:"export_path,omitempty"`
}

// HistoryData is the data of `history --json`.
type HistoryData struct {
	Company string `json:"company"`
	Limit   int    `json:"limit"`
	Entries []any  `json:"entries"`
	Message string `json:"message,omitempty"`
}

// StatusData is the data of `status --json`.
type StatusData struct {
	BaseURL             string      `json:"base_url"`
	Health              string      `json:"health"`
	Version             string      `json:"version,omitempty"`
	OrchestratorVersion string      `json:"orchestrator_version,omitempty"`
	TotalAgents         int         `json:"total_agents"`
	Agents              []AgentData `json:"agents"`
}

// AgentData describes one upstream agent in StatusData.
type AgentData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
