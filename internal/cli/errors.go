// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/salesbrief/internal/config"
	"github.com/jeranaias/salesbrief/internal/insight"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the insight service could not be reached or failed
	ExitNetworkError = 5
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrUsage marks a CommandError caused by invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "brief", "cache")
	Action  string // Action being performed (e.g., "generate", "clear")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error returned by a command to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var validation config.ValidateErrors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrUsage), errors.Is(err, insight.ErrEmptyCompany), insight.IsKind(err, insight.KindValidation):
		return ExitUsageError
	case insight.IsKind(err, insight.KindTransport), insight.IsKind(err, insight.KindDecode):
		return ExitNetworkError
	}
	return ExitGeneralError
}
