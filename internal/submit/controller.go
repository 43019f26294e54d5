// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/salesbrief/internal/insight"
)

// ErrEmptyCompany is returned when the trimmed company name is empty.
var ErrEmptyCompany = insight.ErrEmptyCompany

// Runner issues a fresh request for a key and waits for it.
type Runner interface {
	Refetch(ctx context.Context, key insight.Key) (*insight.Result, error)
}

// Navigator moves the UI to the result view for key.
type Navigator interface {
	Navigate(key insight.Key)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(insight.Key)

// Navigate calls f(key).
func (f NavigatorFunc) Navigate(key insight.Key) { f(key) }

// =============================================================================
// STATE
// =============================================================================

// Phase is where the form is in its submission lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseFailed
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseFailed:
		return "failed"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// State is a snapshot of the form's submission state.
type State struct {
	Phase   Phase
	Company string
	Quick   bool
	Key     insight.Key
	Err     error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller turns a form submission into exactly one request and, on
// success, a navigation. It never retries.
type Controller struct {
	mu     sync.Mutex
	runner Runner
	nav    Navigator
	state  State
	seq    uint64
	logger *zap.Logger
}

// NewController creates a Controller. logger may be nil.
func NewController(runner Runner, nav Navigator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		runner: runner,
		nav:    nav,
		logger: logger.Named("submit"),
	}
}

// Submit requests a brief for company and blocks until it resolves.
// An empty or whitespace name returns ErrEmptyCompany without changing
// state or issuing a request. If a newer submission starts before this one
// resolves, this one returns its own outcome but neither updates state nor
// navigates.
func (c *Controller) Submit(ctx context.Context, company string, quick bool) error {
	name := insight.NormalizeCompany(company)
	if name == "" {
		return ErrEmptyCompany
	}
	key := insight.NewKey(name, KindFor(quick))

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = State{Phase: PhasePending, Company: name, Quick: quick, Key: key}
	c.mu.Unlock()

	c.logger.Info("submitting", zap.Stringer("key", key))
	_, err := c.runner.Refetch(ctx, key)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("submission superseded", zap.Stringer("key", key))
		return err
	}
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = err
		c.mu.Unlock()
		c.logger.Warn("submission failed", zap.Stringer("key", key), zap.Error(err))
		return fmt.Errorf("generate insights for %s: %w", name, err)
	}
	c.state.Phase = PhaseSucceeded
	c.mu.Unlock()

	if c.nav != nil {
		c.nav.Navigate(key)
	}
	return nil
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns the form to idle, e.g. when navigating back to it.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = State{}
}

// IsEmptyCompany reports whether err is a rejected empty submission.
func IsEmptyCompany(err error) bool {
	return errors.Is(err, ErrEmptyCompany)
}
