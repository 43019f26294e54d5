// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/salesbrief/internal/insight"
)

type fakeGenerator struct {
	mu    sync.Mutex
	full  []insight.Request
	quick []insight.QuickRequest
	err   error
}

func (g *fakeGenerator) GenerateFull(ctx context.Context, req insight.Request) (*insight.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.full = append(g.full, req)
	if g.err != nil {
		return nil, g.err
	}
	return &insight.Result{Kind: insight.KindFull, Payload: map[string]any{}}, nil
}

func (g *fakeGenerator) GenerateQuick(ctx context.Context, req insight.QuickRequest) (*insight.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quick = append(g.quick, req)
	if g.err != nil {
		return nil, g.err
	}
	return &insight.Result{Kind: insight.KindQuick, Payload: map[string]any{}}, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.full) + len(g.quick)
}

type recordingNav struct {
	keys []insight.Key
}

func (n *recordingNav) Navigate(key insight.Key) { n.keys = append(n.keys, key) }

func newController(gen *fakeGenerator) (*Controller, *recordingNav, *Cache) {
	nav := &recordingNav{}
	cache := NewCache(gen)
	return NewController(cache, nav, nil), nav, cache
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmit_FullMode(t *testing.T) {
	gen := &fakeGenerator{}
	ctrl, nav, cache := newController(gen)

	require.NoError(t, ctrl.Submit(context.Background(), "  Microsoft ", false))

	require.Len(t, gen.full, 1)
	assert.Empty(t, gen.quick)
	assert.Equal(t, insight.Request{
		CompanyName:   "Microsoft",
		TimeframeDays: 30,
		Priority:      insight.PriorityHigh,
	}, gen.full[0])

	want := insight.NewKey("Microsoft", insight.KindFull)
	assert.Equal(t, []insight.Key{want}, nav.keys)
	assert.Equal(t, PhaseSucceeded, ctrl.State().Phase)

	// The result view reads the same entry without a second request.
	_, err := cache.Fetch(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls())
}

func TestSubmit_QuickMode(t *testing.T) {
	gen := &fakeGenerator{}
	ctrl, nav, _ := newController(gen)

	require.NoError(t, ctrl.Submit(context.Background(), "Adobe", true))
	assert.Empty(t, gen.full)
	assert.Equal(t, []insight.QuickRequest{{CompanyName: "Adobe"}}, gen.quick)
	assert.Equal(t, insight.KindQuick, nav.keys[0].Kind)
}

func TestSubmit_EmptyNameIssuesNothing(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		gen := &fakeGenerator{}
		ctrl, nav, _ := newController(gen)

		err := ctrl.Submit(context.Background(), name, false)
		assert.ErrorIs(t, err, ErrEmptyCompany)
		assert.True(t, IsEmptyCompany(err))
		assert.Zero(t, gen.calls())
		assert.Empty(t, nav.keys)
		assert.Equal(t, State{}, ctrl.State(), "state must be unchanged")
	}
}

func TestSubmit_FailureDoesNotNavigate(t *testing.T) {
	boom := &insight.RequestError{Kind: insight.KindTransport, Status: 502, Message: "bad gateway"}
	gen := &fakeGenerator{err: boom}
	ctrl, nav, cache := newController(gen)

	err := ctrl.Submit(context.Background(), "Salesforce", false)
	require.Error(t, err)
	var reqErr *insight.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 502, reqErr.Status)

	assert.Empty(t, nav.keys)
	st := ctrl.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, "Salesforce", st.Company)
	assert.Equal(t, 1, gen.calls(), "no retry")
	assert.Equal(t, "error", cache.Snapshot(insight.NewKey("Salesforce", insight.KindFull)).Status.String())
}

func TestSubmit_ResubmitIssuesNewRequest(t *testing.T) {
	gen := &fakeGenerator{}
	ctrl, nav, _ := newController(gen)

	require.NoError(t, ctrl.Submit(context.Background(), "Adobe", false))
	require.NoError(t, ctrl.Submit(context.Background(), "Adobe", false))
	assert.Len(t, gen.full, 2)
	assert.Len(t, nav.keys, 2)
}

// blockingRunner lets a test decide when each submission resolves.
type blockingRunner struct {
	release chan error
	started chan insight.Key
}

func (r *blockingRunner) Refetch(ctx context.Context, key insight.Key) (*insight.Result, error) {
	r.started <- key
	if err := <-r.release; err != nil {
		return nil, err
	}
	return &insight.Result{Kind: key.Kind}, nil
}

func TestSubmit_SupersededSubmissionDoesNotNavigate(t *testing.T) {
	runner := &blockingRunner{release: make(chan error), started: make(chan insight.Key, 2)}
	nav := &recordingNav{}
	ctrl := NewController(runner, nav, nil)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- ctrl.Submit(ctx, "Adobe", false) }()
	<-runner.started

	second := make(chan error, 1)
	go func() { second <- ctrl.Submit(ctx, "Adobe", true) }()
	<-runner.started

	runner.release <- nil
	runner.release <- nil
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	require.Len(t, nav.keys, 1)
	assert.Equal(t, insight.KindQuick, nav.keys[0].Kind)
	assert.Equal(t, PhaseSucceeded, ctrl.State().Phase)
}

func TestController_Reset(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("down")}
	ctrl, _, _ := newController(gen)
	_ = ctrl.Submit(context.Background(), "Acme", false)
	require.Equal(t, PhaseFailed, ctrl.State().Phase)

	ctrl.Reset()
	assert.Equal(t, PhaseIdle, ctrl.State().Phase)
}

func TestNewFetcher_UnknownKind(t *testing.T) {
	fetch := NewFetcher(&fakeGenerator{})
	_, err := fetch(context.Background(), insight.Key{Company: "Acme", Kind: "weekly"})
	assert.Error(t, err)
}
