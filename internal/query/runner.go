// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the lifecycle state of one key.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Snapshot is a point-in-time copy of one key's state.
type Snapshot[V any] struct {
	Status    Status
	Value     V
	Err       error
	Seq       uint64
	UpdatedAt time.Time
}

// Stats counts runner activity since creation.
type Stats struct {
	Entries   int    `json:"entries"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Attached  uint64 `json:"attached"`
	Issued    uint64 `json:"issued"`
	Discarded uint64 `json:"discarded"`
}

// FetchFunc performs the underlying request for a key.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// =============================================================================
// RUNNER
// =============================================================================

// call is one issued request. done is closed once value/err are set.
type call[V any] struct {
	seq   uint64
	done  chan struct{}
	value V
	err   error
}

type entry[V any] struct {
	status   Status
	value    V
	err      error
	seq      uint64
	updated  time.Time
	inflight *call[V]
}

// Runner caches the outcome of FetchFunc per key.
//
// Every key moves idle -> pending -> success|error. A new request from
// success or error re-enters pending and drops the previous value. Only the
// most recently issued request for a key may write its outcome; older
// outcomes that arrive late are discarded. The Runner is safe for
// concurrent use.
type Runner[K comparable, V any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[K, V]
	entries map[K]*entry[V]
	// issued survives Invalidate so late results can still be ordered.
	issued map[K]uint64
	stats  Stats
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewRunner creates a Runner around fetch.
func NewRunner[K comparable, V any](fetch FetchFunc[K, V], opts ...Option) *Runner[K, V] {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner[K, V]{
		fetch:   fetch,
		entries: make(map[K]*entry[V]),
		issued:  make(map[K]uint64),
		logger:  o.logger.Named("query"),
		now:     o.now,
	}
}

// Fetch returns the cached value for key, attaches to the in-flight request
// if one is pending, or issues a new request when the key is idle or errored.
// ctx bounds only the wait; the request itself keeps running for other waiters.
func (r *Runner[K, V]) Fetch(ctx context.Context, key K) (V, error) {
	r.mu.Lock()
	e, ok := r.entries[key]
	switch {
	case ok && e.status == StatusPending && e.inflight != nil:
		c := e.inflight
		r.stats.Attached++
		r.mu.Unlock()
		r.logger.Debug("attached to in-flight request", zap.Any("key", key), zap.Uint64("seq", c.seq))
		return r.wait(ctx, c)
	case ok && e.status == StatusSuccess:
		value := e.value
		r.stats.Hits++
		r.mu.Unlock()
		return value, nil
	}
	r.stats.Misses++
	c := r.startLocked(ctx, key)
	r.mu.Unlock()
	return r.wait(ctx, c)
}

// Refetch always issues a new request for key, superseding any request
// already in flight. The superseded request is not cancelled; its outcome
// is discarded when it arrives.
func (r *Runner[K, V]) Refetch(ctx context.Context, key K) (V, error) {
	r.mu.Lock()
	c := r.startLocked(ctx, key)
	r.mu.Unlock()
	return r.wait(ctx, c)
}

// startLocked records key as pending and launches the request. r.mu must be held.
func (r *Runner[K, V]) startLocked(ctx context.Context, key K) *call[V] {
	seq := r.issued[key] + 1
	r.issued[key] = seq
	r.stats.Issued++

	c := &call[V]{seq: seq, done: make(chan struct{})}
	r.entries[key] = &entry[V]{
		status:   StatusPending,
		seq:      seq,
		updated:  r.now(),
		inflight: c,
	}
	r.logger.Debug("issuing request", zap.Any("key", key), zap.Uint64("seq", seq))

	go r.run(context.WithoutCancel(ctx), key, c)
	return c
}

func (r *Runner[K, V]) run(ctx context.Context, key K, c *call[V]) {
	value, err := r.fetch(ctx, key)
	r.resolve(key, c, value, err)
}

// resolve records the outcome of c, unless a newer request was issued.
func (r *Runner[K, V]) resolve(key K, c *call[V], value V, err error) {
	r.mu.Lock()
	if r.issued[key] != c.seq {
		r.stats.Discarded++
		r.mu.Unlock()
		r.logger.Debug("discarding superseded result",
			zap.Any("key", key), zap.Uint64("seq", c.seq))
	} else {
		e, ok := r.entries[key]
		if !ok {
			// Invalidated while in flight; the latest result still lands.
			e = &entry[V]{}
			r.entries[key] = e
		}
		e.seq = c.seq
		e.updated = r.now()
		e.inflight = nil
		if err != nil {
			var zero V
			e.status, e.value, e.err = StatusError, zero, err
		} else {
			e.status, e.value, e.err = StatusSuccess, value, nil
		}
		r.mu.Unlock()
		if err != nil {
			r.logger.Info("request failed", zap.Any("key", key), zap.Uint64("seq", c.seq), zap.Error(err))
		}
	}

	c.value, c.err = value, err
	close(c.done)
}

func (r *Runner[K, V]) wait(ctx context.Context, c *call[V]) (V, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// =============================================================================
// INSPECTION AND INVALIDATION
// =============================================================================

// Snapshot returns the current state of key. Unknown keys are idle.
func (r *Runner[K, V]) Snapshot(key K) Snapshot[V] {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return Snapshot[V]{Status: StatusIdle}
	}
	return Snapshot[V]{
		Status:    e.status,
		Value:     e.value,
		Err:       e.err,
		Seq:       e.seq,
		UpdatedAt: e.updated,
	}
}

// Invalidate drops the entry for key, returning it to idle. An in-flight
// request is left running. Returns false when there was nothing to drop.
func (r *Runner[K, V]) Invalidate(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	r.logger.Debug("invalidated", zap.Any("key", key))
	return true
}

// InvalidateAll drops every entry and returns how many were removed.
func (r *Runner[K, V]) InvalidateAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	r.entries = make(map[K]*entry[V])
	return n
}

// Keys lists every key that currently has an entry.
func (r *Runner[K, V]) Keys() []K {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns activity counters.
func (r *Runner[K, V]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.Entries = len(r.entries)
	return s
}
