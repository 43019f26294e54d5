// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package query provides a keyed request cache with in-flight de-duplication.
//
// A Runner wraps a FetchFunc and tracks one entry per key. Fetch serves a
// cached success, joins a pending request, or starts a new one. Refetch always
// starts a new one. Each issued request carries a per-key sequence number and
// only the newest may write its outcome, so responses that arrive out of
// order never overwrite fresher data.
//
// There is no expiry or eviction. Entries live until Invalidate or
// InvalidateAll is called.
//
// # Usage
//
//	runner := query.NewRunner(func(ctx context.Context, key insight.Key) (*normalize.Insight, error) {
//	    return fetcher.Fetch(ctx, key)
//	}, query.WithLogger(logger))
//
//	brief, err := runner.Fetch(ctx, insight.NewKey("Acme", insight.KindFull))
package query
