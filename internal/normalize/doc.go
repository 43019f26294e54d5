// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package normalize turns an untyped insight payload into an Insight.
//
// The service's payload is deeply nested and every field below the top
// level may be missing or have the wrong type. This package is the only
// place that checks for presence; everything downstream consumes Insight
// and Optional values.
package normalize
