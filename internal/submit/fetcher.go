// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"context"
	"fmt"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/query"
)

// Defaults applied to every full generation request.
const (
	DefaultTimeframeDays = 30
	DefaultPriority      = insight.PriorityHigh
)

// DemoCompanies are the one-key shortcuts offered on the dashboard.
var DemoCompanies = []string{"Microsoft", "Salesforce", "Adobe", "TechStart India"}

// Generator is the subset of insight.Client used to produce briefs.
type Generator interface {
	GenerateFull(ctx context.Context, req insight.Request) (*insight.Result, error)
	GenerateQuick(ctx context.Context, req insight.QuickRequest) (*insight.Result, error)
}

// Cache is the insight result cache shared by the dashboard and result views.
type Cache = query.Runner[insight.Key, *insight.Result]

// NewFetcher maps a cache key to the matching generation call.
func NewFetcher(gen Generator) query.FetchFunc[insight.Key, *insight.Result] {
	return func(ctx context.Context, key insight.Key) (*insight.Result, error) {
		switch key.Kind {
		case insight.KindQuick:
			return gen.GenerateQuick(ctx, insight.QuickRequest{CompanyName: key.Company})
		case insight.KindFull:
			return gen.GenerateFull(ctx, insight.Request{
				CompanyName:   key.Company,
				TimeframeDays: DefaultTimeframeDays,
				Priority:      DefaultPriority,
			})
		default:
			return nil, fmt.Errorf("unknown request kind %q", key.Kind)
		}
	}
}

// NewCache builds the insight cache around gen.
func NewCache(gen Generator, opts ...query.Option) *Cache {
	return query.NewRunner(NewFetcher(gen), opts...)
}

// KindFor returns the request kind for the quick-mode toggle.
func KindFor(quick bool) insight.Kind {
	if quick {
		return insight.KindQuick
	}
	return insight.KindFull
}
