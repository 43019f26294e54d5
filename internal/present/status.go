// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"github.com/jeranaias/salesbrief/internal/insight"
)

// Messages shown while a request is outstanding or after it failed.
const (
	LoadingSubtitle = "Our AI agents are gathering data from multiple sources..."
	ErrorTitle      = "Error Loading Insights"
	ErrorMessage    = "Failed to generate insights. Please try again."
)

// LoadingTitle is the pending view heading.
func LoadingTitle(company string) string {
	return "Generating Insights for " + company
}

// LoadingSteps lists the progress labels for a pending request of kind.
// Quick briefs only run the research and news agents.
func LoadingSteps(kind insight.Kind) []string {
	if kind == insight.KindQuick {
		return []string{"Research Agent", "News Agent"}
	}
	return []string{
		"Research Agent",
		"News Agent",
		"Financial Agent",
		"Social Media Agent",
		"Synthesizing Insights",
	}
}
