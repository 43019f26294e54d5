// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

// StepInterval is the delay between revealing consecutive step labels.
const StepInterval = 400 * time.Millisecond

// =============================================================================
// LOADING VIEW
// =============================================================================

// LoadingView is the pending-request screen: a spinner, a heading and the
// agent steps revealed one after another.
type LoadingView struct {
	spinner   spinner.Model
	theme     *styles.Theme
	company   string
	steps     []string
	startTime time.Time
	now       func() time.Time
	active    bool
}

// NewLoadingView creates a loading view for a request of kind.
func NewLoadingView(theme *styles.Theme, company string, kind insight.Kind) LoadingView {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner
	return LoadingView{
		spinner: s,
		theme:   theme,
		company: company,
		steps:   present.LoadingSteps(kind),
		now:     time.Now,
	}
}

// Start activates the spinner and records the start time.
func (l *LoadingView) Start() tea.Cmd {
	l.active = true
	l.startTime = l.now()
	return l.spinner.Tick
}

// Stop deactivates the spinner.
func (l *LoadingView) Stop() {
	l.active = false
}

// IsActive returns whether the spinner is running.
func (l LoadingView) IsActive() bool {
	return l.active
}

// Elapsed returns the time since Start.
func (l LoadingView) Elapsed() time.Duration {
	if l.startTime.IsZero() {
		return 0
	}
	return l.now().Sub(l.startTime)
}

// VisibleSteps is how many step labels have been revealed so far.
func (l LoadingView) VisibleSteps() int {
	n := int(l.Elapsed()/StepInterval) + 1
	return min(n, len(l.steps))
}

// Update advances the spinner.
func (l LoadingView) Update(msg tea.Msg) (LoadingView, tea.Cmd) {
	if !l.active {
		return l, nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the loading screen.
func (l LoadingView) View() string {
	if !l.active {
		return ""
	}
	t := l.theme
	var b strings.Builder
	b.WriteString(l.spinner.View() + " " + t.Title.Render(present.LoadingTitle(l.company)) + "\n")
	b.WriteString(t.Subtitle.Render(present.LoadingSubtitle) + "\n\n")

	for _, step := range l.steps[:l.VisibleSteps()] {
		b.WriteString("  " + l.spinner.View() + " " + t.StepTodo.Render(step) + "\n")
	}
	b.WriteString("\n" + t.Muted.Render(fmt.Sprintf("Elapsed %s", formatElapsed(l.Elapsed()))))
	return b.String()
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
