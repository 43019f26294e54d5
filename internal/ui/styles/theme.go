// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// CHROME
	// ==========================================================================

	App       lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	HelpKey   lipgloss.Style
	StatusBar lipgloss.Style

	// ==========================================================================
	// DASHBOARD
	// ==========================================================================

	Form        lipgloss.Style
	InputLabel  lipgloss.Style
	ModeOn      lipgloss.Style
	ModeOff     lipgloss.Style
	DemoCompany lipgloss.Style
	Validation  lipgloss.Style

	// ==========================================================================
	// RESULT VIEW
	// ==========================================================================

	Company        lipgloss.Style
	Badge          lipgloss.Style
	SectionTitle   lipgloss.Style
	SectionFocused lipgloss.Style
	SectionBody    lipgloss.Style
	Bullet         lipgloss.Style
	Card           lipgloss.Style
	CardFocused    lipgloss.Style
	CardTitle      lipgloss.Style
	StatusPill     lipgloss.Style
	Toggle         lipgloss.Style
	Opportunity    lipgloss.Style
	Risk           lipgloss.Style
	Label          lipgloss.Style

	// ==========================================================================
	// FEEDBACK
	// ==========================================================================

	Spinner   lipgloss.Style
	StepDone  lipgloss.Style
	StepTodo  lipgloss.Style
	ErrorBox  lipgloss.Style
	ErrorText lipgloss.Style
	Toast     lipgloss.Style
}

// NewTheme creates a new theme, detecting the terminal's capabilities.
func NewTheme() *Theme {
	return NewThemeWithProfile(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme for a known profile. Tests and
// non-interactive output use this to avoid probing the terminal.
func NewThemeWithProfile(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(Blue)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)
	t.HelpKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	// Dashboard
	t.Form = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 2)
	t.InputLabel = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.ModeOn = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ModeOff = lipgloss.NewStyle().Foreground(TextMuted)
	t.DemoCompany = lipgloss.NewStyle().
		Foreground(Blue).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.Validation = lipgloss.NewStyle().Foreground(Amber)

	// Result view
	t.Company = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.Badge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Padding(0, 1)
	t.SectionTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.SectionFocused = t.SectionTitle.Underline(true)
	t.SectionBody = lipgloss.NewStyle().PaddingLeft(2).Foreground(TextPrimary)
	t.Bullet = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.CardFocused = t.Card.BorderForeground(Blue)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.StatusPill = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	t.Toggle = lipgloss.NewStyle().Foreground(Blue)
	t.Opportunity = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.Risk = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)

	// Feedback
	t.Spinner = lipgloss.NewStyle().Foreground(Blue)
	t.StepDone = lipgloss.NewStyle().Foreground(Emerald)
	t.StepTodo = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)
	t.ErrorText = lipgloss.NewStyle().Foreground(Rose)
	t.Toast = lipgloss.NewStyle().Foreground(Emerald).Italic(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// ContentWidth is the usable width inside the app padding.
func (t *Theme) ContentWidth() int {
	w := t.Width - 2
	if w < 20 {
		return 20
	}
	return w
}

// GlamourStyle resolves "auto" to dark or light from the detected background.
func (t *Theme) GlamourStyle(configured string) string {
	if configured != "" && configured != "auto" {
		return configured
	}
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
