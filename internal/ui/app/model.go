// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/components"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

// View is which screen the program shows.
type View int

const (
	ViewDashboard View = iota
	ViewResult
)

// CacheClearer drops a company's cached briefs on the service side.
type CacheClearer interface {
	ClearCache(ctx context.Context, company string) error
}

// Options wires the program to its collaborators.
type Options struct {
	Cache        *submit.Cache
	Clearer      CacheClearer
	Theme        *styles.Theme
	Logger       *zap.Logger
	QuickMode    bool   // initial state of the quick toggle
	GlamourStyle string // configured style; "auto" follows the terminal
	ExportDir    string // destination for the export key
	ExportFormat string // md, json or html
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	cache   *submit.Cache
	clearer CacheClearer
	theme   *styles.Theme
	logger  *zap.Logger
	style   string

	exportDir    string
	exportFormat string

	controller *submit.Controller
	routes     chan insight.Key

	view     View
	width    int
	height   int
	help     help.Model
	showHelp bool

	dash   dashboard
	result result
}

// dashboard is the form view state.
type dashboard struct {
	keys       DashboardKeyMap
	input      textinput.Model
	quick      bool
	validation string
	pending    bool
	loading    components.LoadingView
	err        error
	company    string // last submitted, for retry
}

// result is the result view state.
type result struct {
	keys       ResultKeyMap
	key        insight.Key
	disclosure *present.State
	data       normalize.Insight
	requestID  string
	received   time.Time
	page       present.Page
	loaded     bool
	pending    bool
	loading    components.LoadingView
	err        error
	viewport   viewport.Model
	focus      int // index into page.Sections
	card       int // index into the agents section cards
	markdown   *components.Markdown
	toast      string
}

// New creates the root model. ctx bounds every request the program issues.
func New(ctx context.Context, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "Enter company name (e.g., Microsoft, Salesforce)"
	input.CharLimit = 100
	input.Prompt = "› "
	input.Focus()

	m := Model{
		ctx:     ctx,
		cache:   opts.Cache,
		clearer: opts.Clearer,
		theme:   opts.Theme,
		logger:  opts.Logger.Named("tui"),
		style:   opts.GlamourStyle,
		routes:  make(chan insight.Key, 4),
		help:    help.New(),

		exportDir:    opts.ExportDir,
		exportFormat: opts.ExportFormat,

		dash: dashboard{
			keys:  DefaultDashboardKeyMap(),
			input: input,
			quick: opts.QuickMode,
		},
		result: result{
			keys:     DefaultResultKeyMap(),
			viewport: viewport.New(80, 20),
		},
	}
	routes := m.routes
	m.controller = submit.NewController(m.cache, submit.NavigatorFunc(func(key insight.Key) {
		routes <- key
	}), opts.Logger)
	return m
}

// Init starts the cursor blink and the route listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForRoute())
}

// CurrentView returns which screen is showing.
func (m Model) CurrentView() View {
	return m.view
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
