// Package tui is the terminal story list. It shows loading, ready, empty and offline states,
// scrolls the list and opens the selected story.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/pipeline"
)

// State of the story list
type State string

// list states
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateOffline State = "offline"
)

//go:generate moq -out mocks/opener.go -pkg mocks -skip-ensure -fmt goimports . Opener

// Opener navigates to a story URL
type Opener interface {
	Open(url string) error
}

// Model is the story list. Deliveries from the loader arrive through a channel and are turned
// into messages, a delivery of an older load than the current one is ignored.
type Model struct {
	ctx        context.Context
	loader     *pipeline.Loader
	deliveries chan pipeline.Delivery
	opener     Opener
	settings   domain.Settings

	state      State
	stories    []domain.NewsStory
	generation uint64
	cursor     int
	offset     int
	width      int
	height     int
	selected   string
	status     string
}

// NewModel makes the list model. Loading starts in Init. The ctx bounds all loads and must be
// canceled when the program exits. A nil opener only records the selection.
func NewModel(ctx context.Context, runner pipeline.Runner, opener Opener, settings domain.Settings) Model {
	deliveries := make(chan pipeline.Delivery, 1)
	deliver := func(d pipeline.Delivery) {
		select {
		case deliveries <- d:
		case <-ctx.Done():
		}
	}
	return Model{
		ctx:        ctx,
		loader:     pipeline.NewLoader(runner, deliver),
		deliveries: deliveries,
		opener:     opener,
		settings:   settings.WithDefaults(),
		state:      StateLoading,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return reloadMsg{} },
		waitForDelivery(m.ctx, m.deliveries),
	)
}

// State returns the current list state
func (m Model) State() State { return m.state }

// Stories returns the displayed stories
func (m Model) Stories() []domain.NewsStory { return m.stories }

// Cursor returns the index of the highlighted story
func (m Model) Cursor() int { return m.cursor }

// Selected returns the URL of the last story chosen with enter, empty if none
func (m Model) Selected() string { return m.selected }

// visibleRows is the number of story rows fitting the window
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return defaultRows
	}
	rows := m.height - headerLines - footerLines
	if rows < 1 {
		return 1
	}
	return rows
}
