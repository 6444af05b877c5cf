package tui

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/umputun/newsdesk/pkg/pipeline"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scrollToCursor()
		return m, nil
	case reloadMsg:
		return m.reload(), nil
	case deliveryMsg:
		return m.handleDelivery(pipeline.Delivery(msg))
	case openedMsg:
		if msg.err != nil {
			log.Printf("[WARN] can't open %s: %v", msg.url, msg.err)
			m.status = fmt.Sprintf(TextOpenFailed, msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf(TextOpened, msg.url)
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.loader.Cancel()
		return m, tea.Quit
	case "r":
		return m.reload(), nil
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.visibleRows())
	case "pgdown", " ":
		m.moveCursor(m.visibleRows())
	case "home", "g":
		m.moveCursor(-len(m.stories))
	case "end", "G":
		m.moveCursor(len(m.stories))
	case "enter":
		return m.selectStory()
	}
	return m, nil
}

// reload starts a new load, the list keeps its old stories until the outcome arrives
func (m Model) reload() Model {
	m.state = StateLoading
	m.status = ""
	m.generation = m.loader.Load(m.ctx, m.settings)
	return m
}

// handleDelivery replaces the list with a current outcome, stale outcomes are ignored
func (m Model) handleDelivery(d pipeline.Delivery) (tea.Model, tea.Cmd) {
	next := waitForDelivery(m.ctx, m.deliveries)
	if d.Generation != m.generation {
		log.Printf("[DEBUG] ignore stale delivery #%d, current #%d", d.Generation, m.generation)
		return m, next
	}

	m.cursor, m.offset = 0, 0
	switch {
	case errors.Is(d.Err, pipeline.ErrNoConnectivity):
		m.stories = nil
		m.state = StateOffline
	case d.Err != nil:
		log.Printf("[WARN] load failed: %v", d.Err)
		m.stories = nil
		m.state = StateEmpty
	case len(d.Stories) == 0:
		m.stories = nil
		m.state = StateEmpty
	default:
		m.stories = d.Stories
		m.state = StateReady
	}
	return m, next
}

// selectStory records the highlighted story and opens it
func (m Model) selectStory() (tea.Model, tea.Cmd) {
	if m.state != StateReady || len(m.stories) == 0 {
		return m, nil
	}
	m.selected = m.stories[m.cursor].URL
	if m.opener == nil {
		m.status = m.selected
		return m, nil
	}
	return m, openStory(m.opener, m.selected)
}

func (m *Model) moveCursor(delta int) {
	if len(m.stories) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.stories)-1, m.cursor+delta))
	m.scrollToCursor()
}

// scrollToCursor adjusts the offset so the cursor row is visible
func (m *Model) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, m.offset)
}
