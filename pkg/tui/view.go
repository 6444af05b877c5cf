package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/umputun/newsdesk/pkg/domain"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString(InfoStyle.Render("  " + m.querySummary()))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(InfoStyle.Render(TextLoading))
		b.WriteString("\n")
	case StateOffline:
		b.WriteString(ErrorStyle.Render(TextOffline))
		b.WriteString("\n")
	case StateEmpty:
		b.WriteString(InfoStyle.Render(TextEmpty))
		b.WriteString("\n")
	case StateReady:
		end := min(len(m.stories), m.offset+m.visibleRows())
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(m.stories[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

// querySummary describes the active search
func (m Model) querySummary() string {
	term := m.settings.SearchTerm
	if term == "" {
		term = "all stories"
	}
	summary := fmt.Sprintf("%s, %s first", term, m.settings.OrderBy)
	if m.state == StateReady {
		summary += fmt.Sprintf(" [%d/%d]", m.cursor+1, len(m.stories))
	}
	return summary
}

// renderRow formats one story line truncated to the window width
func (m Model) renderRow(s domain.NewsStory, current bool) string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	line := FormatRow(s, width-2)
	if current {
		return CursorStyle.Render("> " + line)
	}
	return "  " + line
}

// FormatRow makes a plain single line "date  title  (section, author)" fitting width cells
func FormatRow(s domain.NewsStory, width int) string {
	date := runewidth.FillRight(s.DisplayDate(), dateWidth)
	meta := fmt.Sprintf("  (%s, %s)", s.Section, s.Author)
	line := date + "  " + s.Title + meta
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}

	// shrink the title first, keep the meta when there is room for it
	titleWidth := width - runewidth.StringWidth(date) - 2 - runewidth.StringWidth(meta)
	if titleWidth >= 10 {
		return date + "  " + runewidth.Truncate(s.Title, titleWidth, "…") + meta
	}
	return runewidth.Truncate(line, width, "…")
}
