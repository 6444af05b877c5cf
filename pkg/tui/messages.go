package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/umputun/newsdesk/pkg/pipeline"
)

// deliveryMsg carries a loader outcome into the update loop
type deliveryMsg pipeline.Delivery

// reloadMsg starts a new load for the current settings
type reloadMsg struct{}

// openedMsg reports the result of opening a story
type openedMsg struct {
	url string
	err error
}

// waitForDelivery blocks until the next loader outcome or ctx end
func waitForDelivery(ctx context.Context, ch <-chan pipeline.Delivery) tea.Cmd {
	return func() tea.Msg {
		select {
		case d := <-ch:
			return deliveryMsg(d)
		case <-ctx.Done():
			return nil
		}
	}
}

// openStory runs the opener off the update loop
func openStory(opener Opener, url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: opener.Open(url)}
	}
}
