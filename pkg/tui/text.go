package tui

// ui text
const (
	TextTitle      = "Newsdesk"
	TextLoading    = "Loading stories..."
	TextEmpty      = "No news stories found."
	TextOffline    = "No internet connection."
	TextFooter     = "↑/↓ j/k move | pgup/pgdn page | enter open | r reload | q quit"
	TextOpened     = "opened %s"
	TextOpenFailed = "can't open story: %v"
)

// layout
const (
	headerLines  = 3
	footerLines  = 2
	defaultRows  = 20
	defaultWidth = 100
	dateWidth    = 10
)
