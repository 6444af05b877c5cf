package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserOpener opens URLs with the platform's default handler
type BrowserOpener struct{}

// Open starts the system browser for url and does not wait for it
func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start browser for %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
