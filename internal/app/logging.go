package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// setupLogging routes the standard logger. The TUI owns the terminal, so in
// that mode logs go to path; otherwise they stay on stderr.
func setupLogging(path string, toFile bool) (func(), error) {
	if !toFile {
		log.SetOutput(os.Stderr)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "jukebox")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
