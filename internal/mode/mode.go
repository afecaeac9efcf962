// Package mode defines the controller contract shared by overtype's
// interactive modes.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Controller is implemented by every interactive mode. A mode owns its
// resources (watchers, brokers) and releases them in Close once its program
// loop has finished.
type Controller interface {
	tea.Model

	// Close releases mode-held resources. Safe to call more than once.
	Close()
}
