// Package ui provides the interactive pickers and prompts, with headless
// fallbacks for scripts and hooks running without a terminal.
package ui

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrNoSelection is returned when no item was chosen, either because the
// user cancelled or because no terminal is attached. Callers must treat
// it as "do nothing": no git state may change after it.
var ErrNoSelection = errors.New("no selection made")

// Item is one pickable entry.
type Item struct {
	Label       string
	Description string
}

// Selector picks one item from a list. Returns the chosen index or
// ErrNoSelection.
type Selector interface {
	Pick(prompt string, items []Item) (int, error)
}

// NewSelector returns the fuzzy picker on a terminal and the headless
// selector otherwise.
func NewSelector() Selector {
	if isTerminal() {
		return &fuzzySelector{}
	}
	return &headlessSelector{}
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Interactive reports whether pickers and prompts can run. Callers use
// it to choose non-interactive defaults instead of showing a picker.
func Interactive() bool {
	return isTerminal()
}

// headlessSelector never picks. Non-interactive callers pass identifiers
// explicitly instead of going through a picker.
type headlessSelector struct{}

func (s *headlessSelector) Pick(prompt string, items []Item) (int, error) {
	return -1, ErrNoSelection
}
