package ui

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/decoder/claude-wt/internal/ui/styles"
)

const maxVisible = 10

// itemSource implements fuzzy.Source over picker items.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

// filterItems ranks items against the query. An empty query keeps the
// original order.
func filterItems(query string, items []Item) []fuzzy.Match {
	if query == "" {
		matches := make([]fuzzy.Match, len(items))
		for i := range items {
			matches[i] = fuzzy.Match{Str: items[i].Label, Index: i}
		}
		return matches
	}
	return fuzzy.FindFrom(query, itemSource(items))
}

type pickerModel struct {
	prompt    string
	items     []Item
	filtered  []fuzzy.Match
	textInput textinput.Model
	cursor    int
	selected  int // index into items, -1 until chosen
	done      bool
	cancelled bool
}

func newPickerModel(prompt string, items []Item) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.SetWidth(40)

	return pickerModel{
		prompt:    prompt,
		items:     items,
		filtered:  filterItems("", items),
		textInput: ti,
		selected:  -1,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.selected = m.filtered[m.cursor].Index
			}
			m.done = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.filtered = filterItems(m.textInput.Value(), m.items)
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

func (m pickerModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var sb strings.Builder
	sb.WriteString(m.prompt + "\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(styles.MutedStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		if m.cursor >= maxVisible {
			start = m.cursor - maxVisible + 1
		}
		end := min(start+maxVisible, len(m.filtered))

		for i := start; i < end; i++ {
			item := m.items[m.filtered[i].Index]
			if i == m.cursor {
				sb.WriteString(styles.AccentStyle.Render("> " + item.Label))
			} else {
				sb.WriteString(styles.NormalStyle.Render("  " + item.Label))
			}
			if item.Description != "" {
				sb.WriteString(styles.MutedStyle.Render("  " + item.Description))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.MutedStyle.Render("↑/↓ navigate • type to filter • enter select • esc cancel"))

	return tea.NewView(sb.String())
}

// fuzzySelector runs the bubbletea picker on stderr so stdout stays
// clean for piped output.
type fuzzySelector struct{}

func (s *fuzzySelector) Pick(prompt string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoSelection
	}

	p := tea.NewProgram(newPickerModel(prompt, items), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}

	m := finalModel.(pickerModel)
	if m.cancelled || m.selected < 0 {
		return -1, ErrNoSelection
	}
	return m.selected, nil
}
