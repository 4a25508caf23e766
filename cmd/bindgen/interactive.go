package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseEntry struct {
	class  class
	method method
}

type browseModel struct {
	manifest string
	entries  []browseEntry
	visible  []int
	filter   textinput.Model
	selected int
}

func runInteractive(manifest string, classes []class) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}

	var entries []browseEntry
	for _, c := range classes {
		for _, m := range c.methods {
			entries = append(entries, browseEntry{class: c, method: m})
		}
	}

	filter := textinput.New()
	filter.Placeholder = "filter methods"
	filter.Focus()

	m := browseModel{manifest: manifest, entries: entries, filter: filter}
	m.refilter()

	_, err := tea.NewProgram(m).Run()
	return err
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) refilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		label := strings.ToLower(e.class.decl.Name + "." + e.method.vmName)
		if q == "" || strings.Contains(label, q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bindgen · "+m.manifest) + "\n\n")
	b.WriteString(m.filter.View() + "\n\n")

	for pos, idx := range m.visible {
		e := m.entries[idx]
		label := fmt.Sprintf("%s.%s %s", e.class.decl.Name, e.method.vmName, e.method.signature)
		if pos == m.selected {
			b.WriteString(selectedStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString("  " + methodStyle.Render(label) + "\n")
		}
	}

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no methods match") + "\n")
	} else {
		e := m.entries[m.visible[m.selected]]
		b.WriteString("\n")
		if e.method.symbol != "" {
			b.WriteString(symbolStyle.Render(e.method.symbol) + "\n")
		} else {
			b.WriteString(symbolStyle.Render("call-back: "+e.class.decl.Package+"."+e.class.decl.Name+"#"+e.method.vmName) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ select · type to filter · esc quit"))
	return b.String()
}
