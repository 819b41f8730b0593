package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuEntry struct {
	title string
	page  string
}

// MenuModel is the start page for callers without a token.
type MenuModel struct {
	entries []menuEntry
	idx     int
	notice  string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		entries: []menuEntry{
			{title: "Log in", page: pageLogin},
			{title: "Register", page: pageRegister},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd { return nil }

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		m.notice = "User " + msg.Username + " has been registered"
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *MenuModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.up):
		m.idx = max(m.idx-1, 0)
	case key.Matches(msg, keys.down):
		m.idx = min(m.idx+1, len(m.entries)-1)
	case key.Matches(msg, keys.quit):
		return tea.Quit
	case key.Matches(msg, keys.enter):
		m.notice = ""
		return navigate(m.entries[m.idx].page)
	}
	return nil
}

func (m *MenuModel) View() string {
	lines := make([]string, 0, len(m.entries)+2)
	if m.notice != "" {
		lines = append(lines, okStyle.Render("OK: "+m.notice), "")
	}
	for i, e := range m.entries {
		if i == m.idx {
			lines = append(lines, selectedStyle.Render("> "+e.title))
			continue
		}
		lines = append(lines, "  "+e.title)
	}

	return renderPage("MAIN MENU", strings.Join(lines, "\n"), "enter: select │ ↑/↓: move │ v: about │ q: quit")
}
