package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
	"github.com/MKhiriev/go-item-custody/models"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type itemsMode int

const (
	modeList itemsMode = iota
	modeCreate
	modeSend
	modeClaim
	modeConfirmDelete
)

// ItemsModel is the main screen: the caller's items plus the create,
// delete, send and claim actions.
type ItemsModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	items   []models.Item
	idx     int
	loading bool
	spinner spinner.Model

	mode   itemsMode
	input  textinput.Model
	status string
	errMsg string
}

func NewItemsModel(ctx context.Context, api adapter.ServerAdapter) *ItemsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	input := textinput.New()
	input.Width = 60
	input.CharLimit = 512

	return &ItemsModel{ctx: ctx, api: api, spinner: s, input: input}
}

// Init reloads the list every time the page is opened.
func (m *ItemsModel) Init() tea.Cmd {
	m.loading = true
	m.mode = modeList
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.items
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		return m, nil

	case itemCreatedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Item %d %q has been created", msg.item.ID, msg.item.Name)
		return m, m.reload()

	case itemDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		if msg.deleted {
			m.status = fmt.Sprintf("Item %d has been removed", msg.id)
		} else {
			m.status = fmt.Sprintf("Item %d was not yours to remove", msg.id)
		}
		return m, m.reload()

	case itemSentMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Confirmation URL: " + msg.confirmationURL
		if msg.copied {
			m.status += " (copied)"
		}
		return m, nil

	case itemClaimedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Item has been received"
		return m, m.reload()

	case tea.KeyMsg:
		switch m.mode {
		case modeCreate, modeSend, modeClaim:
			return m.updatePrompt(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *ItemsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.refresh):
		return m, m.reload()
	case key.Matches(msg, keys.logout):
		m.api.SetToken("")
		m.items = nil
		m.status, m.errMsg = "", ""
		return m, navigate(pageMenu)
	case key.Matches(msg, keys.newItem):
		return m, m.openPrompt(modeCreate, "item name")
	case key.Matches(msg, keys.claim):
		return m, m.openPrompt(modeClaim, "confirmation URL")
	case key.Matches(msg, keys.send):
		if _, ok := m.current(); ok {
			return m, m.openPrompt(modeSend, "recipient login")
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	}

	return m, nil
}

func (m *ItemsModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, keys.enter):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		mode := m.mode
		m.closePrompt()
		m.status, m.errMsg = "", ""

		switch mode {
		case modeCreate:
			return m, m.cmdCreate(value)
		case modeSend:
			item, _ := m.current()
			return m, m.cmdSend(item.ID, value)
		case modeClaim:
			return m, m.cmdClaim(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ItemsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.mode = modeList
		item, ok := m.current()
		if !ok {
			return m, nil
		}
		m.status, m.errMsg = "", ""
		return m, m.cmdDelete(item.ID)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.mode = modeList
	}
	return m, nil
}

func (m *ItemsModel) View() string {
	if m.mode == modeConfirmDelete {
		item, _ := m.current()
		return overlayBoxStyle.Render(fmt.Sprintf("Delete %q?\n\ny yes    n no", item.Name))
	}

	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	case len(m.items) == 0:
		b.WriteString("No items\n")
	default:
		b.WriteString(fmt.Sprintf("  %-8s │ %s\n", "ID", "Name"))
		b.WriteString("  ─────────┼──────────────────────────────\n")
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-8d │ %s\n", cursor, item.ID, fitText(item.Name, 40)))
		}
	}

	switch m.mode {
	case modeCreate, modeSend, modeClaim:
		b.WriteString("\n")
		b.WriteString(m.input.Placeholder)
		b.WriteString(": [")
		b.WriteString(m.input.View())
		b.WriteString("]\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "n: new │ d: delete │ s: send │ c: claim │ r: refresh │ l: log out │ q: quit"
	if m.mode != modeList {
		hotKeys = "enter: submit │ esc: cancel"
	}
	return renderPage("MY ITEMS", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *ItemsModel) current() (models.Item, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Item{}, false
	}
	return m.items[m.idx], true
}

func (m *ItemsModel) openPrompt(mode itemsMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *ItemsModel) closePrompt() {
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
}

func (m *ItemsModel) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *ItemsModel) cmdLoad() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		items, err := api.ListItems(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m *ItemsModel) cmdCreate(name string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		item, err := api.CreateItem(ctx, name)
		return itemCreatedMsg{item: item, err: err}
	}
}

func (m *ItemsModel) cmdDelete(id int64) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		deleted, err := api.DeleteItem(ctx, id)
		return itemDeletedMsg{id: id, deleted: deleted, err: err}
	}
}

// cmdSend offers the item and puts the confirmation URL on the clipboard.
// A missing clipboard is not an error.
func (m *ItemsModel) cmdSend(id int64, recipient string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		confirmationURL, err := api.SendItem(ctx, id, recipient)
		if err != nil {
			return itemSentMsg{err: err}
		}
		copied := copyToClipboard(confirmationURL) == nil
		return itemSentMsg{confirmationURL: confirmationURL, copied: copied}
	}
}

func (m *ItemsModel) cmdClaim(confirmationURL string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return itemClaimedMsg{err: api.Claim(ctx, confirmationURL)}
	}
}
