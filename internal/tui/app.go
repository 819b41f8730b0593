package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-item-custody/models"
)

// RootModel routes messages to the active page and owns the global keys:
// ctrl+c quits from anywhere and v opens the about box from the menu.
type RootModel struct {
	pages     map[string]tea.Model
	active    string
	buildInfo models.AppBuildInfo

	aboutOpen  bool
	quitByUser bool
}

func NewRootModel(pages map[string]tea.Model, start string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{pages: pages, active: start, buildInfo: buildInfo}
}

func (r RootModel) Init() tea.Cmd {
	if page, ok := r.pages[r.active]; ok {
		return page.Init()
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			r.quitByUser = true
			return r, tea.Quit
		}
		if r.aboutOpen {
			if key.Matches(msg, keys.esc, keys.about) {
				r.aboutOpen = false
			}
			return r, nil
		}
		if r.active == pageMenu && key.Matches(msg, keys.about) {
			r.aboutOpen = true
			return r, nil
		}

	case NavigateTo:
		page, ok := r.pages[msg.Page]
		if !ok {
			return r, nil
		}
		r.active = msg.Page
		r.aboutOpen = false
		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, page.Init()

	case LoginResult:
		// the login page resets its form, then the item list opens
		if msg.Err == nil {
			next, cmd := r.forward(msg)
			return next, tea.Batch(cmd, navigate(pageItems))
		}
	}

	return r.forward(msg)
}

func (r RootModel) View() string {
	if r.aboutOpen {
		return renderAbout(r.buildInfo)
	}
	page, ok := r.pages[r.active]
	if !ok {
		return renderPage("ITEM CUSTODY", "", "")
	}
	return page.View()
}

func (r RootModel) forward(msg tea.Msg) (RootModel, tea.Cmd) {
	page, ok := r.pages[r.active]
	if !ok {
		return r, nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.active] = updated
	return r, cmd
}

func navigate(page string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}
