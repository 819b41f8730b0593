// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
)

// credentialsForm is the login/password pair shared by the login and
// registration screens.
type credentialsForm struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newCredentialsForm() credentialsForm {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return credentialsForm{inputs: []textinput.Model{loginInput, passwordInput}}
}

// handleKey processes form keys. submit is true when enter was pressed on
// a complete form.
func (f *credentialsForm) handleKey(msg tea.Msg) (cmd tea.Cmd, submit, back bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			f.submitting = false
			f.errMsg = ""
			return nil, false, true
		case key.Matches(keyMsg, keys.tab):
			f.focusNext()
			return nil, false, false
		case key.Matches(keyMsg, keys.backtab):
			f.focusPrev()
			return nil, false, false
		case key.Matches(keyMsg, keys.enter):
			if f.submitting {
				return nil, false, false
			}
			login, pass := f.values()
			if login == "" || pass == "" {
				f.errMsg = "Login and password are required"
				return nil, false, false
			}
			f.errMsg = ""
			f.submitting = true
			return nil, true, false
		}
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false, false
}

func (f *credentialsForm) values() (string, string) {
	return strings.TrimSpace(f.inputs[0].Value()), f.inputs[1].Value()
}

func (f *credentialsForm) view(title, action, hotKeys string) string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼──────────────────────────────────────────\n")
	b.WriteString("Login     │ [")
	b.WriteString(f.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(f.inputs[1].View())
	b.WriteString("]\n")

	if f.submitting {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (f *credentialsForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[f.focus].Focus()
}

func (f *credentialsForm) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *credentialsForm) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

const formHotKeys = "esc: back │ tab: next field │ enter: submit"

// LoginModel is the login screen. A successful login stores the token in
// the adapter and produces a [LoginResult] that [RootModel] turns into a
// switch to the item list.
type LoginModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	form credentialsForm
}

func NewLoginModel(ctx context.Context, api adapter.ServerAdapter) *LoginModel {
	return &LoginModel{ctx: ctx, api: api, form: newCredentialsForm()}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.form.submitting = false
		if result.Err != nil {
			m.form.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.form.reset()
		return m, nil
	}

	cmd, submit, back := m.form.handleKey(msg)
	switch {
	case back:
		return m, navigate(pageMenu)
	case submit:
		return m, m.cmdLogin(m.form.values())
	}
	return m, cmd
}

func (m *LoginModel) View() string {
	return m.form.view("LOG IN", "Log in", formHotKeys)
}

func (m *LoginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx, api := m.ctx, m.api

	return func() tea.Msg {
		_, err := api.Login(ctx, login, pass)
		return LoginResult{Username: login, Err: err}
	}
}

// RegisterModel is the registration screen. On success it returns to the
// menu with a [RegisterSuccessNotice].
type RegisterModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	form credentialsForm
}

func NewRegisterModel(ctx context.Context, api adapter.ServerAdapter) *RegisterModel {
	return &RegisterModel{ctx: ctx, api: api, form: newCredentialsForm()}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.form.submitting = false
		if result.Err != nil {
			m.form.errMsg = humanizeError(result.Err)
			return m, nil
		}

		m.form.reset()
		return m, func() tea.Msg {
			return NavigateTo{
				Page:    pageMenu,
				Payload: RegisterSuccessNotice{Username: result.Username},
			}
		}
	}

	cmd, submit, back := m.form.handleKey(msg)
	switch {
	case back:
		return m, navigate(pageMenu)
	case submit:
		return m, m.cmdRegister(m.form.values())
	}
	return m, cmd
}

func (m *RegisterModel) View() string {
	return m.form.view("REGISTRATION", "Register", formHotKeys)
}

func (m *RegisterModel) cmdRegister(login, pass string) tea.Cmd {
	ctx, api := m.ctx, m.api

	return func() tea.Msg {
		return RegisterResult{Username: login, Err: api.Register(ctx, login, pass)}
	}
}
