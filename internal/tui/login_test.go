// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
)

func fillCredentials(m tea.Model, login, password string) tea.Model {
	m, _ = m.Update(keyRunes(login))
	m, _ = m.Update(keyType(tea.KeyTab))
	m, _ = m.Update(keyRunes(password))
	return m
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	m := NewLoginModel(context.Background(), newMockAPI(t))

	_, _ = m.Update(keyRunes("alice"))
	_, cmd := m.Update(keyType(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Login and password are required")
}

func TestLoginModel_Submit(t *testing.T) {
	api := newMockAPI(t)
	api.EXPECT().Login(gomock.Any(), "alice", "s3cret").Return("0123456789abcdef0123456789abcdef", nil)

	m := fillCredentials(NewLoginModel(context.Background(), api), "alice", "s3cret")
	m, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "[Log in...]")

	// a second enter while the request is in flight is ignored
	_, again := m.Update(keyType(tea.KeyEnter))
	assert.Nil(t, again)

	result, ok := cmd().(LoginResult)
	require.True(t, ok)
	assert.Equal(t, "alice", result.Username)
	assert.NoError(t, result.Err)

	m, _ = m.Update(result)
	login := m.(*LoginModel)
	assert.False(t, login.form.submitting)
	l, p := login.form.values()
	assert.Empty(t, l)
	assert.Empty(t, p)
}

func TestLoginModel_Failure(t *testing.T) {
	api := newMockAPI(t)
	api.EXPECT().Login(gomock.Any(), "alice", "wrong").Return("", adapter.ErrUnauthorized)

	m := fillCredentials(NewLoginModel(context.Background(), api), "alice", "wrong")
	m, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())

	assert.Contains(t, m.View(), "Not authorized, log in again")
	l, _ := m.(*LoginModel).form.values()
	assert.Equal(t, "alice", l)
}

func TestLoginModel_EscGoesBack(t *testing.T) {
	m := NewLoginModel(context.Background(), newMockAPI(t))

	_, cmd := m.Update(keyType(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageMenu}, cmd())
}

func TestCredentialsForm_FocusCycles(t *testing.T) {
	f := newCredentialsForm()

	f.focusNext()
	assert.Equal(t, 1, f.focus)
	f.focusNext()
	assert.Equal(t, 0, f.focus)
	f.focusPrev()
	assert.Equal(t, 1, f.focus)
	assert.True(t, f.inputs[1].Focused())
	assert.False(t, f.inputs[0].Focused())
}

func TestRegisterModel_Success(t *testing.T) {
	api := newMockAPI(t)
	api.EXPECT().Register(gomock.Any(), "bob", "pa55").Return(nil)

	m := fillCredentials(NewRegisterModel(context.Background(), api), "bob", "pa55")
	m, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)

	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)

	assert.Equal(t, NavigateTo{
		Page:    pageMenu,
		Payload: RegisterSuccessNotice{Username: "bob"},
	}, cmd())
}

func TestRegisterModel_Conflict(t *testing.T) {
	api := newMockAPI(t)
	api.EXPECT().Register(gomock.Any(), "bob", "pa55").Return(adapter.ErrConflict)

	m := fillCredentials(NewRegisterModel(context.Background(), api), "bob", "pa55")
	m, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), adapter.ErrConflict.Error())
}
