// Package tui is the interactive terminal front end of the item custody
// client, built on Bubble Tea.
//
// A [RootModel] routes between pages: the start menu, the login and
// registration forms, and the item list where items are created, deleted,
// offered and claimed.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	api       adapter.ServerAdapter
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(api adapter.ServerAdapter, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{api: api, buildInfo: buildInfo, logger: logger}
}

// Run blocks until the user quits. With a token already stored in the
// adapter the item list opens directly.
func (t *TUI) Run(ctx context.Context) error {
	start := pageMenu
	if t.api.Token() != "" {
		start = pageItems
	}

	root := NewRootModel(t.pages(ctx), start, t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Debug().Msg("tui closed by user")
	}

	return nil
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.api),
		pageRegister: NewRegisterModel(ctx, t.api),
		pageItems:    NewItemsModel(ctx, t.api),
	}
}
