package tui

import "github.com/MKhiriev/go-item-custody/models"

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageItems    = "items"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult reports the outcome of a login attempt.
type LoginResult struct {
	Username string
	Err      error
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	Username string
	Err      error
}

// RegisterSuccessNotice is delivered to the menu after a registration.
type RegisterSuccessNotice struct {
	Username string
}

type itemsLoadedMsg struct {
	items []models.Item
	err   error
}

type itemCreatedMsg struct {
	item models.Item
	err  error
}

type itemDeletedMsg struct {
	id      int64
	deleted bool
	err     error
}

type itemSentMsg struct {
	confirmationURL string
	copied          bool
	err             error
}

type itemClaimedMsg struct {
	err error
}
