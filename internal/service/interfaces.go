package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-item-custody/models"
)

// AuthService registers users and issues and checks bearer tokens.
type AuthService interface {
	// RegisterUser creates a user without a token. A taken login yields
	// store.ErrLoginAlreadyExists.
	RegisterUser(ctx context.Context, login, password string) (models.User, error)

	// Login issues a fresh token valid for the configured TTL, replacing any
	// previous one. Wrong credentials yield ErrInvalidCredentials.
	Login(ctx context.Context, login, password string) (models.Session, error)

	// Authenticate returns the user holding a still valid token, or
	// ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (models.User, error)

	// FindRecipient looks a user up by login, or ErrRecipientNotFound.
	FindRecipient(ctx context.Context, login string) (models.User, error)
}

// ItemService manages the item lifecycle.
type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, name string) (models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	ListItems(ctx context.Context, ownerID int64) ([]models.Item, error)

	// DeleteItem removes an item owned by ownerID together with its pending
	// sendings. It reports false when there was nothing to delete.
	DeleteItem(ctx context.Context, ownerID, id int64) (bool, error)

	// TransferOwner moves the item only if expectedOwner still holds it.
	TransferOwner(ctx context.Context, id, expectedOwner, newOwner int64) (bool, error)
}

// TransferService runs the send and claim handshake.
type TransferService interface {
	// InitiateSending returns the item token of the pending sending for the
	// triple, creating it if needed. Ownership is not checked here.
	InitiateSending(ctx context.Context, fromUserID, toUserID, itemID int64) (string, error)

	// CompleteSending redeems itemToken atomically.
	CompleteSending(ctx context.Context, itemToken string) (models.SendingStatus, error)

	// SendItem validates an offer made by sender and initiates it.
	SendItem(ctx context.Context, sender models.User, itemID int64, recipientLogin string) (models.SendingOffer, error)

	// ClaimSending completes the sending on behalf of recipient. Sendings
	// addressed to someone else look absent.
	ClaimSending(ctx context.Context, recipient models.User, itemToken string) (models.SendingStatus, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
