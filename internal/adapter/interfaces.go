// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the REST client of the item custody server.
//
// [ServerAdapter] hides the HTTP details from callers such as the
// command-line client and the terminal UI. Non-2xx responses are mapped by
// mapHTTPError onto the sentinel errors of this package so callers can use
// [errors.Is]
// (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-item-custody/models"
)

// ServerAdapter talks to the item custody server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Banner fetches the service banner of GET /.
	Banner(ctx context.Context) (models.BannerResponse, error)

	// Register creates an account.
	Register(ctx context.Context, login, password string) error

	// Login exchanges credentials for a bearer token and stores it.
	Login(ctx context.Context, login, password string) (string, error)

	// CreateItem creates an item owned by the caller.
	CreateItem(ctx context.Context, name string) (models.Item, error)

	// ListItems returns the caller's items ordered by id.
	ListItems(ctx context.Context) ([]models.Item, error)

	// DeleteItem removes one of the caller's items. It reports false when
	// the server had nothing of the caller's to remove.
	DeleteItem(ctx context.Context, id int64) (bool, error)

	// SendItem offers an item to another user and returns the confirmation
	// URL to hand over to them.
	SendItem(ctx context.Context, id int64, recipient string) (string, error)

	// Claim completes the sending addressed by a confirmation URL. A
	// recipient token placeholder in the URL is replaced with the stored
	// token.
	Claim(ctx context.Context, confirmationURL string) error
}
