package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-item-custody/models"
)

// UserRepository persists users and their bearer tokens.
type UserRepository interface {
	// CreateUser inserts a user with no token and returns it with its ID.
	// A taken login yields [ErrLoginAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateToken stores token and its expiry on the user whose login and
	// password digest both match, in a single conditional statement.
	// Returns the user's ID or [ErrNoUserWasFound].
	UpdateToken(ctx context.Context, login, password, token string, expiresAt time.Time) (int64, error)

	// FindUserByToken returns the user currently holding token. Expiry is
	// not checked here.
	FindUserByToken(ctx context.Context, token string) (models.User, error)

	// FindUserByLogin returns the user with the given login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// ItemRepository persists items.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)

	// GetItem returns the item or [ErrItemNotFound].
	GetItem(ctx context.Context, id int64) (models.Item, error)

	// ListItems returns the owner's items ordered by ascending ID.
	ListItems(ctx context.Context, ownerID int64) ([]models.Item, error)

	// DeleteItem removes the item if ownerID owns it. It reports whether a
	// row was deleted.
	DeleteItem(ctx context.Context, ownerID, id int64) (bool, error)

	// TransferOwner moves the item from expectedOwner to newOwner. It
	// reports false, without error, when the item is gone or owned by
	// someone else.
	TransferOwner(ctx context.Context, id, expectedOwner, newOwner int64) (bool, error)
}

// SendingRepository persists pending sendings.
type SendingRepository interface {
	// FindItemToken returns the token of the sending for the exact triple,
	// or [ErrSendingNotFound].
	FindItemToken(ctx context.Context, itemID, fromUserID, toUserID int64) (string, error)

	// CreateSending inserts the sending unless one already exists for its
	// triple. It reports whether this call inserted the row.
	CreateSending(ctx context.Context, sending models.Sending) (bool, error)

	// FindSendingByToken returns the sending for itemToken or
	// [ErrSendingNotFound]. Inside a transaction the row stays locked until
	// commit on backends that support row locks.
	FindSendingByToken(ctx context.Context, itemToken string) (models.Sending, error)

	// DeleteSending removes the sending and reports whether it existed.
	DeleteSending(ctx context.Context, id int64) (bool, error)

	// DeleteItemSendings removes every sending referencing the item.
	DeleteItemSendings(ctx context.Context, itemID int64) (int64, error)

	// DeleteStaleSendings removes the item's sendings whose sender is not
	// ownerID.
	DeleteStaleSendings(ctx context.Context, itemID, ownerID int64) (int64, error)
}

// Transactor runs a function atomically. Repository calls made with the
// context passed to fn take part in the same transaction. Returning an
// error from fn rolls everything back; the error is returned unchanged.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
