package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when required input is empty.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login when no user matches the
	// login and password pair. It does not tell which half was wrong.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrUnauthenticated is returned for unknown, empty and expired tokens
	// alike.
	ErrUnauthenticated = errors.New("token is not authorized")

	// ErrTokenCreationFailed is returned when the random source fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrSelfSending is returned when a user offers an item to themselves.
	ErrSelfSending = errors.New("cannot send an item to yourself")

	// ErrRecipientNotFound is returned when the recipient login is unknown.
	ErrRecipientNotFound = errors.New("recipient was not found")

	// ErrVersionIsNotSpecified is returned by NewAppInfoService for an
	// empty build version.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// errTransferRejected aborts the completion transaction when the owner
// transfer or the sending delete did not apply.
var errTransferRejected = errors.New("transfer rejected")

// errNothingDeleted aborts the delete transaction when the item is missing
// or owned by someone else.
var errNothingDeleted = errors.New("nothing deleted")
