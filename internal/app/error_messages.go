// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// item custody server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgServiceBanner is the message of GET /.
	MsgServiceBanner = "Item custody service"

	// MsgUserRegistered is returned after a successful registration.
	MsgUserRegistered = "User has been registered"

	// MsgUserAlreadyExists is returned when the login is taken.
	MsgUserAlreadyExists = "User already exists"

	// MsgUserNotFound is returned when the login/password pair matches no
	// user.
	MsgUserNotFound = "User has not been found"

	// MsgTokenNotAuthorized is returned for a missing, unknown or expired
	// bearer token.
	MsgTokenNotAuthorized = "Token has not been authorized"

	// MsgItemCreated is returned after an item is created.
	MsgItemCreated = "Item has been created"

	// MsgItemRemoved is returned after an item is deleted.
	MsgItemRemoved = "Item has been removed"

	// MsgItemNotFound is returned when the item does not exist or is not
	// owned by the caller.
	MsgItemNotFound = "Item has not been found"

	// MsgRecipientNotFound is returned when the recipient login is unknown.
	MsgRecipientNotFound = "Recipient has not been found"

	// MsgSelfSending is returned when a user sends an item to themselves.
	MsgSelfSending = "Cannot send an item to yourself"

	// MsgSendingNotFound is returned when no sending matches the claim.
	MsgSendingNotFound = "Sending has not been found"

	// MsgItemReceived is returned after a successful claim.
	MsgItemReceived = "Item has been received"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidItemID is returned when the item id in the path is not a
	// number.
	MsgInvalidItemID = "Invalid item id"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"
)
