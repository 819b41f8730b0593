// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Sending is a pending, single-use offer to transfer one item from one user
// to another. It is identified by an unguessable ItemToken which the
// recipient redeems to complete the transfer.
//
// At most one Sending exists per (FromUserID, ToUserID, ItemID) triple.
// The row is removed when the transfer completes; no completed or failed
// sendings are kept.
type Sending struct {
	ID         int64
	ItemID     int64
	FromUserID int64
	ToUserID   int64
	ItemToken  string
}

// TableName returns the name of the database table
// associated with the Sending model.
func (s Sending) TableName() string {
	return "sendings"
}

// SendingOffer is what the sender receives after initiating a transfer:
// the claim token of the sending and the recipient's active bearer token
// used to assemble the confirmation URL.
type SendingOffer struct {
	ItemToken      string
	RecipientToken string
}

// SendingStatus is the outcome of an attempt to complete a sending.
//
// The set of values is closed; callers are expected to switch over all of
// them explicitly.
type SendingStatus int

const (
	// SendingStatusNoSending means no sending matched the claim token.
	// Nothing was changed.
	SendingStatusNoSending SendingStatus = iota

	// SendingStatusCompleted means the item changed owner and the sending
	// was consumed.
	SendingStatusCompleted

	// SendingStatusFailed means the sending existed but the ownership
	// transfer could not be applied (the item was deleted or changed hands).
	// The whole attempt was rolled back.
	SendingStatusFailed
)

// String returns a stable, human-readable name of the status.
func (s SendingStatus) String() string {
	switch s {
	case SendingStatusNoSending:
		return "no_sending"
	case SendingStatusCompleted:
		return "completed"
	case SendingStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
