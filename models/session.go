// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the result of a successful login: a fresh bearer token bound to
// a single user together with its expiry moment.
//
// At most one Session per user is valid at a time; issuing a new one
// overwrites the previous token in the store.
type Session struct {
	// UserID is the owner of the token.
	UserID int64

	// Token is the opaque bearer token handed to the client.
	Token string

	// ExpiresAt is the moment after which Token is rejected.
	ExpiresAt time.Time
}

// String returns the bearer token. It implements the [fmt.Stringer] interface.
func (s Session) String() string {
	return s.Token
}
