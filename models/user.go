package models

import "time"

// User represents an account entity used for authentication and item ownership.
// Credential and session fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user, assigned by the store.
	ID int64 `json:"-"`

	// Login is the unique, immutable user login identifier.
	Login string `json:"login"`

	// Password is the opaque credential value compared by equality.
	// The service layer stores its keyed digest, never the raw input.
	Password string `json:"-"`

	// Token is the currently issued bearer token, empty when the user has
	// never logged in.
	Token string `json:"-"`

	// TokenExpiredAt is the moment the bearer token stops being valid.
	// Nil exactly when Token is empty.
	TokenExpiredAt *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasValidToken reports whether the user holds a bearer token that is still
// valid at the given moment.
func (u User) HasValidToken(now time.Time) bool {
	return u.Token != "" && u.TokenExpiredAt != nil && now.Before(*u.TokenExpiredAt)
}
