package models

// RegisterRequest is the body of POST /registration.
type RegisterRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateItemRequest is the body of POST /items/new.
type CreateItemRequest struct {
	// Name is the name of the new item.
	Name string `json:"name" validate:"required"`

	// Token is the caller's bearer token. It may be omitted when the token
	// is sent in the Authorization header instead.
	Token string `json:"token"`
}

// DeleteItemRequest is the body of DELETE /items/{id}.
// The ID from the URL path takes precedence over the one in the body.
type DeleteItemRequest struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// SendItemRequest is the body of POST /send.
type SendItemRequest struct {
	// ID is the identifier of the item to send.
	ID int64 `json:"id" validate:"required,gt=0"`

	// Token is the sender's bearer token.
	Token string `json:"token"`

	// Recipient is the login of the user who should receive the item.
	Recipient string `json:"recipient" validate:"required"`
}
