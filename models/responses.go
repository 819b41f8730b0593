package models

// MessageResponse is the generic success body carrying a human-readable
// description of the outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateItemResponse is returned by POST /items/new.
type CreateItemResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// SendItemResponse is returned by POST /send. ConfirmationURL has the form
// http://{host}:{port}/get/{item_token}/{recipient_token}.
type SendItemResponse struct {
	ConfirmationURL string `json:"confirmation_url"`
}

// BannerResponse is returned by GET /.
type BannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
