package models

// User is the client-local record of who is logged in. At most one user is
// active per session; it lives under the "user" storage key.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
}
