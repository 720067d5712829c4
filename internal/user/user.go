package user

import "errors"

var ErrNotFound = errors.New("user not found")

// User is the account row. Authentication itself (registration, login,
// token issuance) lives outside this service; we only verify tokens and
// look accounts up.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
