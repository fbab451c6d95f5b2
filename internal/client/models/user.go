package models

import "gopkg.in/guregu/null.v4"

// User is an account as listed by the admin users endpoint.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	// CreatedAt is whatever timestamp text the server stores; it may be absent.
	CreatedAt null.String `json:"created_at"`
}
