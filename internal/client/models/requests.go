package models

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ParkRequest struct {
	Plate string `json:"plate"`
}

// RemoveRequest frees a spot. The overrides are sent only when set.
type RemoveRequest struct {
	Spot           int      `json:"spot"`
	HoursOverride  *float64 `json:"hours_override,omitempty"`
	AmountOverride *float64 `json:"amount_override,omitempty"`
}

// CommentsRequest replaces the comments of a spot with the full text.
type CommentsRequest struct {
	Comments string `json:"comments"`
}

type RateRequest struct {
	RatePerHour float64 `json:"rate_per_hour"`
}

type SetupRequest struct {
	Capacity int `json:"capacity"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ResetPasswordRequest is the admin reset of another user's password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// StateResponse wraps the snapshot returned by mutating endpoints.
type StateResponse struct {
	State *State `json:"state"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}
