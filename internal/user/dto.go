package user

import "strings"

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username" example:"bob"`
	Email    string `json:"email" example:"bob@example.com"`
}

// Validate trims the request and reports the first missing or malformed field
func (req *CreateUserRequest) Validate() error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case len(req.Username) < 2 || len(req.Username) > 50:
		return ErrInvalidUsername
	case !strings.Contains(req.Email, "@"):
		return ErrInvalidEmail
	}
	return nil
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
