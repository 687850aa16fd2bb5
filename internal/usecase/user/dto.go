package user

import (
	"strings"
	"time"
)

// CreateUserRequest represents the request payload for creating a new user.
// Password length is validated by Unicode code point, not byte count, so
// multi-byte passwords of sufficient character length pass.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
}

// Normalize trims surrounding whitespace and canonicalizes the email to
// lower case. Called before validation so the stored value is the one that
// was checked.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Image = strings.TrimSpace(r.Image)
}

// UpdateUserRequest represents the request payload for updating an existing
// user. Every field is optional; an empty field is treated as absent and the
// stored value is left unchanged. Present fields obey the create rules.
type UpdateUserRequest struct {
	ID       int64  `json:"-" validate:"required,gt=0"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
}

// Normalize trims surrounding whitespace and canonicalizes the email to
// lower case.
func (r *UpdateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Image = strings.TrimSpace(r.Image)
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// User represents a user DTO for API responses. The password never leaves
// the service.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination *Pagination
}

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}
