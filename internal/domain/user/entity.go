package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        int64      // ID is the unique identifier for the user
	Name      string     // Name is the full name of the user
	Email     string     // Email is the unique email address of the user
	Password  string     // Password is the stored credential, owned by the caller
	Image     string     // Image is an optional avatar filename or URL
	CreatedAt time.Time  // CreatedAt is when the user was first stored
	UpdatedAt time.Time  // UpdatedAt is when the user was last modified
	DeletedAt *time.Time // DeletedAt marks a soft-deleted user; nil for live users
}
