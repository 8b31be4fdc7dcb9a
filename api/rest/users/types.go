package users

import "codeberg.org/userhub/server/userhub/users"

// CreateUserRequest is the body for POST /api/users. The requested role is
// only honored for admin requesters.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// UpdateUserRequest carries a partial profile edit
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *users.User `json:"user"`
}

// UsersResponse wraps a user listing
type UsersResponse struct {
	Users []users.User `json:"users"`
}
