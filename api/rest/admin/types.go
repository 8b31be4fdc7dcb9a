package admin

import "codeberg.org/userhub/server/userhub/users"

// UpdateRoleRequest is the body for the role change endpoint
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *users.User `json:"user"`
}

// UsersResponse wraps the administrative user listing
type UsersResponse struct {
	Users []users.User `json:"users"`
}

// DeleteResponse confirms an administrative deletion
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
