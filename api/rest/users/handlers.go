package users

import (
	"net/http"
	"strconv"

	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/internal/errors"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary Create a user
// @Description Creates a user. Only admin requesters may grant the admin role; other requests get role user.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "New user"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users [post]
// @Security BearerAuth
func CreateUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if req.Role != "" && !users.Role(req.Role).Valid() {
			errors.BadRequest(c, "Role must be one of: user, admin")
			return
		}

		requester, err := auth.CurrentUser(c, store)
		if err != nil {
			errors.Unauthorized(c, "User no longer exists")
			return
		}

		// privilege escalation guard: non-admins get role user no matter
		// what the payload asked for
		role := users.RoleUser
		if req.Role == string(users.RoleAdmin) && requester.Role == users.RoleAdmin {
			role = users.RoleAdmin
		}

		user, err := store.Create(c.Request.Context(), users.CreateParams{
			Name:  req.Name,
			Email: req.Email,
			Role:  role,
		})

		if err != nil {
			// unique-constraint violations included; no database detail leaks
			errors.InternalError(c, "Failed to create user", err)
			return
		}

		c.JSON(http.StatusCreated, UserResponse{User: user})
	}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users [get]
// @Security BearerAuth
func ListUsers(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "Failed to list users", err)
			return
		}

		c.JSON(http.StatusOK, UsersResponse{Users: list})
	}
}

// GetUser godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [get]
// @Security BearerAuth
func GetUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			errors.NotFound(c, "User")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// UpdateUser godoc
// @Summary Update a user
// @Description Self-or-admin: a user may edit their own profile, admins may edit anyone
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Profile edit"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [put]
// @Security BearerAuth
func UpdateUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if !requireSelfOrAdmin(c, store, id) {
			return
		}

		var req UpdateUserRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		updates := users.Updates{Name: req.Name, Email: req.Email}
		if updates.IsEmpty() {
			errors.BadRequest(c, "No fields to update")
			return
		}

		affected, err := store.UpdateFields(c.Request.Context(), id, updates)
		if err != nil {
			errors.InternalError(c, "Failed to update user", err)
			return
		}

		// permission passed, so a miss here means the target is gone
		if affected == 0 {
			errors.NotFound(c, "User")
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			errors.InternalError(c, "Failed to load user", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Self-or-admin: a user may delete their own account, admins may delete anyone
// @Tags users
// @Param id path int true "User ID"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [delete]
// @Security BearerAuth
func DeleteUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if !requireSelfOrAdmin(c, store, id) {
			return
		}

		affected, err := store.Delete(c.Request.Context(), id)
		if err != nil {
			errors.InternalError(c, "Failed to delete user", err)
			return
		}

		if affected == 0 {
			errors.NotFound(c, "User")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// enforces the self-or-admin rule for mutations on the target user id.
// The permission check runs before any existence check, so a non-admin
// probing foreign ids always sees 403, never 404.
func requireSelfOrAdmin(c *gin.Context, store users.Store, targetID int64) bool {
	requester, err := auth.CurrentUser(c, store)
	if err != nil {
		errors.Unauthorized(c, "User no longer exists")
		return false
	}

	if requester.ID != targetID && requester.Role != users.RoleAdmin {
		errors.Forbidden(c, "You can only modify your own account")
		return false
	}

	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errors.BadRequest(c, "Invalid user id")
		return 0, false
	}

	return id, true
}
