package admin

import (
	"net/http"
	"strconv"

	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/internal/errors"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
)

// ListUsers godoc
// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/admin/users [get]
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

// UpdateRole godoc
// @Summary Change a user's role (admin)
// @Description The only operation that mutates roles
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/admin/users/{id}/role [patch]
// @Security BearerAuth
func UpdateRole(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var req UpdateRoleRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "Role must be one of: user, admin")
			return
		}

		role := users.Role(req.Role)

		affected, err := store.UpdateFields(c.Request.Context(), id, users.Updates{Role: &role})
		if err != nil {
			errors.InternalError(c, "Failed to update role", err)
			return
		}

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
// @Summary Delete a user (admin)
// @Description Admins may delete any account except their own
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/admin/users/{id} [delete]
// @Security BearerAuth
func DeleteUser(store users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		requester, err := auth.CurrentUser(c, store)
		if err != nil {
			errors.Unauthorized(c, "User no longer exists")
			return
		}

		// admins must not lock themselves out through the bulk surface
		if requester.ID == id {
			errors.BadRequest(c, "You cannot delete your own account")
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

		c.JSON(http.StatusOK, DeleteResponse{
			Success: true,
			Message: "User deleted",
		})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errors.BadRequest(c, "Invalid user id")
		return 0, false
	}

	return id, true
}
