package admin

import (
	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
)

// registers the administrative user-management routes
func RegisterRoutes(rg *gin.RouterGroup, store users.Store) {
	group := rg.Group("/admin")
	group.Use(auth.AuthMiddleware(), auth.RequireRole(store, users.RoleAdmin))

	group.GET("/users", ListUsers(store))
	group.PATCH("/users/:id/role", UpdateRole(store))
	group.DELETE("/users/:id", DeleteUser(store))
}
