package users

import (
	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
)

// registers the user CRUD routes; all require authentication
func RegisterRoutes(rg *gin.RouterGroup, store users.Store) {
	group := rg.Group("/users")
	group.Use(auth.AuthMiddleware())

	group.POST("", CreateUser(store))
	group.GET("", ListUsers(store))
	group.GET("/:id", GetUser(store))
	group.PUT("/:id", UpdateUser(store))
	group.DELETE("/:id", DeleteUser(store))
}
