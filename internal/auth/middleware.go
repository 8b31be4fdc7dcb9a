package auth

import (
	"strings"

	"codeberg.org/userhub/server/internal/errors"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
)

// context keys set after authentication
const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
	ctxUser      = "current_user"
)

// validates the bearer token and attaches the principal to the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := ValidateJWT(parts[1])
		if err != nil {
			errors.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)

		c.Next()
	}
}

// extracts the principal's user id after AuthMiddleware
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := value.(int64)

	return id, ok
}

// CurrentUser loads the requester's user record, caching it on the context.
// The store is the source of truth; the token's embedded role is never
// trusted for authorization decisions since roles change after issuance.
func CurrentUser(c *gin.Context, store users.Store) (*users.User, error) {
	if cached, exists := c.Get(ctxUser); exists {
		if user, ok := cached.(*users.User); ok {
			return user, nil
		}
	}

	id, ok := CurrentUserID(c)
	if !ok {
		return nil, users.ErrNotFound
	}

	user, err := store.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	c.Set(ctxUser, user)

	return user, nil
}

// RequireRole admits only requesters whose current stored role is in the
// allowed set; principals whose record vanished are rejected outright
func RequireRole(store users.Store, roles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c, store)
		if err != nil {
			errors.Unauthorized(c, "User no longer exists")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		errors.Forbidden(c, "Insufficient role")
	}
}
