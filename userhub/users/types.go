package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Role is the single access level a user holds
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// reports whether the value is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a persisted account. The OAuth token material is sensitive and
// never serialized outward.
type User struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	OAuthProvider       *string    `json:"-"`
	OAuthID             *string    `json:"-"`
	OAuthAccessToken    *string    `json:"-"`
	OAuthRefreshToken   *string    `json:"-"`
	OAuthTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}
