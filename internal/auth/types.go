package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the authenticated principal carried by session tokens
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
