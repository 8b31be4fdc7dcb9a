package auth

import (
	"errors"
	"fmt"
	"time"

	"codeberg.org/userhub/server/userhub/users"
	"github.com/golang-jwt/jwt/v5"
)

// session token lifetime
const tokenLifetime = 7 * 24 * time.Hour

// every verification failure collapses into this one error so the
// authentication boundary stays uniform
var ErrInvalidToken = errors.New("invalid or expired token")

var (
	signingSecret []byte
	production    bool
)

// Init installs the process-wide signing key; called once at startup.
// The secret is never logged.
func Init(secret, environment string) error {
	if secret == "" {
		return fmt.Errorf("jwt secret must not be empty")
	}

	signingSecret = []byte(secret)
	production = environment == "production"

	return nil
}

// creates a signed session token for the user
func GenerateJWT(userID int64, email string, role users.Role) (string, error) {
	if len(signingSecret) == 0 {
		return "", fmt.Errorf("token service not initialized")
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingSecret)
}

// validates a session token and returns the claims
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(signingSecret) == 0 {
		return nil, fmt.Errorf("token service not initialized")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return signingSecret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// tokens issued before roles existed carry no role claim
	if claims.Role == "" {
		claims.Role = string(users.RoleUser)
	}

	return claims, nil
}
