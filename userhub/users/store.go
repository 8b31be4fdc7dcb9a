package users

import (
	"context"
	"errors"
	"time"
)

var (
	// returned when no user matches the lookup
	ErrNotFound = errors.New("user not found")

	// returned by Create when the email is already taken
	ErrDuplicateEmail = errors.New("email already in use")
)

// Store is the persistence boundary for user records
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, params CreateParams) (*User, error)

	// applies only the fields set on updates in a single write and
	// returns the number of affected rows
	UpdateFields(ctx context.Context, id int64, updates Updates) (int64, error)

	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateParams describes a new user record
type CreateParams struct {
	Name  string
	Email string
	Role  Role

	// nil for locally-created accounts
	OAuth *OAuthLink
}

// OAuthLink is the provider metadata attached on first OAuth login
type OAuthLink struct {
	Provider     string
	Subject      string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Updates lists the fields to overwrite; nil pointers leave the stored
// value untouched
type Updates struct {
	Name                *string
	Email               *string
	Role                *Role
	OAuthProvider       *string
	OAuthID             *string
	OAuthAccessToken    *string
	OAuthRefreshToken   *string
	OAuthTokenExpiresAt *time.Time
}

// reports whether no field is set
func (u Updates) IsEmpty() bool {
	return u.Name == nil &&
		u.Email == nil &&
		u.Role == nil &&
		u.OAuthProvider == nil &&
		u.OAuthID == nil &&
		u.OAuthAccessToken == nil &&
		u.OAuthRefreshToken == nil &&
		u.OAuthTokenExpiresAt == nil
}
