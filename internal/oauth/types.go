package oauth

import (
	"errors"
	"fmt"
)

// UserInfo is the normalized identity every provider adapter produces
type UserInfo struct {
	Provider string
	ID       string
	Email    string
	Name     string
	Picture  string
}

// Token carries the provider token material from the code exchange
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until expiry; 0 when the provider omitted it
}

var (
	// returned by dispatch for provider names outside the supported set
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")

	// returned when a provider cannot produce any usable email address
	ErrNoEmail = errors.New("no email address available from provider")
)

// UpstreamError reports a non-success response from a provider endpoint
type UpstreamError struct {
	Provider string
	Endpoint string
	Status   int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", e.Provider, e.Endpoint, e.Status)
}
