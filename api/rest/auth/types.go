package auth

import "time"

// ProviderInfo describes one enabled OAuth provider
type ProviderInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	LoginURL    string `json:"loginUrl"`
}

// ProvidersResponse lists the providers available for login
type ProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
}

// AuthUser is the public user shape returned by login flows
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse returned after a successful OAuth callback
type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// MeUser is the profile shape returned by /auth/me
type MeUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeResponse wraps the authenticated user's profile
type MeResponse struct {
	User MeUser `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DevTokenRequest is the non-production token shortcut body
type DevTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// DevTokenResponse returns the issued token and its user
type DevTokenResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
