package oauth

import (
	"context"
	"net/http"
	"sort"
	"time"

	"codeberg.org/userhub/server/internal/config"
	"golang.org/x/oauth2"
)

// Provider adapts one OAuth service to the normalized identity model.
// Implementations perform a pure network read and transform; no retries,
// a failed upstream call surfaces immediately to the caller.
type Provider interface {
	// stable name used in URLs and stored on user records
	Name() string

	// human-readable name for the provider listing
	DisplayName() string

	// OAuth2 client driving auth-URL construction and code exchange
	Config() *oauth2.Config

	// fetches and normalizes the provider's profile for an access token
	FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// Registry holds the providers enabled at startup. Built once from
// configuration and never mutated afterwards.
type Registry struct {
	providers map[string]Provider
}

// builds the registry from configured credentials; providers without
// credentials are simply absent
func NewRegistry(cfg *config.Config) *Registry {
	providers := make(map[string]Provider)

	if creds, ok := cfg.Providers["google"]; ok {
		providers["google"] = newGoogle(creds, callbackURL(cfg, "google"))
	}

	if creds, ok := cfg.Providers["github"]; ok {
		providers["github"] = newGitHub(creds, callbackURL(cfg, "github"))
	}

	if creds, ok := cfg.Providers["microsoft"]; ok {
		providers["microsoft"] = newMicrosoft(creds, callbackURL(cfg, "microsoft"))
	}

	return &Registry{providers: providers}
}

func callbackURL(cfg *config.Config, provider string) string {
	return cfg.BaseURL + "/auth/" + provider + "/callback"
}

// returns the provider when it is configured
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// returns the enabled provider names in stable order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))

	for name := range r.providers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// routes a userinfo fetch to the matching adapter
func (r *Registry) FetchUserInfo(ctx context.Context, provider, accessToken string) (*UserInfo, error) {
	p, ok := r.providers[provider]
	if !ok {
		return nil, ErrUnsupportedProvider
	}

	return p.FetchUserInfo(ctx, accessToken)
}

// Exchange trades an authorization code for provider tokens
func Exchange(ctx context.Context, p Provider, code string) (*Token, error) {
	tok, err := p.Config().Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	token := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}

	if !tok.Expiry.IsZero() {
		token.ExpiresIn = int64(time.Until(tok.Expiry).Seconds())
	}

	return token, nil
}

// shared timeout for provider profile calls
var userInfoClient = &http.Client{Timeout: 10 * time.Second}
