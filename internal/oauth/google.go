package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"codeberg.org/userhub/server/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google resolves the full profile, email included, in a single userinfo call
type googleProvider struct {
	config      *oauth2.Config
	client      *http.Client
	userInfoURL string
}

func newGoogle(creds config.OAuthCredentials, redirectURL string) *googleProvider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client:      userInfoClient,
		userInfoURL: googleUserInfoURL,
	}
}

func (p *googleProvider) Name() string        { return "google" }
func (p *googleProvider) DisplayName() string { return "Google" }

func (p *googleProvider) Config() *oauth2.Config { return p.config }

func (p *googleProvider) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var profile struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := fetchJSON(ctx, p.client, p.Name(), p.userInfoURL, accessToken, &profile); err != nil {
		return nil, err
	}

	return &UserInfo{
		Provider: p.Name(),
		ID:       profile.ID,
		Email:    profile.Email,
		Name:     profile.Name,
		Picture:  profile.Picture,
	}, nil
}

// performs an authenticated GET against a provider endpoint and decodes the body
func fetchJSON(ctx context.Context, client *http.Client, provider, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", provider, err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s profile: %w", provider, err)
	}

	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Provider: provider, Endpoint: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", provider, err)
	}

	return nil
}
