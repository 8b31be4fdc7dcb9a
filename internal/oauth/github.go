package oauth

import (
	"context"
	"net/http"
	"strconv"

	"codeberg.org/userhub/server/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHub may omit the email on the profile; a second call to the emails
// endpoint resolves it
type githubProvider struct {
	config    *oauth2.Config
	client    *http.Client
	userURL   string
	emailsURL string
}

func newGitHub(creds config.OAuthCredentials, redirectURL string) *githubProvider {
	return &githubProvider{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
		client:    userInfoClient,
		userURL:   githubUserURL,
		emailsURL: githubEmailsURL,
	}
}

func (p *githubProvider) Name() string        { return "github" }
func (p *githubProvider) DisplayName() string { return "GitHub" }

func (p *githubProvider) Config() *oauth2.Config { return p.config }

func (p *githubProvider) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var profile struct {
		ID        int64   `json:"id"`
		Login     string  `json:"login"`
		Name      string  `json:"name"`
		Email     *string `json:"email"`
		AvatarURL string  `json:"avatar_url"`
	}

	if err := fetchJSON(ctx, p.client, p.Name(), p.userURL, accessToken, &profile); err != nil {
		return nil, err
	}

	email := ""
	if profile.Email != nil {
		email = *profile.Email
	}

	if email == "" {
		resolved, err := p.fetchPrimaryEmail(ctx, accessToken)
		if err != nil {
			return nil, err
		}

		email = resolved
	}

	// display name is optional on GitHub; the login handle always exists
	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	return &UserInfo{
		Provider: p.Name(),
		ID:       strconv.FormatInt(profile.ID, 10),
		Email:    email,
		Name:     name,
		Picture:  profile.AvatarURL,
	}, nil
}

// picks the primary verified address, falling back to the first entry
func (p *githubProvider) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}

	if err := fetchJSON(ctx, p.client, p.Name(), p.emailsURL, accessToken, &emails); err != nil {
		return "", err
	}

	for _, entry := range emails {
		if entry.Primary && entry.Verified {
			return entry.Email, nil
		}
	}

	if len(emails) > 0 && emails[0].Email != "" {
		return emails[0].Email, nil
	}

	return "", ErrNoEmail
}
