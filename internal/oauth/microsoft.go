package oauth

import (
	"context"
	"net/http"

	"codeberg.org/userhub/server/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const microsoftUserInfoURL = "https://graph.microsoft.com/v1.0/me"

// Microsoft Graph exposes the address on `mail` for org accounts and only
// on `userPrincipalName` for personal ones
type microsoftProvider struct {
	config      *oauth2.Config
	client      *http.Client
	userInfoURL string
}

func newMicrosoft(creds config.OAuthCredentials, redirectURL string) *microsoftProvider {
	return &microsoftProvider{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.AzureAD("common"),
			Scopes:       []string{"openid", "email", "profile", "User.Read"},
		},
		client:      userInfoClient,
		userInfoURL: microsoftUserInfoURL,
	}
}

func (p *microsoftProvider) Name() string        { return "microsoft" }
func (p *microsoftProvider) DisplayName() string { return "Microsoft" }

func (p *microsoftProvider) Config() *oauth2.Config { return p.config }

func (p *microsoftProvider) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var profile struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}

	if err := fetchJSON(ctx, p.client, p.Name(), p.userInfoURL, accessToken, &profile); err != nil {
		return nil, err
	}

	email := profile.Mail
	if email == "" {
		email = profile.UserPrincipalName
	}

	return &UserInfo{
		Provider: p.Name(),
		ID:       profile.ID,
		Email:    email,
		Name:     profile.DisplayName,
	}, nil
}
