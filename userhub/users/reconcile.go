package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeberg.org/userhub/server/internal/oauth"
)

// assumed token lifetime when the provider omits expires_in
const defaultTokenLifetime = 3600 * time.Second

// ReconcileOAuth computes the minimal update that brings a stored user in
// line with a fresh OAuth login. Provider and subject follow every login,
// even when that silently switches the linked provider for the email.
// Token values only overwrite stored ones when non-empty, and the expiry
// moves only together with the access token it describes, so an unchanged
// re-login produces an empty update.
func ReconcileOAuth(user *User, info *oauth.UserInfo, token *oauth.Token, now time.Time) Updates {
	var updates Updates

	if strValue(user.OAuthProvider) != info.Provider {
		provider := info.Provider
		updates.OAuthProvider = &provider
	}

	if strValue(user.OAuthID) != info.ID {
		id := info.ID
		updates.OAuthID = &id
	}

	if token.AccessToken != "" && strValue(user.OAuthAccessToken) != token.AccessToken {
		accessToken := token.AccessToken
		updates.OAuthAccessToken = &accessToken

		expiresAt := tokenExpiry(token, now)
		updates.OAuthTokenExpiresAt = &expiresAt
	}

	if token.RefreshToken != "" && strValue(user.OAuthRefreshToken) != token.RefreshToken {
		refreshToken := token.RefreshToken
		updates.OAuthRefreshToken = &refreshToken
	}

	return updates
}

// UpsertOAuth finds-or-creates the user for a normalized identity and
// reconciles provider metadata on repeat logins. Email is the durable
// identity key, independent of which provider authenticated it.
func UpsertOAuth(ctx context.Context, store Store, info *oauth.UserInfo, token *oauth.Token) (*User, error) {
	user, err := store.FindByEmail(ctx, info.Email)

	if errors.Is(err, ErrNotFound) {
		created, createErr := store.Create(ctx, CreateParams{
			Name:  displayName(info),
			Email: info.Email,
			Role:  RoleUser,
			OAuth: &OAuthLink{
				Provider:     info.Provider,
				Subject:      info.ID,
				AccessToken:  token.AccessToken,
				RefreshToken: token.RefreshToken,
				ExpiresAt:    tokenExpiry(token, time.Now()),
			},
		})

		if createErr == nil {
			return created, nil
		}

		if !errors.Is(createErr, ErrDuplicateEmail) {
			return nil, createErr
		}

		// lost a first-login race for this email; fall through to the
		// reconcile path against the row the winner created
		user, err = store.FindByEmail(ctx, info.Email)
	}

	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	updates := ReconcileOAuth(user, info, token, time.Now())
	if updates.IsEmpty() {
		return user, nil
	}

	if _, err := store.UpdateFields(ctx, user.ID, updates); err != nil {
		return nil, fmt.Errorf("reconcile user %d: %w", user.ID, err)
	}

	return store.FindByID(ctx, user.ID)
}

func tokenExpiry(token *oauth.Token, now time.Time) time.Time {
	lifetime := defaultTokenLifetime
	if token.ExpiresIn > 0 {
		lifetime = time.Duration(token.ExpiresIn) * time.Second
	}

	return now.Add(lifetime)
}

func displayName(info *oauth.UserInfo) string {
	if info.Name != "" {
		return info.Name
	}

	// some providers return no display name at all
	if at := strings.Index(info.Email, "@"); at > 0 {
		return info.Email[:at]
	}

	return info.Email
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}
