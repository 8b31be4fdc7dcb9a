package users

import (
	"context"
	"testing"
	"time"

	"codeberg.org/userhub/server/internal/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshLogin() (*oauth.UserInfo, *oauth.Token) {
	info := &oauth.UserInfo{
		Provider: "google",
		ID:       "sub-1",
		Email:    "a@x.com",
		Name:     "Alice",
	}

	token := &oauth.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    7200,
	}

	return info, token
}

func TestUpsertOAuth_CreatesOnFirstLogin(t *testing.T) {
	store := NewMemoryStore()
	info, token := freshLogin()

	user, err := UpsertOAuth(context.Background(), store, info, token)

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, RoleUser, user.Role)
	require.NotNil(t, user.OAuthProvider)
	assert.Equal(t, "google", *user.OAuthProvider)
	require.NotNil(t, user.OAuthAccessToken)
	assert.Equal(t, "access-1", *user.OAuthAccessToken)
	require.NotNil(t, user.OAuthTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(7200*time.Second), *user.OAuthTokenExpiresAt, 5*time.Second)
}

func TestUpsertOAuth_UnchangedReloginPerformsNoWrites(t *testing.T) {
	store := NewMemoryStore()
	info, token := freshLogin()

	first, err := UpsertOAuth(context.Background(), store, info, token)
	require.NoError(t, err)

	writesAfterCreate := store.Writes

	second, err := UpsertOAuth(context.Background(), store, info, token)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, writesAfterCreate, store.Writes, "unchanged re-login must not write")
}

func TestUpsertOAuth_ChangedAccessTokenUpdatesOnlyTokenFields(t *testing.T) {
	store := NewMemoryStore()
	info, token := freshLogin()

	first, err := UpsertOAuth(context.Background(), store, info, token)
	require.NoError(t, err)

	rotated := &oauth.Token{AccessToken: "access-2", RefreshToken: "refresh-1", ExpiresIn: 7200}

	second, err := UpsertOAuth(context.Background(), store, info, rotated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "access-2", *second.OAuthAccessToken)
	assert.Equal(t, "refresh-1", *second.OAuthRefreshToken)
	assert.Equal(t, first.Name, second.Name, "unrelated fields stay untouched")
	assert.Equal(t, first.Role, second.Role)
}

func TestUpsertOAuth_SwitchingProviderIsAllowed(t *testing.T) {
	store := NewMemoryStore()
	info, token := freshLogin()

	_, err := UpsertOAuth(context.Background(), store, info, token)
	require.NoError(t, err)

	viaGitHub := &oauth.UserInfo{Provider: "github", ID: "99", Email: "a@x.com", Name: "alice99"}

	user, err := UpsertOAuth(context.Background(), store, viaGitHub, token)
	require.NoError(t, err)

	assert.Equal(t, "github", *user.OAuthProvider)
	assert.Equal(t, "99", *user.OAuthID)
	assert.Equal(t, "Alice", user.Name, "name from the first login is kept")
}

func TestReconcileOAuth_EmptyTokenValuesNeverOverwrite(t *testing.T) {
	now := time.Now()
	provider := "google"
	subject := "sub-1"
	access := "access-1"
	refresh := "refresh-1"

	user := &User{
		OAuthProvider:     &provider,
		OAuthID:           &subject,
		OAuthAccessToken:  &access,
		OAuthRefreshToken: &refresh,
	}

	info := &oauth.UserInfo{Provider: "google", ID: "sub-1", Email: "a@x.com"}

	// provider omitted refresh data this time
	updates := ReconcileOAuth(user, info, &oauth.Token{AccessToken: "access-1"}, now)

	assert.True(t, updates.IsEmpty())
}

func TestReconcileOAuth_DefaultExpiryWhenProviderOmitsIt(t *testing.T) {
	now := time.Now()
	user := &User{}
	info := &oauth.UserInfo{Provider: "google", ID: "sub-1", Email: "a@x.com"}

	updates := ReconcileOAuth(user, info, &oauth.Token{AccessToken: "access-1"}, now)

	require.NotNil(t, updates.OAuthTokenExpiresAt)
	assert.Equal(t, now.Add(3600*time.Second), *updates.OAuthTokenExpiresAt)
}

// store wrapper that loses the first-login race once
type racingStore struct {
	Store
	raced bool
}

func (s *racingStore) Create(ctx context.Context, params CreateParams) (*User, error) {
	if !s.raced && params.OAuth != nil {
		s.raced = true

		// simulate a concurrent callback winning the insert
		if _, err := s.Store.Create(ctx, params); err != nil {
			return nil, err
		}

		return nil, ErrDuplicateEmail
	}

	return s.Store.Create(ctx, params)
}

func TestUpsertOAuth_FirstLoginRaceFallsBackToReconcile(t *testing.T) {
	store := &racingStore{Store: NewMemoryStore()}
	info, token := freshLogin()

	user, err := UpsertOAuth(context.Background(), store, info, token)

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.True(t, store.raced)
}

func TestDisplayName_FallsBackToEmailLocalPart(t *testing.T) {
	info := &oauth.UserInfo{Provider: "github", ID: "1", Email: "shadow@x.com"}

	assert.Equal(t, "shadow", displayName(info))
}
