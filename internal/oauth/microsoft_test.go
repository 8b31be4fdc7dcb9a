package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrosoft_PrefersMailField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "ab-12", "displayName": "M User",
			"mail": "work@example.com", "userPrincipalName": "m@example.onmicrosoft.com"}`))
	}))
	defer server.Close()

	p := &microsoftProvider{client: http.DefaultClient, userInfoURL: server.URL}

	info, err := p.FetchUserInfo(context.Background(), "access-token")

	require.NoError(t, err)
	assert.Equal(t, "microsoft", info.Provider)
	assert.Equal(t, "ab-12", info.ID)
	assert.Equal(t, "work@example.com", info.Email)
	assert.Equal(t, "M User", info.Name)
}

func TestMicrosoft_FallsBackToUserPrincipalName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "ab-12", "displayName": "M User",
			"mail": null, "userPrincipalName": "m@example.onmicrosoft.com"}`))
	}))
	defer server.Close()

	p := &microsoftProvider{client: http.DefaultClient, userInfoURL: server.URL}

	info, err := p.FetchUserInfo(context.Background(), "access-token")

	require.NoError(t, err)
	assert.Equal(t, "m@example.onmicrosoft.com", info.Email)
}

func TestMicrosoft_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := &microsoftProvider{client: http.DefaultClient, userInfoURL: server.URL}

	_, err := p.FetchUserInfo(context.Background(), "access-token")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}
