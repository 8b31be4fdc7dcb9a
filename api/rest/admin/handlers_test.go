package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(t *testing.T, store users.Store) *gin.Engine {
	t.Helper()
	require.NoError(t, auth.Init("test-secret", "test"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), store)

	return router
}

func seedUser(t *testing.T, store users.Store, email string, role users.Role) (*users.User, string) {
	t.Helper()

	user, err := store.Create(context.Background(), users.CreateParams{
		Name:  "Seed User",
		Email: email,
		Role:  role,
	})
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	return user, token
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	store := users.NewMemoryStore()
	router := newAdminRouter(t, store)
	_, token := seedUser(t, store, "pleb@x.com", users.RoleUser)

	w := doJSON(router, http.MethodGet, "/api/admin/users", token, "")

	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(403), body["statusCode"])
}

func TestAdminRoutes_RejectUnauthenticated(t *testing.T) {
	router := newAdminRouter(t, users.NewMemoryStore())

	w := doJSON(router, http.MethodGet, "/api/admin/users", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_RoleReadFromStoreNotToken(t *testing.T) {
	store := users.NewMemoryStore()
	admin, token := seedUser(t, store, "exadmin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	// demote after the token was issued; the stale claim must not grant access
	role := users.RoleUser
	_, err := store.UpdateFields(context.Background(), admin.ID, users.Updates{Role: &role})
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/admin/users", token, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUsers_ReturnsAll(t *testing.T) {
	store := users.NewMemoryStore()
	seedUser(t, store, "a@x.com", users.RoleUser)
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodGet, "/api/admin/users", token, "")

	require.Equal(t, http.StatusOK, w.Code)

	var body UsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Users, 2)
}

func TestUpdateRole_PromotesUser(t *testing.T) {
	store := users.NewMemoryStore()
	target, _ := seedUser(t, store, "target@x.com", users.RoleUser)
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodPatch, "/api/admin/users/1/role", token, `{"role":"admin"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, target.ID, body.User.ID)
	assert.Equal(t, users.RoleAdmin, body.User.Role)
}

func TestUpdateRole_InvalidValue(t *testing.T) {
	store := users.NewMemoryStore()
	seedUser(t, store, "target@x.com", users.RoleUser)
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodPatch, "/api/admin/users/1/role", token, `{"role":"root"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Role must be one of")
}

func TestUpdateRole_MissingUser(t *testing.T) {
	store := users.NewMemoryStore()
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodPatch, "/api/admin/users/999/role", token, `{"role":"user"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_AdminCannotDeleteSelf(t *testing.T) {
	store := users.NewMemoryStore()
	admin, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodDelete, "/api/admin/users/1", token, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "your own account")

	_, err := store.FindByID(context.Background(), admin.ID)
	assert.NoError(t, err, "admin account must survive")
}

func TestDeleteUser_RemovesOtherUser(t *testing.T) {
	store := users.NewMemoryStore()
	target, _ := seedUser(t, store, "target@x.com", users.RoleUser)
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodDelete, "/api/admin/users/1", token, "")

	require.Equal(t, http.StatusOK, w.Code)

	var body DeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "User deleted", body.Message)

	_, err := store.FindByID(context.Background(), target.ID)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestDeleteUser_MissingUser(t *testing.T) {
	store := users.NewMemoryStore()
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodDelete, "/api/admin/users/999", token, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_InvalidID(t *testing.T) {
	store := users.NewMemoryStore()
	_, token := seedUser(t, store, "admin@x.com", users.RoleAdmin)
	router := newAdminRouter(t, store)

	w := doJSON(router, http.MethodDelete, "/api/admin/users/banana", token, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
