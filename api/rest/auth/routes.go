package auth

import (
	"net/http"

	"codeberg.org/userhub/server/internal/auth"
	"codeberg.org/userhub/server/internal/config"
	"codeberg.org/userhub/server/internal/oauth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// registers all authentication routes
func RegisterRoutes(
	router *gin.Engine,
	registry *oauth.Registry,
	store users.Store,
	cfg *config.Config,
	middleware ...gin.HandlerFunc,
) {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	// short-lived cookie, only needs to survive the OAuth redirect hop
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	authGroup := router.Group("/auth", middleware...)
	{
		authGroup.GET("/providers", ProvidersHandler(registry, cfg))
		authGroup.GET("/me", auth.AuthMiddleware(), MeHandler(store))
		authGroup.POST("/logout", LogoutHandler())

		// token-issuance shortcut for local development only
		if !cfg.IsProduction() {
			authGroup.POST("/dev/token", DevTokenHandler(store))
		}

		authGroup.GET("/:provider", BeginAuthHandler(registry, sessionStore))
		authGroup.GET("/:provider/callback", CallbackHandler(registry, store, sessionStore))
	}
}
