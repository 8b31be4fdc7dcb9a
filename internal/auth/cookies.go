package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the refresh token cookie set on successful login
const RefreshCookieName = "refresh_token"

const refreshCookieMaxAge = int(tokenLifetime / time.Second)

// sets the refresh token cookie; Secure only in production
func SetRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, refreshCookieMaxAge, "/", "", production, true)
}

// expires the refresh token cookie immediately
func ClearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", production, true)
}
