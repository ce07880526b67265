package jwtmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName はセッショントークンを運ぶクッキー名です。
const SessionCookieName = "authToken"

// SetSessionCookie writes token as an HttpOnly, SameSite=Strict cookie valid for SessionTTL.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie on the client.
// A token copied before logout stays valid until its own expiry.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
