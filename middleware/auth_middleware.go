package middleware

import (
	"net/http"

	"tasktrail/tasktrail/services"
	"tasktrail/tasktrail/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards pages behind the shared-password session. A
// missing or invalid session cookie redirects to the login page rather
// than returning an API error, since every consumer is a browser.
func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		if _, err := authService.ValidateToken(tokenString); err != nil {
			// Stale or tampered cookie; clear it on the way out.
			c.SetCookie(token.SessionCookie, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}
