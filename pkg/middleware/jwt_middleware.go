package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"poisurvey/pkg/utils"
)

const SessionCookieName = "survey_session"

// SessionMiddleware resolves the survey session token from the Authorization
// header or the session cookie and stores the session id under "session_id".
func SessionMiddleware(issuer *utils.SessionTokenIssuer) gin.HandlerFunc {

	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie(SessionCookieName); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Survey session token missing")
			c.Abort()
			return
		}

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired survey session")
			c.Abort()
			return
		}

		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// AdminKeyMiddleware guards the export listing endpoints. An empty key
// disables them.
func AdminKeyMiddleware(adminKey string) gin.HandlerFunc {

	return func(c *gin.Context) {
		given := c.GetHeader("X-Admin-Key")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(adminKey)) != 1 {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: admin key required")
			c.Abort()
			return
		}

		c.Next()
	}
}
