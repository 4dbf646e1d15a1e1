package auth

import (
	"net/http"
	"net/url"
	"strings"
	"yatube/backend/internal/config"
	"yatube/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid Bearer token and sets the userID in the
// context. A request without a valid identity is redirected to the login
// entry point with the original path in the "next" query parameter.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c.GetHeader("Authorization"))
		if !ok {
			loginURL := config.AppConfig.LoginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, loginURL)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// bearerUserID extracts and validates the identity in an Authorization header.
func bearerUserID(authHeader string) (uint, bool) {
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	userID, err := jwt.ParseUserID(parts[1])
	if err != nil {
		return 0, false
	}

	return userID, true
}
