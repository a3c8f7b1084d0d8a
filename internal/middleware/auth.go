// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-admin/internal/gate"
	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		if c.GetHeader("Authorization") == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		token, ok := BearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// AdminRequired runs the access gate for the signed-in user. It must follow
// AuthRequired.
func AdminRequired(adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminEmail == "" {
			utils.ConfigErrorResponse(c, i18n.KeyConfigAdminEmailMissing)
			c.Abort()
			return
		}

		var identity *gate.Identity
		if email, ok := utils.GetEmailFromContext(c); ok {
			userID, _ := utils.GetUserIDFromContext(c)
			identity = &gate.Identity{UserID: userID, Email: email}
		}

		g := gate.New(adminEmail)
		g.Begin()
		switch g.Resolve(identity) {
		case gate.StateAuthorized:
			c.Next()
		case gate.StateUnauthenticated:
			utils.UnauthorizedResponse(c, "")
			c.Abort()
		default:
			utils.ForbiddenResponse(c, "")
			c.Abort()
		}
	}
}
