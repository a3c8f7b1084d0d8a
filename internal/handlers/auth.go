// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/middleware"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.SignIn(c.Request.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	case errors.Is(err, services.ErrAdminEmailMissing):
		utils.ConfigErrorResponse(c, i18n.KeyConfigAdminEmailMissing)
		return
	default:
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyAuthSignInFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":       authResponse.User,
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
		"state":      authResponse.State,
		"view":       authResponse.View,
	})
}

// GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := middleware.BearerToken(c)
	session, err := h.authService.Session(token)
	if err != nil {
		respondError(c, err, "")
		return
	}
	utils.SuccessResponse(c, session)
}

// GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, i18n.KeyAuthRequired)
		return
	}
	utils.SuccessResponse(c, user)
}
