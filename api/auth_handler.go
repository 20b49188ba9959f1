package api

import (
	"errors"
	"net/http"

	"agrostore/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// authHandler implements the login/register endpoints.
type authHandler struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *authHandler {
	return &authHandler{authService: authService, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// handleRegister handles POST /auth/register. New accounts always get the
// user role.
func (h *authHandler) handleRegister(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.authService.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			ctx.JSON(http.StatusConflict, gin.H{"error": auth.Message(err)})
		case errors.Is(err, auth.ErrWeakPassword):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": auth.Message(err)})
		default:
			h.logger.Error("failed to register user", zap.Error(err))
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// handleLogin handles POST /auth/login. The response carries the session
// token and the role-based landing route.
func (h *authHandler) handleLogin(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	session, err := h.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": auth.Message(err)})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, session)
}
