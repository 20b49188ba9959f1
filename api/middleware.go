package api

import (
	"net/http"
	"strings"

	"agrostore/internal/auth"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

// RequireAuth verifies the Bearer token and stores its claims on the
// request context.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "auth_required",
				"message":  "Debes iniciar sesión para acceder a esta página",
				"redirect": "login",
			})
			return
		}

		claims, err := authService.Verify(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "auth_required",
				"message":  "Debes iniciar sesión para acceder a esta página",
				"redirect": "login",
			})
			return
		}

		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

// RequireAdmin rejects authenticated non-admin users, pointing them back at
// the public catalog.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := ctx.Get(claimsKey)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "auth_required"})
			return
		}
		if claims.(*auth.Claims).Role != auth.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "admin_required",
				"message":  "Esta sección es solo para administradores. ¡Explora nuestros productos!",
				"redirect": auth.RoutePublicHome,
			})
			return
		}
		ctx.Next()
	}
}
