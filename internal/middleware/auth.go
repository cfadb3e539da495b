package middleware

import (
	"net/http"
	"strings"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
)

// Auth validates the Bearer token on every protected route. The header must
// carry exactly two parts ("Bearer <token>"); every verification failure
// collapses to the same 401.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Response{Error: "No hay token, autorizacion denegada"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Response{Error: "Formato de token invalido"})
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Response{Error: "Token no es valido"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims retrieves the typed claim set stored by Auth.
func GetClaims(c *gin.Context) *token.Claims {
	claims, _ := c.MustGet(ClaimsKey).(*token.Claims)
	return claims
}
