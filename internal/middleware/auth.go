package middleware

import (
	"errors"
	"strings"

	"github.com/DhavalSuthar-24/superheroes/pkg/responses"
	"github.com/DhavalSuthar-24/superheroes/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	AuthSubjectKey = "auth_subject"
)

// AuthMiddleware requires a bearer token signed with jwtSecret that carries
// the write scope.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		if claims.Scope != token.WriteScope {
			responses.Unauthorized(c, "Token does not grant write access")
			return
		}

		c.Set(AuthSubjectKey, claims.Subject)
		c.Next()
	}
}

// GetSubjectFromContext returns the token subject stored by AuthMiddleware.
func GetSubjectFromContext(c *gin.Context) (string, error) {
	subject, exists := c.Get(AuthSubjectKey)
	if !exists {
		return "", errors.New("subject not found in context")
	}
	s, ok := subject.(string)
	if !ok {
		return "", errors.New("subject in context is not a string")
	}
	return s, nil
}
