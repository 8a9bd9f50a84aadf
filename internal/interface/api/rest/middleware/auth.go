package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eduxchange/internal/application/ports"
	"eduxchange/internal/infrastructure/jwt"
)

const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxClaims = "claims"
)

var (
	errMissingToken = errors.New("missing Authorization header")
	errTokenFormat  = errors.New("invalid token format")
)

// AuthMiddleware requires a valid, unrevoked token from the Authorization
// header or, failing that, the session cookie.
func AuthMiddleware(verifier ports.TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := tokenFromRequest(c, cookieName)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": err.Error()},
			)
			return
		}

		claims, err := verifier.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		setClaims(c, claims)

		c.Next()
	}
}

// OptionalAuth resolves the caller when a usable token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(verifier ports.TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, err := tokenFromRequest(c, cookieName); err == nil {
			if claims, err := verifier.Authenticate(c.Request.Context(), tokenStr); err == nil {
				setClaims(c, claims)
			}
		}

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			return "", errTokenFormat
		}
		return tokenStr, nil
	}

	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, nil
		}
	}

	return "", errMissingToken
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxClaims, claims)
}

// UserID returns the authenticated caller, or uuid.Nil for anonymous requests.
func UserID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(CtxUserID))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func Claims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
