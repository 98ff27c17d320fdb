package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recordhub/internal/app"
	"recordhub/internal/pkg/jwtutil"
	"recordhub/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextClaimsKey   = "claims"
)

// LoginPath is where unauthenticated browser requests are sent.
const LoginPath = "/login"

// TokenVerifier validates a raw token. Errors matching app.ErrUnauthorized
// mean the caller must sign in again.
type TokenVerifier interface {
	ParseToken(ctx context.Context, raw string) (*jwtutil.Claims, error)
}

// AuthJWT requires a valid, unrevoked token from the Authorization header or
// the auth cookie.
func AuthJWT(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := extractToken(c, cookieName)
		if token == "" {
			reject(c, msg)
			return
		}

		claims, err := verifier.ParseToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, app.ErrUnauthorized) {
				reject(c, err.Error())
				return
			}
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "check token failed")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Name)
		c.Set(ContextClaimsKey, claims)
		c.Request = c.Request.WithContext(app.WithActor(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			return "", "invalid authorization scheme"
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix)), ""
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, ""
		}
	}
	return "", "missing authorization header"
}

func reject(c *gin.Context, msg string) {
	if WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, LoginPath)
	} else {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, msg)
	}
	c.Abort()
}

// ClaimsFrom returns the claims stored by AuthJWT.
func ClaimsFrom(c *gin.Context) (*jwtutil.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwtutil.Claims)
	return claims, ok
}
