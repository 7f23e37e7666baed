// Package middleware provides gin middlewares shared by all routes.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

const (
	// AuthHeaderKey is the header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization scheme.
	AuthTypeBearer = "bearer"
	// AuthPayloadKey is the gin context key of the verified token payload.
	AuthPayloadKey = "authorization_payload"
)

var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	ErrForbidden           = errors.New("insufficient permissions")
)

// AddAuthorization sets the authorization header of r with a fresh token.
func AddAuthorization(
	r *http.Request,
	tokenMaker tokenpkg.Maker,
	authorizationType string,
	username string,
	role string,
	duration time.Duration,
) error {
	token, _, err := tokenMaker.CreateToken(username, role, duration)
	if err != nil {
		return err
	}

	authorizationHeader := fmt.Sprintf("%s %s", authorizationType, token)
	r.Header.Set(AuthHeaderKey, authorizationHeader)

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in the context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(AuthHeaderKey)
		if len(authorizationHeader) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		authorizationType := strings.ToLower(fields[0])
		if authorizationType != AuthTypeBearer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		c.Set(AuthPayloadKey, payload)
		c.Next()
	}
}

// RequireRole rejects requests whose token payload lacks the given role.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := c.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
		if !ok || payload.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrForbidden))
			return
		}

		c.Next()
	}
}

// Payload returns the verified token payload stored by AuthMiddleware.
func Payload(c *gin.Context) *tokenpkg.Payload {
	return c.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
}
