package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/astro-backend-go/pkg/response"
)

var (
	ErrMissingToken = errors.New("missing authentication token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const subjectKey = "auth_subject"

// TokenValidator checks HS256 bearer tokens.
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator. An empty issuer skips the issuer check.
func NewTokenValidator(secret, issuer string) (*TokenValidator, error) {
	if secret == "" {
		return nil, errors.New("secret key required for HS256")
	}
	return &TokenValidator{secret: []byte(secret), issuer: issuer}, nil
}

// Validate parses token and returns its registered claims.
func (v *TokenValidator) Validate(token string) (*jwt.RegisteredClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header.
func Auth(v *TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			response.Abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := v.Validate(token)
		if err != nil {
			_ = c.Error(err)
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

// SubjectFrom returns the authenticated token subject, or "".
func SubjectFrom(c *gin.Context) string {
	return c.GetString(subjectKey)
}
