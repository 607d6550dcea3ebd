package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the signed session token.
const SessionCookie = "tasktrail_session"

// Common auth errors
var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// SessionClaims is the signed session: there is no per-user identity,
// just proof that the shared password was presented.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token.
func GenerateToken(secret []byte, expiration time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a session token.
func ValidateToken(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ExtractToken reads the session token from the request cookie.
func ExtractToken(c *gin.Context) (string, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return "", ErrNoSession
	}
	return cookie, nil
}
