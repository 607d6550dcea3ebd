package services

import (
	"crypto/subtle"
	"strings"
	"time"

	"tasktrail/tasktrail/utils/token"
)

// SessionClaims re-exports the token package's claims.
type SessionClaims = token.SessionClaims

type AuthServiceInterface interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// AuthService checks the shared password and issues session tokens.
// There is one password for the whole tool; comparison is constant-time
// string equality after trimming, nothing stronger.
type AuthService struct {
	appPassword   string
	sessionSecret []byte
	expiration    time.Duration
}

var AuthServiceInstance AuthServiceInterface

func NewAuthService(appPassword, sessionSecret string, expirationHours int) *AuthService {
	return &AuthService{
		appPassword:   appPassword,
		sessionSecret: []byte(sessionSecret),
		expiration:    time.Duration(expirationHours) * time.Hour,
	}
}

func (s *AuthService) Login(password string) (string, error) {
	password = strings.TrimSpace(password)
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.appPassword)) != 1 {
		return "", ErrInvalidCredentials
	}
	return token.GenerateToken(s.sessionSecret, s.expiration)
}

func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims, err := token.ValidateToken(tokenString, s.sessionSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
