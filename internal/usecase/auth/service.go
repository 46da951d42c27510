package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
)

// Service authenticates the configured admin credential and issues bearer
// tokens for mutating catalog operations.
type Service struct {
	adminUser string
	adminHash string
	tokens    TokenManager
}

// NewService constructs an auth service around a single admin credential.
// adminHash is a bcrypt hash of the admin password.
func NewService(adminUser, adminHash string, tokens TokenManager) *Service {
	return &Service{
		adminUser: adminUser,
		adminHash: adminHash,
		tokens:    tokens,
	}
}

// Login validates the admin credentials and returns a signed token.
func (s *Service) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	if username != s.adminUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(username)
}

// VerifyToken validates a bearer token and returns its subject.
func (s *Service) VerifyToken(token string) (string, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return "", ErrTokenInvalid
	}
	return subject, nil
}
