package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
)

// Session is an issued access token with its owner.
type Session struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Service provides registration and login.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates the auth service.
func NewService(repo Repository, jwt *JWTService) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register creates an account and returns a fresh session.
func (s *Service) Register(ctx context.Context, email, name, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewValidation("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &User{
		ID:           id.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and returns a fresh session. Wrong email and
// wrong password are reported identically.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	return s.issue(user)
}

// Me returns the account behind an authenticated user ID.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	uid, err := id.Parse(userID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid user identity")
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *Service) issue(user *User) (*Session, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
