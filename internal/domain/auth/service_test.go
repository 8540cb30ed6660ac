package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/apperror"
	"finledger/internal/core/id"
)

type memUserRepo struct {
	byEmail map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperror.NewDuplicate("User", "email")
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("User")
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, user := range r.byEmail {
		if user.ID == userID {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("User")
}

func newTestService() *Service {
	return NewService(newMemUserRepo(), NewJWTService(DefaultJWTConfig("test-secret")))
}

func TestService_Register(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Register(ctx, "  Ada@Example.COM ", "Ada", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.NotEqual(t, "correct-horse", session.User.PasswordHash)

	// Token round-trips through the validator.
	userCtx, err := svc.jwt.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID.String(), userCtx.UserID)
	assert.Equal(t, "ada@example.com", userCtx.Email)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "X", "longenough")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid email")

	_, err = svc.Register(ctx, "x@example.com", "X", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "A", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "B", "password456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestService_Login(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "Ada", "correct-horse")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "Ada@Example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)

	// Wrong email and wrong password report identically.
	_, errEmail := svc.Login(ctx, "nobody@example.com", "correct-horse")
	_, errPassword := svc.Login(ctx, "ada@example.com", "wrong")
	require.Error(t, errEmail)
	require.Error(t, errPassword)
	assert.Equal(t, errEmail.Error(), errPassword.Error())
}

func TestService_Me(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Register(ctx, "ada@example.com", "Ada", "correct-horse")
	require.NoError(t, err)

	user, err := svc.Me(ctx, session.User.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)

	_, err = svc.Me(ctx, id.New().String())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Me(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user identity")
}

func TestJWTService_RejectsForgedToken(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("u1", "a@example.com", "A")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}
