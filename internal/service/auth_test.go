package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.User
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = uint(len(f.byEmail) + 1)
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignupForcesStudentRole(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "ana@example.com",
		Password: "abcdef12",
		Name:     "Ana",
		Role:     domain.RoleAdmin, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, created.Role)

	// Password is stored hashed, not in the clear.
	assert.NotEqual(t, "abcdef12", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("abcdef12")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "ana@example.com", Password: "abcdef12"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "ana@example.com", Password: "abcdef12"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "ana@example.com", Password: "abcdef12", Name: "Ana"})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "ana@example.com", "abcdef12")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "abcdef12")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
