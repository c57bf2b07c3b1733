package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
	"github.com/skillforge/bids-service/internal/repository"
)

type fakeUserRepo struct {
	usersByEmail map[string]*model.User
	nextID       int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, params repository.CreateParams) (*model.User, error) {
	r.nextID++
	user := params.User
	user.ID = r.nextID
	r.usersByEmail[user.Email] = &user
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.usersByEmail[email]
	return ok, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID int64, role model.Role) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeIssuer{})

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Femi@Dev.Test",
		Password: "correct horse",
		Name:     "Femi Oba",
		Role:     model.RoleFreelancer,
		Headline: "Backend developer",
		Skills:   []string{"go", "postgres"},
	})
	require.NoError(t, err)
	assert.Equal(t, "femi@dev.test", result.User.Email)
	assert.Equal(t, model.RoleFreelancer, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)

	login, err := svc.Login(context.Background(), "femi@dev.test", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = svc.Login(context.Background(), "femi@dev.test", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@dev.test", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	valid := RegisterInput{
		Email:    "cara@acme.test",
		Password: "long enough",
		Name:     "Cara Chen",
		Role:     model.RoleClient,
	}

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }, ErrInvalidInput},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidInput},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, ErrInvalidInput},
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, ErrInvalidInput},
		{"admin role rejected", func(in *RegisterInput) { in.Role = model.RoleAdmin }, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserRepo(), fakeIssuer{})
			input := valid
			tt.mutate(&input)
			_, err := svc.Register(context.Background(), input)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeIssuer{})
	input := RegisterInput{
		Email:    "cara@acme.test",
		Password: "long enough",
		Name:     "Cara Chen",
		Role:     model.RoleClient,
	}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrConflict)
}
