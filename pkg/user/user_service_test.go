package user

import (
	"context"
	"testing"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byEmail map[string]*entities.User
	byID    map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*entities.User),
		byID:    make(map[string]*entities.User),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type staticJWTService struct{ token string }

func (s staticJWTService) GenerateTokenUser(string, string) string       { return s.token }
func (s staticJWTService) ValidateTokenUser(string) (*jwt.Token, error)  { return nil, nil }
func (s staticJWTService) GetUserIDByToken(string) (string, string, error) {
	return "", "", nil
}

func TestRegisterNormalizesEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Name:     "  Ada  ",
		Email:    "  Ada@Example.COM ",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.Email)
	assert.Equal(t, "Ada", res.Name)

	stored, ok := repo.byEmail["ada@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "hunter22", stored.PasswordHash, "password must not be stored in plain text")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), domain.RegisterRequest{
		Name: "Other Ada", Email: "ADA@example.com", Password: "different",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{token: "signed-token"})

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)
	assert.Equal(t, "signed-token", res.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	res, err := service.Me(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.Name)

	_, err = service.Me(context.Background(), "missing-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
