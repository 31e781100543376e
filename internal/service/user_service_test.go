package service

import (
	"context"
	"testing"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if u, ok := r.users[parsed]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, parsed)
	return nil
}

type fakeRefreshTokenRepo struct {
	users  *fakeUserRepo
	tokens map[string]*model.RefreshToken
}

func newFakeRefreshTokenRepo(users *fakeUserRepo) *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{users: users, tokens: make(map[string]*model.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *model.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if u, ok := r.users.users[rt.UserID]; ok {
		rt.User = *u
	}
	return rt, nil
}

func (r *fakeRefreshTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for k, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for k, rt := range r.tokens {
		if time.Now().After(rt.ExpiresAt) {
			delete(r.tokens, k)
		}
	}
	return nil
}

var testJWTSecret = []byte("test_secret")

func newUserFixture(t *testing.T) (UserService, *fakeUserRepo, *fakeRefreshTokenRepo, *model.User) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     model.RoleAdmin,
		Status:   "active",
	}
	userRepo := newFakeUserRepo(admin)
	tokenRepo := newFakeRefreshTokenRepo(userRepo)
	return NewUserService(userRepo, tokenRepo, testJWTSecret), userRepo, tokenRepo, admin
}

func TestCreateUser(t *testing.T) {
	svc, userRepo, _, _ := newUserFixture(t)

	res, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "clerk",
		Email:    "clerk@example.com",
		Password: "secret123",
		Role:     model.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk", res.Username)
	assert.Equal(t, model.RoleStaff, res.Role)
	assert.Equal(t, "active", res.Status)

	stored, err := userRepo.GetByUsername(context.Background(), "clerk")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestCreateUserConflicts(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "admin", Email: "other@example.com", Password: "secret123", Role: model.RoleStaff,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "other", Email: "admin@example.com", Password: "secret123", Role: model.RoleStaff,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestLogin(t *testing.T) {
	svc, _, tokenRepo, admin := newUserFixture(t)

	tokens, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token)
	require.NotEmpty(t, tokens.RefreshToken)

	// The access token carries the subject and role claims.
	parsed, err := jwt.Parse(tokens.Token, func(tok *jwt.Token) (interface{}, error) {
		return testJWTSecret, nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, admin.ID.String(), claims["sub"])
	assert.Equal(t, model.RoleAdmin, claims["role"])

	// The refresh token is persisted for later rotation.
	_, err = tokenRepo.FindByToken(context.Background(), tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	first, err := svc.Login(context.Background(), LoginRequest{
		Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	second, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The presented token was single use.
	_, err = svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, _, tokenRepo, admin := newUserFixture(t)

	tokenRepo.tokens["stale"] = &model.RefreshToken{
		UserID:    admin.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.NotContains(t, tokenRepo.tokens, "stale", "expired token must be purged")
}

func TestLogout(t *testing.T) {
	svc, _, tokenRepo, _ := newUserFixture(t)

	tokens, err := svc.Login(context.Background(), LoginRequest{
		Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	assert.NotContains(t, tokenRepo.tokens, tokens.RefreshToken)

	// Logout without a session is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	svc, userRepo, tokenRepo, admin := newUserFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)
	require.Len(t, tokenRepo.tokens, 1)

	require.NoError(t, svc.DeleteUser(context.Background(), admin.ID.String()))
	assert.Empty(t, tokenRepo.tokens)
	assert.Empty(t, userRepo.users)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, err := svc.UpdateUser(context.Background(), uuid.NewString(), UpdateUserRequest{Username: "x"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
