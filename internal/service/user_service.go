package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for request validation
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=admin manager staff"`
	WarehouseID string `json:"warehouse_id"`
	Status      string `json:"status"`
}

type UpdateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"omitempty,oneof=admin manager staff"`
	WarehouseID string `json:"warehouse_id"`
	Status      string `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse returns user data without exposing the password hash.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	jwtSecret []byte
}

// NewUserService returns a new instance of UserService.
func NewUserService(repo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, jwtSecret []byte) UserService {
	return &userService{repo: repo, tokenRepo: tokenRepo, jwtSecret: jwtSecret}
}

func mapUser(user *model.User) *UserResponse {
	res := &UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
	if user.WarehouseID != nil {
		res.WarehouseID = user.WarehouseID.String()
	}
	return res
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Conflict("username already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Storage("failed to hash password", err)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     req.Role,
		Status:   status,
	}
	if req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return nil, apperror.Validation("invalid warehouse_id")
		}
		user.WarehouseID = &warehouseID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Storage("failed to create user", err)
	}

	return mapUser(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Validation("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Validation("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.tokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperror.Validation("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.Delete(ctx, req.RefreshToken)
		return nil, apperror.Validation("refresh token expired")
	}

	// Rotate: the presented token is single use.
	if err := s.tokenRepo.Delete(ctx, req.RefreshToken); err != nil {
		return nil, apperror.Storage("failed to rotate refresh token", err)
	}

	return s.issueTokens(ctx, &stored.User)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.Delete(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperror.Storage("failed to sign token", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperror.Storage("failed to generate refresh token", err)
	}
	refreshToken := hex.EncodeToString(raw)

	if err := s.tokenRepo.Create(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperror.Storage("failed to store refresh token", err)
	}

	return &TokenResponse{Token: accessToken, RefreshToken: refreshToken}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Storage("failed to load user", err)
	}
	return mapUser(user), nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Storage("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUser(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Storage("failed to load user", err)
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username already exists")
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, apperror.Conflict("email already exists")
		}
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return nil, apperror.Validation("invalid warehouse_id")
		}
		user.WarehouseID = &warehouseID
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperror.Storage("failed to update user", err)
	}

	return mapUser(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Storage("failed to load user", err)
	}

	if err := s.tokenRepo.DeleteByUser(ctx, user.ID); err != nil {
		return apperror.Storage("failed to revoke sessions", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Storage("failed to delete user", err)
	}
	return nil
}
