package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Me(ctx context.Context, userID int64) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *request.ChangePasswordRequest) error
}

type authService struct {
	users  repository.UserRepository
	config utils.JWTConfig
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, config utils.JWTConfig, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	if err := ensureUnique(ctx, s.users, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         entity.RoleCustomer,
		Status:       entity.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Username, err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Accept either username or email in the username field
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		user, err = s.users.FindByEmail(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("identifier", req.Username))
		return nil, newError(ErrInvalidCredentials, "invalid username or password")
	}

	if user.Status != entity.UserStatusActive {
		s.log.Warn("Login attempt on inactive account", zap.Int64("user_id", user.ID))
		return nil, newError(ErrForbidden, "account is inactive")
	}

	token, expiresAt, err := s.issueToken(user, time.Now())
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return &response.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func (s *authService) issueToken(user *entity.User, now time.Time) (string, time.Time, error) {
	claims := utils.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
	if user.FullName != nil {
		claims.Name = *user.FullName
	}

	ttl := time.Duration(s.config.ExpiryHours) * time.Hour
	token, exp, err := utils.NewAccessToken(s.config.Secret, claims, now, ttl)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := ensureUnique(ctx, s.users, "", *req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile of user %d: %w", userID, err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, req *request.ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := findUser(ctx, s.users, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return newError(ErrInvalidInput, "current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("change password of user %d: %w", userID, err)
	}

	s.log.Info("Password changed", zap.Int64("user_id", userID))
	return nil
}

func findUser(ctx context.Context, users repository.UserRepository, id int64) (*entity.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user %d not found", id)
	}
	return user, nil
}

// ensureUnique rejects a username or email already used by another user.
// Empty values are not checked.
func ensureUnique(ctx context.Context, users repository.UserRepository, username, email string, selfID int64) error {
	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return newError(ErrConflict, "username %s is already taken", username)
		}
	}

	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return newError(ErrConflict, "email %s is already registered", email)
		}
	}

	return nil
}
