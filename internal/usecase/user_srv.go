package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

// UserService is the admin back-office view of accounts.
type UserService interface {
	List(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Get(ctx context.Context, id int64) (*response.UserResponse, error)
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *userService) Get(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.users, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
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
		Role:         entity.UserRole(req.Role),
		Status:       entity.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", req.Username, err)
	}

	s.log.Info("User created by admin",
		zap.Int64("user_id", user.ID),
		zap.String("role", req.Role),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := findUser(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := ensureUnique(ctx, s.users, "", *req.Email, id); err != nil {
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
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Status != nil {
		user.Status = entity.UserStatus(*req.Status)
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "user %d not found", id)
	}
	return err
}
