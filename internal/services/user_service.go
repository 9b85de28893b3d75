package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/distripedidos/internal/auth"
	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrEmptyCredentials   = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingUserFields  = errors.New("username, password and role are required")
	ErrInvalidRole        = errors.New("unknown role")
)

// UserService handles authentication and account management.
type UserService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	List(ctx context.Context) ([]*models.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	storage         UserStorage
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewUserService creates the user service.
func NewUserService(storage UserStorage, jwtSecret string, tokenExpiration time.Duration) *UserServiceImpl {
	return &UserServiceImpl{
		storage:         storage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Login checks credentials and issues a signed token.
func (s *UserServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, ErrEmptyCredentials
	}

	user, err := s.storage.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  *userResponse(user),
	}, nil
}

// Create registers a new account.
func (s *UserServiceImpl) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingUserFields
	}
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.storage.Create(ctx, user); err != nil {
		return nil, err
	}

	return userResponse(user), nil
}

// List returns all accounts without password hashes.
func (s *UserServiceImpl) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	return out, nil
}

// Update changes the provided fields of an account. A new password is hashed
// before it reaches storage.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error {
	if req == nil {
		return storage.ErrNoUserFields
	}
	if req.Role != nil && !validRole(*req.Role) {
		return ErrInvalidRole
	}

	update := storage.UserUpdate{
		Username: req.Username,
		Role:     req.Role,
	}

	if req.Password != nil {
		if *req.Password == "" {
			return ErrMissingUserFields
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	return s.storage.Update(ctx, id, update)
}

// Delete removes an account.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.storage.Delete(ctx, id)
}

// EnsureAdmin seeds an admin account on an empty users table. No-op when any
// account already exists.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, password string) error {
	count, err := s.storage.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if err := s.storage.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleRead
}

func userResponse(user *models.User) *models.UserResponse {
	return &models.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
