package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/google/uuid"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$10$rnWKVaLQ2t87Qi2AvTai0OsGaMcP1p0UEmYEkA7svFWuaoV1EQW0G"

func TestUserServiceImpl_Login(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"

	existingUser := &models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: testPasswordHash,
		Role:         models.RoleAdmin,
	}

	tests := []struct {
		name        string
		req         *models.LoginRequest
		mockStorage *storage.MockUserStorage
		wantErr     bool
		errType     error
	}{
		{
			name: "successful login",
			req:  &models.LoginRequest{Username: "admin", Password: "password123"},
			mockStorage: &storage.MockUserStorage{
				GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
					return existingUser, nil
				},
			},
			wantErr: false,
		},
		{
			name:        "empty username",
			req:         &models.LoginRequest{Username: "", Password: "password123"},
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name:        "empty password",
			req:         &models.LoginRequest{Username: "admin", Password: ""},
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrEmptyCredentials,
		},
		{
			name: "user not found",
			req:  &models.LoginRequest{Username: "ghost", Password: "password123"},
			mockStorage: &storage.MockUserStorage{
				GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
					return nil, storage.ErrUserNotFound
				},
			},
			wantErr: true,
			errType: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  &models.LoginRequest{Username: "admin", Password: "wrongpassword"},
			mockStorage: &storage.MockUserStorage{
				GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
					return existingUser, nil
				},
			},
			wantErr: true,
			errType: ErrInvalidCredentials,
		},
		{
			name: "storage error",
			req:  &models.LoginRequest{Username: "admin", Password: "password123"},
			mockStorage: &storage.MockUserStorage{
				GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
					return nil, errors.New("database error")
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewUserService(tt.mockStorage, secret, 6*time.Hour)

			resp, err := service.Login(ctx, tt.req)

			if (err != nil) != tt.wantErr {
				t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if tt.errType != nil && !errors.Is(err, tt.errType) {
					t.Errorf("Login() error = %v, want %v", err, tt.errType)
				}
				return
			}

			if resp.Token == "" {
				t.Error("Login() returned empty token")
			}
			if resp.User.Username != "admin" {
				t.Errorf("Login() user = %q, want admin", resp.User.Username)
			}
			if resp.User.Role != models.RoleAdmin {
				t.Errorf("Login() role = %q, want %q", resp.User.Role, models.RoleAdmin)
			}
		})
	}
}

func TestUserServiceImpl_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         *models.CreateUserRequest
		mockStorage *storage.MockUserStorage
		wantErr     bool
		errType     error
	}{
		{
			name: "successful create",
			req:  &models.CreateUserRequest{Username: "operator", Password: "secret123", Role: models.RoleRead},
			mockStorage: &storage.MockUserStorage{
				CreateFunc: func(ctx context.Context, user *models.User) error {
					return nil
				},
			},
			wantErr: false,
		},
		{
			name:        "missing username",
			req:         &models.CreateUserRequest{Password: "secret123", Role: models.RoleRead},
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrMissingUserFields,
		},
		{
			name:        "missing role",
			req:         &models.CreateUserRequest{Username: "operator", Password: "secret123"},
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrMissingUserFields,
		},
		{
			name:        "unknown role",
			req:         &models.CreateUserRequest{Username: "operator", Password: "secret123", Role: "superuser"},
			mockStorage: &storage.MockUserStorage{},
			wantErr:     true,
			errType:     ErrInvalidRole,
		},
		{
			name: "username taken",
			req:  &models.CreateUserRequest{Username: "operator", Password: "secret123", Role: models.RoleRead},
			mockStorage: &storage.MockUserStorage{
				CreateFunc: func(ctx context.Context, user *models.User) error {
					return storage.ErrUsernameExists
				},
			},
			wantErr: true,
			errType: storage.ErrUsernameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewUserService(tt.mockStorage, "secret", 6*time.Hour)

			user, err := service.Create(ctx, tt.req)

			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if tt.errType != nil && !errors.Is(err, tt.errType) {
					t.Errorf("Create() error = %v, want %v", err, tt.errType)
				}
				return
			}

			if user.Username != tt.req.Username {
				t.Errorf("Create() username = %q, want %q", user.Username, tt.req.Username)
			}
			if user.ID == uuid.Nil {
				t.Error("Create() returned nil user id")
			}
		})
	}
}

func TestUserServiceImpl_CreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	password := "plaintext-password"

	var storedHash string
	mockStorage := &storage.MockUserStorage{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			storedHash = user.PasswordHash
			return nil
		},
	}

	service := NewUserService(mockStorage, "secret", 6*time.Hour)
	_, err := service.Create(ctx, &models.CreateUserRequest{
		Username: "operator",
		Password: password,
		Role:     models.RoleRead,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if storedHash == password {
		t.Error("Create() did not hash the password")
	}
	if storedHash == "" {
		t.Error("Create() stored empty password hash")
	}
}

func TestUserServiceImpl_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("password is hashed", func(t *testing.T) {
		var gotUpdate storage.UserUpdate
		mockStorage := &storage.MockUserStorage{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, update storage.UserUpdate) error {
				gotUpdate = update
				return nil
			},
		}

		service := NewUserService(mockStorage, "secret", 6*time.Hour)
		password := "new-password"
		err := service.Update(ctx, userID, &models.UpdateUserRequest{Password: &password})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if gotUpdate.PasswordHash == nil {
			t.Fatal("Update() did not forward a password hash")
		}
		if *gotUpdate.PasswordHash == password {
			t.Error("Update() forwarded the plaintext password")
		}
	})

	t.Run("nil request", func(t *testing.T) {
		service := NewUserService(&storage.MockUserStorage{}, "secret", 6*time.Hour)
		if err := service.Update(ctx, userID, nil); !errors.Is(err, storage.ErrNoUserFields) {
			t.Errorf("Update() error = %v, want ErrNoUserFields", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		service := NewUserService(&storage.MockUserStorage{}, "secret", 6*time.Hour)
		role := "superuser"
		if err := service.Update(ctx, userID, &models.UpdateUserRequest{Role: &role}); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("Update() error = %v, want ErrInvalidRole", err)
		}
	})

	t.Run("empty password rejected", func(t *testing.T) {
		service := NewUserService(&storage.MockUserStorage{}, "secret", 6*time.Hour)
		password := ""
		if err := service.Update(ctx, userID, &models.UpdateUserRequest{Password: &password}); !errors.Is(err, ErrMissingUserFields) {
			t.Errorf("Update() error = %v, want ErrMissingUserFields", err)
		}
	})
}

func TestUserServiceImpl_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds on empty table", func(t *testing.T) {
		var created *models.User
		mockStorage := &storage.MockUserStorage{
			CountFunc: func(ctx context.Context) (int64, error) {
				return 0, nil
			},
			CreateFunc: func(ctx context.Context, user *models.User) error {
				created = user
				return nil
			},
		}

		service := NewUserService(mockStorage, "secret", 6*time.Hour)
		if err := service.EnsureAdmin(ctx, "bootstrap-password"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}

		if created == nil {
			t.Fatal("EnsureAdmin() did not create the admin account")
		}
		if created.Username != "admin" || created.Role != models.RoleAdmin {
			t.Errorf("EnsureAdmin() created %q with role %q", created.Username, created.Role)
		}
		if created.PasswordHash == "bootstrap-password" {
			t.Error("EnsureAdmin() stored the plaintext password")
		}
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		mockStorage := &storage.MockUserStorage{
			CountFunc: func(ctx context.Context) (int64, error) {
				return 3, nil
			},
			CreateFunc: func(ctx context.Context, user *models.User) error {
				t.Error("EnsureAdmin() created an account on a non-empty table")
				return nil
			},
		}

		service := NewUserService(mockStorage, "secret", 6*time.Hour)
		if err := service.EnsureAdmin(ctx, "bootstrap-password"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
	})
}
