package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/services"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MockUserService is a function-field mock of services.UserService.
type MockUserService struct {
	LoginFunc  func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	CreateFunc func(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	ListFunc   func(ctx context.Context) ([]*models.UserResponse, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, services.ErrInvalidCredentials
}

func (m *MockUserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.UserResponse{ID: uuid.New()}, nil
}

func (m *MockUserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.UserResponse{}, nil
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestUserHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockService    *MockUserService
		expectedStatus int
		checkToken     bool
	}{
		{
			name:        "successful login",
			requestBody: `{"username":"admin","password":"password123"}`,
			mockService: &MockUserService{
				LoginFunc: func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
					return &models.LoginResponse{
						Token: "test-token",
						User:  models.UserResponse{ID: uuid.New(), Username: req.Username, Role: models.RoleAdmin},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			checkToken:     true,
		},
		{
			name:           "invalid JSON",
			requestBody:    `{"username":"admin"`,
			mockService:    &MockUserService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "empty credentials",
			requestBody: `{"username":"","password":""}`,
			mockService: &MockUserService{
				LoginFunc: func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
					return nil, services.ErrEmptyCredentials
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "invalid credentials",
			requestBody: `{"username":"admin","password":"wrong"}`,
			mockService: &MockUserService{
				LoginFunc: func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
					return nil, services.ErrInvalidCredentials
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "internal error",
			requestBody: `{"username":"admin","password":"password123"}`,
			mockService: &MockUserService{
				LoginFunc: func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
					return nil, errors.New("database error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.requestBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewUserHandler(tt.mockService)
			err := handler.Login(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
				}
			} else {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				if he, ok := err.(*echo.HTTPError); ok {
					if he.Code != tt.expectedStatus {
						t.Errorf("Expected status %d, got %d", tt.expectedStatus, he.Code)
					}
				}
			}

			if tt.checkToken && !strings.Contains(rec.Body.String(), "test-token") {
				t.Error("Response doesn't contain the token")
			}
		})
	}
}

func TestUserHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockService    *MockUserService
		expectedStatus int
	}{
		{
			name:        "successful create",
			requestBody: `{"username":"operator","password":"secret123","role":"read"}`,
			mockService: &MockUserService{
				CreateFunc: func(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
					return &models.UserResponse{ID: uuid.New(), Username: req.Username, Role: req.Role}, nil
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "missing fields",
			requestBody: `{"username":"operator"}`,
			mockService: &MockUserService{
				CreateFunc: func(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
					return nil, services.ErrMissingUserFields
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "username taken",
			requestBody: `{"username":"operator","password":"secret123","role":"read"}`,
			mockService: &MockUserService{
				CreateFunc: func(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
					return nil, storage.ErrUsernameExists
				},
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tt.requestBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewUserHandler(tt.mockService)
			err := handler.Create(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
				}
			} else {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				if he, ok := err.(*echo.HTTPError); ok {
					if he.Code != tt.expectedStatus {
						t.Errorf("Expected status %d, got %d", tt.expectedStatus, he.Code)
					}
				}
			}
		})
	}
}

func TestUserHandler_Update(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		paramID        string
		requestBody    string
		mockService    *MockUserService
		expectedStatus int
	}{
		{
			name:           "successful update",
			paramID:        userID.String(),
			requestBody:    `{"role":"admin"}`,
			mockService:    &MockUserService{},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "invalid id",
			paramID:        "not-a-uuid",
			requestBody:    `{"role":"admin"}`,
			mockService:    &MockUserService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "user not found",
			paramID:     userID.String(),
			requestBody: `{"role":"admin"}`,
			mockService: &MockUserService{
				UpdateFunc: func(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error {
					return storage.ErrUserNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "no fields",
			paramID:     userID.String(),
			requestBody: `{}`,
			mockService: &MockUserService{
				UpdateFunc: func(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) error {
					return storage.ErrNoUserFields
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPut, "/api/users/"+tt.paramID, strings.NewReader(tt.requestBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.paramID)

			handler := NewUserHandler(tt.mockService)
			err := handler.Update(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
				}
			} else {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				if he, ok := err.(*echo.HTTPError); ok {
					if he.Code != tt.expectedStatus {
						t.Errorf("Expected status %d, got %d", tt.expectedStatus, he.Code)
					}
				}
			}
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	userID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(userID.String())

		handler := NewUserHandler(&MockUserService{})
		if err := handler.Delete(c); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if rec.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockService := &MockUserService{
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return storage.ErrUserNotFound
			},
		}

		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(userID.String())

		handler := NewUserHandler(mockService)
		err := handler.Delete(c)

		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("Delete() error = %v, want 404", err)
		}
	})
}
