package auth

import (
	"testing"
	"time"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/google/uuid"
)

func TestGenerateToken(t *testing.T) {
	secret := "test-secret"
	expiration := 1 * time.Hour

	user := &models.User{
		ID:       uuid.New(),
		Username: "admin",
		Role:     models.RoleAdmin,
	}

	tests := []struct {
		name       string
		user       *models.User
		secret     string
		expiration time.Duration
		wantErr    bool
	}{
		{
			name:       "valid user",
			user:       user,
			secret:     secret,
			expiration: expiration,
			wantErr:    false,
		},
		{
			name: "user with empty username",
			user: &models.User{
				ID:       uuid.New(),
				Username: "",
			},
			secret:     secret,
			expiration: expiration,
			wantErr:    false,
		},
		{
			name: "user with nil UUID",
			user: &models.User{
				ID:       uuid.Nil,
				Username: "admin",
			},
			secret:     secret,
			expiration: expiration,
			wantErr:    false,
		},
		{
			name:       "empty secret",
			user:       user,
			secret:     "",
			expiration: expiration,
			wantErr:    false,
		},
		{
			name:       "negative expiration",
			user:       user,
			secret:     secret,
			expiration: -1 * time.Hour,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.user, tt.secret, tt.expiration)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && token == "" {
				t.Error("GenerateToken() returned empty token")
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	secret := "test-secret"
	wrongSecret := "wrong-secret"
	expiration := 1 * time.Hour

	user := &models.User{
		ID:       uuid.New(),
		Username: "admin",
		Role:     models.RoleAdmin,
	}

	validToken, err := GenerateToken(user, secret, expiration)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredToken, err := GenerateToken(user, secret, -1*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   validToken,
			secret:  secret,
			wantErr: false,
		},
		{
			name:    "wrong secret",
			token:   validToken,
			secret:  wrongSecret,
			wantErr: true,
		},
		{
			name:    "expired token",
			token:   expiredToken,
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "invalid token format",
			token:   "invalid.token.here",
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			secret:  secret,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if claims == nil {
					t.Error("ValidateToken() returned nil claims")
					return
				}
				if claims.UserID != user.ID {
					t.Errorf("ValidateToken() UserID = %v, want %v", claims.UserID, user.ID)
				}
				if claims.Username != user.Username {
					t.Errorf("ValidateToken() Username = %v, want %v", claims.Username, user.Username)
				}
				if claims.Role != user.Role {
					t.Errorf("ValidateToken() Role = %v, want %v", claims.Role, user.Role)
				}
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	expiration := 1 * time.Hour

	tests := []struct {
		name string
		user *models.User
	}{
		{
			name: "admin user",
			user: &models.User{
				ID:       uuid.New(),
				Username: "admin",
				Role:     models.RoleAdmin,
			},
		},
		{
			name: "read-only user",
			user: &models.User{
				ID:       uuid.New(),
				Username: "viewer",
				Role:     models.RoleRead,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.user, secret, expiration)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			claims, err := ValidateToken(token, secret)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}

			if claims.UserID != tt.user.ID {
				t.Errorf("UserID mismatch: got %v, want %v", claims.UserID, tt.user.ID)
			}
			if claims.Role != tt.user.Role {
				t.Errorf("Role mismatch: got %v, want %v", claims.Role, tt.user.Role)
			}

			if claims.ExpiresAt == nil {
				t.Error("ExpiresAt is nil")
			}
			if claims.IssuedAt == nil {
				t.Error("IssuedAt is nil")
			}
		})
	}
}
