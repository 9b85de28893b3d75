package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/services"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler serves authentication and account endpoints.
type UserHandler struct {
	service services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	resp, err := h.service.Login(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		default:
			c.Logger().Errorf("login failed: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	user, err := h.service.Create(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUserFields),
			errors.Is(err, services.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrUsernameExists):
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		default:
			c.Logger().Errorf("failed to create user: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list users: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /users/:id. Only the provided fields change.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := h.service.Update(c.Request().Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, storage.ErrNoUserFields),
			errors.Is(err, services.ErrMissingUserFields),
			errors.Is(err, services.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case errors.Is(err, storage.ErrUsernameExists):
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		default:
			c.Logger().Errorf("failed to update user %s: %v", id, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		c.Logger().Errorf("failed to delete user %s: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}
