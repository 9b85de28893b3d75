package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

// ProviderHandler serves provider master data.
type ProviderHandler struct {
	storage storage.ProviderStorage
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(storage storage.ProviderStorage) *ProviderHandler {
	return &ProviderHandler{storage: storage}
}

// List handles GET /providers.
func (h *ProviderHandler) List(c echo.Context) error {
	providers, err := h.storage.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list providers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, providers)
}

// Get handles GET /providers/:id.
func (h *ProviderHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid provider id")
	}

	provider, err := h.storage.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "provider not found")
		}
		c.Logger().Errorf("failed to get provider %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, provider)
}

// Create handles POST /providers.
func (h *ProviderHandler) Create(c echo.Context) error {
	var req models.ProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "provider name is required")
	}

	provider := &models.Provider{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.storage.Create(c.Request().Context(), provider); err != nil {
		c.Logger().Errorf("failed to create provider: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, provider)
}

// Update handles PUT /providers/:id.
func (h *ProviderHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid provider id")
	}

	var req models.ProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "provider name is required")
	}

	provider := &models.Provider{
		ID:      id,
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.storage.Update(c.Request().Context(), provider); err != nil {
		if errors.Is(err, storage.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "provider not found")
		}
		c.Logger().Errorf("failed to update provider %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, provider)
}

// Delete handles DELETE /providers/:id.
func (h *ProviderHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid provider id")
	}

	if err := h.storage.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "provider not found")
		}
		c.Logger().Errorf("failed to delete provider %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}
