package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

// ClientHandler serves client master data. Plain CRUD, no service layer.
type ClientHandler struct {
	storage storage.ClientStorage
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(storage storage.ClientStorage) *ClientHandler {
	return &ClientHandler{storage: storage}
}

// List handles GET /clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.storage.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list clients: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, clients)
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	client, err := h.storage.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "client not found")
		}
		c.Logger().Errorf("failed to get client %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, client)
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req models.ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client name is required")
	}

	client := &models.Client{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.storage.Create(c.Request().Context(), client); err != nil {
		c.Logger().Errorf("failed to create client: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, client)
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	var req models.ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client name is required")
	}

	client := &models.Client{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.storage.Update(c.Request().Context(), client); err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "client not found")
		}
		c.Logger().Errorf("failed to update client %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	if err := h.storage.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "client not found")
		}
		c.Logger().Errorf("failed to delete client %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}
