package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

// CourierHandler serves courier (repartidor) master data.
type CourierHandler struct {
	storage storage.CourierStorage
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(storage storage.CourierStorage) *CourierHandler {
	return &CourierHandler{storage: storage}
}

// List handles GET /repartidores.
func (h *CourierHandler) List(c echo.Context) error {
	couriers, err := h.storage.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list couriers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, couriers)
}

// Get handles GET /repartidores/:id.
func (h *CourierHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	courier, err := h.storage.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrCourierNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "courier not found")
		}
		c.Logger().Errorf("failed to get courier %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, courier)
}

// Create handles POST /repartidores.
func (h *CourierHandler) Create(c echo.Context) error {
	var req models.CourierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "courier first and last name are required")
	}

	courier := courierFromRequest(&req)
	if err := h.storage.Create(c.Request().Context(), courier); err != nil {
		c.Logger().Errorf("failed to create courier: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, courier)
}

// Update handles PUT /repartidores/:id.
func (h *CourierHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	var req models.CourierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "courier first and last name are required")
	}

	courier := courierFromRequest(&req)
	courier.ID = id

	if err := h.storage.Update(c.Request().Context(), courier); err != nil {
		if errors.Is(err, storage.ErrCourierNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "courier not found")
		}
		c.Logger().Errorf("failed to update courier %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, courier)
}

// Delete handles DELETE /repartidores/:id.
func (h *CourierHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid courier id")
	}

	if err := h.storage.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrCourierNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "courier not found")
		}
		c.Logger().Errorf("failed to delete courier %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}

func courierFromRequest(req *models.CourierRequest) *models.Courier {
	hiredAt := time.Now()
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}

	status := req.Status
	if status == "" {
		status = models.CourierStatusActive
	}

	return &models.Courier{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DNI:              req.DNI,
		Phone:            req.Phone,
		Address:          req.Address,
		Email:            req.Email,
		HiredAt:          hiredAt,
		Status:           status,
		Notes:            req.Notes,
		LicenseNumber:    req.LicenseNumber,
		LicenseExpiresAt: req.LicenseExpiresAt,
	}
}
