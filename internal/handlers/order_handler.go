package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/services"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	service services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /orders. Supports ?type=, ?client_id= and ?provider_id=
// filters.
func (h *OrderHandler) List(c echo.Context) error {
	filter := models.OrderFilter{
		OrderType: c.QueryParam("type"),
	}

	if raw := c.QueryParam("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid client_id")
		}
		filter.ClientID = &id
	}
	if raw := c.QueryParam("provider_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid provider_id")
		}
		filter.ProviderID = &id
	}

	orders, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("failed to list orders: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		c.Logger().Errorf("failed to get order %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, order)
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req models.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	confirmation, err := h.service.Create(c.Request().Context(), &req)
	if err != nil {
		return h.mutationError(c, err)
	}

	return c.JSON(http.StatusCreated, confirmation)
}

// Update handles PUT /orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req models.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	confirmation, err := h.service.Update(c.Request().Context(), id, &req)
	if err != nil {
		return h.mutationError(c, err)
	}

	return c.JSON(http.StatusOK, confirmation)
}

// mutationError maps order transaction failures to HTTP responses.
func (h *OrderHandler) mutationError(c echo.Context, err error) error {
	var stockErr *services.InsufficientStockError
	var productErr *services.ProductNotFoundError

	switch {
	case errors.Is(err, services.ErrMissingOrderData),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidDeliveryType),
		errors.Is(err, services.ErrCourierRequired),
		errors.Is(err, services.ErrTooManyItems):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &stockErr), errors.As(err, &productErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	default:
		c.Logger().Errorf("order transaction failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
