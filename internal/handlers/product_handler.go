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

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	service services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		c.Logger().Errorf("failed to get product %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, product)
}

// Create handles POST /products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	product, err := h.service.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingProductData) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		c.Logger().Errorf("failed to create product: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	product, err := h.service.Update(c.Request().Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingProductData):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrProductNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			c.Logger().Errorf("failed to update product %d: %v", id, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id. Historical order lines keep their
// recorded product id and prices.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		c.Logger().Errorf("failed to delete product %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}
