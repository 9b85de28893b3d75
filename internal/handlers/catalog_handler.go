package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the reference catalogs: read-only geography and
// payment terms, plus mutable categories (rubros) and brands (marcas).
type CatalogHandler struct {
	storage storage.CatalogStorage
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(storage storage.CatalogStorage) *CatalogHandler {
	return &CatalogHandler{storage: storage}
}

// Localities handles GET /catalogs/localidades.
func (h *CatalogHandler) Localities(c echo.Context) error {
	return h.list(c, h.storage.Localities, "localities")
}

// Zones handles GET /catalogs/zonas.
func (h *CatalogHandler) Zones(c echo.Context) error {
	return h.list(c, h.storage.Zones, "zones")
}

// Neighborhoods handles GET /catalogs/barrios.
func (h *CatalogHandler) Neighborhoods(c echo.Context) error {
	return h.list(c, h.storage.Neighborhoods, "neighborhoods")
}

// PaymentTerms handles GET /catalogs/condiciones-pago.
func (h *CatalogHandler) PaymentTerms(c echo.Context) error {
	return h.list(c, h.storage.PaymentTerms, "payment terms")
}

// Categories handles GET /rubros.
func (h *CatalogHandler) Categories(c echo.Context) error {
	return h.list(c, h.storage.Categories, "categories")
}

// CreateCategory handles POST /rubros.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	return h.create(c, h.storage.CreateCategory, "category")
}

// UpdateCategory handles PUT /rubros/:id.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	return h.update(c, h.storage.UpdateCategory, "category")
}

// Brands handles GET /marcas. An optional ?rubro_id= narrows the list to
// brands with products in that category.
func (h *CatalogHandler) Brands(c echo.Context) error {
	var categoryID *int64
	if raw := c.QueryParam("rubro_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid rubro_id")
		}
		categoryID = &id
	}

	entries, err := h.storage.Brands(c.Request().Context(), categoryID)
	if err != nil {
		c.Logger().Errorf("failed to list brands: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateBrand handles POST /marcas.
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	return h.create(c, h.storage.CreateBrand, "brand")
}

// UpdateBrand handles PUT /marcas/:id.
func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	return h.update(c, h.storage.UpdateBrand, "brand")
}

func (h *CatalogHandler) list(c echo.Context, fetch func(ctx context.Context) ([]*models.CatalogEntry, error), what string) error {
	entries, err := fetch(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list %s: %v", what, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) create(c echo.Context, insert func(ctx context.Context, entry *models.CatalogEntry) error, what string) error {
	var req models.CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	entry := &models.CatalogEntry{Name: req.Name}
	if err := insert(c.Request().Context(), entry); err != nil {
		c.Logger().Errorf("failed to create %s: %v", what, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, entry)
}

func (h *CatalogHandler) update(c echo.Context, rename func(ctx context.Context, entry *models.CatalogEntry) error, what string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req models.CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	entry := &models.CatalogEntry{ID: id, Name: req.Name}
	if err := rename(c.Request().Context(), entry); err != nil {
		if errors.Is(err, storage.ErrCatalogEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, what+" not found")
		}
		c.Logger().Errorf("failed to update %s %d: %v", what, id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, entry)
}
