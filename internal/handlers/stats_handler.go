package handlers

import (
	"net/http"
	"strconv"

	"github.com/agamariel/distripedidos/internal/storage"
	"github.com/labstack/echo/v4"
)

const defaultStatsWindowDays = 30

// StatsHandler serves read-only sales statistics.
type StatsHandler struct {
	storage storage.StatsStorage
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(storage storage.StatsStorage) *StatsHandler {
	return &StatsHandler{storage: storage}
}

// TopProducts handles GET /statistics/top-products.
func (h *StatsHandler) TopProducts(c echo.Context) error {
	days, err := windowDays(c)
	if err != nil {
		return err
	}

	result, err := h.storage.TopProducts(c.Request().Context(), days)
	if err != nil {
		c.Logger().Errorf("failed to query top products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, result)
}

// TopProviders handles GET /statistics/top-providers.
func (h *StatsHandler) TopProviders(c echo.Context) error {
	days, err := windowDays(c)
	if err != nil {
		return err
	}

	result, err := h.storage.TopProviders(c.Request().Context(), days)
	if err != nil {
		c.Logger().Errorf("failed to query top providers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, result)
}

// TopClients handles GET /statistics/top-clients.
func (h *StatsHandler) TopClients(c echo.Context) error {
	days, err := windowDays(c)
	if err != nil {
		return err
	}

	result, err := h.storage.TopClients(c.Request().Context(), days)
	if err != nil {
		c.Logger().Errorf("failed to query top clients: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, result)
}

// ClientProducts handles GET /statistics/client-products/:clientId.
func (h *StatsHandler) ClientProducts(c echo.Context) error {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}

	days, err := windowDays(c)
	if err != nil {
		return err
	}

	result, err := h.storage.ClientProducts(c.Request().Context(), clientID, days)
	if err != nil {
		c.Logger().Errorf("failed to query client products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, result)
}

// windowDays reads the optional ?days= parameter.
func windowDays(c echo.Context) (int, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return defaultStatsWindowDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid days parameter")
	}

	return days, nil
}
