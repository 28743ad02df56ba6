package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamgarage/dreamcar/internal/catalog"
	"github.com/dreamgarage/dreamcar/models"
)

type VehiclesHandler struct {
	Catalog *catalog.Store
}

func (h *VehiclesHandler) Register(e *echo.Echo) {
	e.GET("/vehicles", h.list)
	e.GET("/vehicle/:full_model", h.get)
}

func (h *VehiclesHandler) list(c echo.Context) error {
	vehicles, err := h.Catalog.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, vehicles)
}

// get matches case-insensitively by full model name. A miss answers 200 with
// a sentinel error object; clients key off the body, not the status.
func (h *VehiclesHandler) get(c echo.Context) error {
	vehicles, err := h.Catalog.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	v, err := catalog.Lookup(vehicles, c.Param("full_model"))
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			return c.JSON(http.StatusOK, map[string]string{"error": "Vehicle not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}
