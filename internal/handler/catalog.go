package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/repository"
)

// CatalogHandler serves the public unit catalog.  The same handler backs
// both /api/houses and /api/others; the kind is fixed per route.
type CatalogHandler struct {
	Units *repository.UnitRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(units *repository.UnitRepo) *CatalogHandler {
	if units == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Units: units}
}

// unitSummary is the trimmed shape the public listing returns; the full
// description only ships on the detail endpoint.
type unitSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Image            string   `json:"image,omitempty"`
	Images           []string `json:"images,omitempty"`
	Capacity         int      `json:"capacity,omitempty"`
}

// List returns a handler for GET /api/houses or GET /api/others.  Units
// marked manually unavailable are hidden from the public catalog.
func (h *CatalogHandler) List(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		units, err := h.Units.ListByKind(c.Request().Context(), kind, true)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		out := make([]unitSummary, 0, len(units))
		for _, u := range units {
			out = append(out, unitSummary{
				ID:               u.ID,
				Name:             u.Name,
				ShortDescription: u.ShortDescription,
				Image:            u.Image,
				Images:           u.Images,
				Capacity:         u.Capacity,
			})
		}
		return c.JSON(http.StatusOK, out)
	}
}

// Get returns a handler for GET /api/houses/:id or GET /api/others/:id.
func (h *CatalogHandler) Get(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := h.Units.GetByID(c.Request().Context(), kind, c.Param("id"))
		if errors.Is(err, repository.ErrUnitNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusOK, u)
	}
}
