package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/repository"
)

// AdminUnitHandler manages the catalog from the back office.  Like the
// public catalog, one handler serves both kinds with the kind fixed per
// route; unlike the public one it sees manually unavailable units too.
type AdminUnitHandler struct {
	Units *repository.UnitRepo
}

// NewAdminUnitHandler constructs an AdminUnitHandler.
func NewAdminUnitHandler(units *repository.UnitRepo) *AdminUnitHandler {
	if units == nil {
		panic("nil repository passed to NewAdminUnitHandler")
	}
	return &AdminUnitHandler{Units: units}
}

type createUnitRequest struct {
	ID                  string   `json:"id" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	ShortDescription    string   `json:"shortDescription"`
	LongDescription     string   `json:"longDescription"`
	Image               string   `json:"image"`
	Images              []string `json:"images"`
	Capacity            int      `json:"capacity" validate:"min=0"`
	ManuallyUnavailable bool     `json:"isManuallyUnavailable"`
}

type updateUnitRequest struct {
	Name                *string   `json:"name"`
	ShortDescription    *string   `json:"shortDescription"`
	LongDescription     *string   `json:"longDescription"`
	Image               *string   `json:"image"`
	Images              *[]string `json:"images"`
	Capacity            *int      `json:"capacity"`
	ManuallyUnavailable *bool     `json:"isManuallyUnavailable"`
}

// List returns a handler for GET /api/admin/houses or /api/admin/others,
// including units hidden from the public catalog.
func (h *AdminUnitHandler) List(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		units, err := h.Units.ListByKind(c.Request().Context(), kind, false)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusOK, units)
	}
}

// Create returns a handler for POST /api/admin/houses or /api/admin/others.
// The id doubles as the public URL slug, so collisions are 409.
func (h *AdminUnitHandler) Create(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createUnitRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		u := model.Unit{
			ID:                  req.ID,
			Kind:                kind,
			Name:                req.Name,
			ShortDescription:    req.ShortDescription,
			LongDescription:     req.LongDescription,
			Image:               req.Image,
			Images:              req.Images,
			Capacity:            req.Capacity,
			ManuallyUnavailable: req.ManuallyUnavailable,
		}
		if err := h.Units.Create(c.Request().Context(), &u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "a unit with this id already exists"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "unit created",
			"unit":    u,
		})
	}
}

// Update returns a handler for PUT /api/admin/houses/:id or its twin.
func (h *AdminUnitHandler) Update(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req updateUnitRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}

		ctx := c.Request().Context()
		u, err := h.Units.GetByID(ctx, kind, c.Param("id"))
		if errors.Is(err, repository.ErrUnitNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.ShortDescription != nil {
			u.ShortDescription = *req.ShortDescription
		}
		if req.LongDescription != nil {
			u.LongDescription = *req.LongDescription
		}
		if req.Image != nil {
			u.Image = *req.Image
		}
		if req.Images != nil {
			u.Images = *req.Images
		}
		if req.Capacity != nil {
			u.Capacity = *req.Capacity
		}
		if req.ManuallyUnavailable != nil {
			u.ManuallyUnavailable = *req.ManuallyUnavailable
		}

		if err := h.Units.Update(ctx, u); err != nil {
			if errors.Is(err, repository.ErrUnitNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message": "unit updated",
			"unit":    u,
		})
	}
}

// Delete returns a handler for DELETE /api/admin/houses/:id or its twin.
// Bookings that reference the deleted unit are left alone.
func (h *AdminUnitHandler) Delete(kind model.UnitKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := h.Units.Delete(c.Request().Context(), kind, c.Param("id"))
		if errors.Is(err, repository.ErrUnitNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unit not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "unit deleted"})
	}
}
