package hospital

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emslink/emslink/internal/platform/apperr"
	"github.com/emslink/emslink/internal/platform/auth"
	"github.com/emslink/emslink/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/er", auth.RequireRole(auth.RoleER))
	g.GET("/beds", h.ListBeds)
	g.GET("/staff", h.ListStaff)
}

func (h *Handler) ListBeds(c echo.Context) error {
	pg := pagination.FromContext(c)
	principal := auth.PrincipalFromContext(c.Request().Context())
	items, total, err := h.svc.ListBeds(c.Request().Context(), principal.EmergencyCenterID, pg.Limit, pg.Offset)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListStaff(c echo.Context) error {
	pg := pagination.FromContext(c)
	principal := auth.PrincipalFromContext(c.Request().Context())
	items, total, err := h.svc.ListStaff(c.Request().Context(), principal.HospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func domainHTTPError(err error) error {
	var domain *apperr.Error
	if errors.As(err, &domain) {
		return echo.NewHTTPError(apperr.HTTPStatus(domain.Kind), domain)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
