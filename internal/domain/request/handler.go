package request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
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
	g := api.Group("/requests/ems-to-er")
	g.POST("", h.Create, auth.RequireRole(auth.RoleEMS))
	g.GET("", h.List)
	g.POST("/:patient_id/respond", h.Respond, auth.RequireRole(auth.RoleER))
}

// Create fans out the caller's pending patient to in-range centers.
func (h *Handler) Create(c echo.Context) error {
	principal := auth.PrincipalFromContext(c.Request().Context())
	result, err := h.svc.CreateRequest(c.Request().Context(), principal.EmployeeID, principal.AmbulanceCompanyID)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// List serves both sides: ER callers see their center's inbox (and fresh
// rows get marked VIEWED), EMS callers see the fan-out for one patient.
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	principal := auth.PrincipalFromContext(ctx)

	switch principal.Role {
	case auth.RoleER:
		pg := pagination.FromContext(c)
		items, total, err := h.svc.ListForCenter(ctx, principal.EmergencyCenterID, pg.Limit, pg.Offset)
		if err != nil {
			return domainHTTPError(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	case auth.RoleEMS:
		patientID, err := uuid.Parse(c.QueryParam("patient_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "patient_id query parameter is required")
		}
		items, err := h.svc.ListForPatient(ctx, patientID, principal.EmployeeID)
		if err != nil {
			return domainHTTPError(err)
		}
		return c.JSON(http.StatusOK, items)
	default:
		return echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}
}

type respondRequest struct {
	Decision Status `json:"decision"`
}

func (h *Handler) Respond(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	var body respondRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Decision != StatusAccepted && body.Decision != StatusRejected {
		return echo.NewHTTPError(http.StatusBadRequest, "decision must be ACCEPTED or REJECTED")
	}
	principal := auth.PrincipalFromContext(c.Request().Context())
	if err := h.svc.Respond(c.Request().Context(), principal.EmergencyCenterID, patientID, body.Decision); err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(body.Decision)})
}

// domainHTTPError maps typed domain errors to their status and body;
// anything else is an infrastructure fault.
func domainHTTPError(err error) error {
	var domain *apperr.Error
	if errors.As(err, &domain) {
		return echo.NewHTTPError(apperr.HTTPStatus(domain.Kind), domain)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
