package emspatient

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
	g := api.Group("/ems/patients", auth.RequireRole(auth.RoleEMS))
	g.POST("", h.CreatePatient)
	g.GET("", h.ListPatients)
	g.GET("/:id", h.GetPatient)
	g.POST("/:id/assessments", h.AddAssessment)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	principal := auth.PrincipalFromContext(c.Request().Context())
	p.EmsEmployeeID = principal.EmployeeID
	p.AmbulanceCompanyID = principal.AmbulanceCompanyID

	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	principal := auth.PrincipalFromContext(c.Request().Context())

	items, total, err := h.svc.ListPatients(c.Request().Context(), principal.EmployeeID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type patientDetail struct {
	*Patient
	Assessments []*Assessment `json:"assessments"`
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	principal := auth.PrincipalFromContext(c.Request().Context())
	p, assessments, err := h.svc.GetPatientDetailForEmployee(c.Request().Context(), id, principal.EmployeeID)
	if err != nil {
		return domainHTTPError(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, patientDetail{Patient: p, Assessments: assessments})
}

func (h *Handler) AddAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Assessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.PatientID = id
	principal := auth.PrincipalFromContext(c.Request().Context())
	if err := h.svc.AddAssessment(c.Request().Context(), &a, principal.EmployeeID); err != nil {
		return domainHTTPError(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, a)
}

// domainHTTPError maps typed domain errors to their status; anything else
// gets the fallback (validation failures surface as 400 here, not 500).
func domainHTTPError(err error, fallback int) error {
	var domain *apperr.Error
	if errors.As(err, &domain) {
		return echo.NewHTTPError(apperr.HTTPStatus(domain.Kind), domain)
	}
	return echo.NewHTTPError(fallback, err.Error())
}
