package erpatient

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
	g := api.Group("/er", auth.RequireRole(auth.RoleER))
	g.POST("/request-patients/:patient_id/assign", h.Assign)
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/:id", h.GetPatient)
}

type assignRequest struct {
	BedID    uuid.UUID `json:"bed_id"`
	DoctorID uuid.UUID `json:"doctor_id"`
	NurseID  uuid.UUID `json:"nurse_id"`
}

func (h *Handler) Assign(c echo.Context) error {
	emsPatientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	var body assignRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.BedID == uuid.Nil || body.DoctorID == uuid.Nil || body.NurseID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bed_id, doctor_id and nurse_id are required")
	}
	principal := auth.PrincipalFromContext(c.Request().Context())
	patient, err := h.svc.Assign(c.Request().Context(), principal, emsPatientID, body.BedID, body.DoctorID, body.NurseID)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, patient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	principal := auth.PrincipalFromContext(c.Request().Context())
	items, total, err := h.svc.ListPatients(c.Request().Context(), principal.EmergencyCenterID, pg.Limit, pg.Offset)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type patientDetail struct {
	*ErPatient
	Logs []*PatientLog `json:"logs"`
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	principal := auth.PrincipalFromContext(c.Request().Context())
	p, logs, err := h.svc.GetPatientDetail(c.Request().Context(), id, principal.EmergencyCenterID)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, patientDetail{ErPatient: p, Logs: logs})
}

func domainHTTPError(err error) error {
	var domain *apperr.Error
	if errors.As(err, &domain) {
		return echo.NewHTTPError(apperr.HTTPStatus(domain.Kind), domain)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
