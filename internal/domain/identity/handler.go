package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emslink/emslink/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the login endpoints. These are the only routes in
// the API served without a bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/ems/login", h.LoginEMS)
	e.POST("/auth/er/login", h.LoginER)
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) LoginEMS(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.LoginEMS(c.Request().Context(), req.LoginID, req.Password)
	if err != nil {
		return loginError(err)
	}
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

func (h *Handler) LoginER(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.LoginER(c.Request().Context(), req.LoginID, req.Password)
	if err != nil {
		return loginError(err)
	}
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

func loginError(err error) error {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return echo.NewHTTPError(apperr.HTTPStatus(domainErr.Kind), domainErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
}
