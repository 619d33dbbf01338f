package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/emslink/emslink/internal/platform/auth"
)

// Logger emits one line per request. Authenticated calls carry the
// principal's employee id and role so EMS and ER traffic separate cleanly
// in the stream; the principal is read after the handler ran because the
// auth middleware binds it downstream of this one.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			req := c.Request()
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			if p := auth.PrincipalFromContext(req.Context()); p != nil {
				evt = evt.
					Str("employee_id", p.EmployeeID.String()).
					Str("role", string(p.Role))
			}
			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
