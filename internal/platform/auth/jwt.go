package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Claims is the JWT payload for both employee populations. The company and
// hospital/center fields are populated according to Role.
type Claims struct {
	jwt.RegisteredClaims
	Role               Role   `json:"role"`
	AmbulanceCompanyID string `json:"ambulance_company_id,omitempty"`
	HospitalID         string `json:"hospital_id,omitempty"`
	EmergencyCenterID  string `json:"emergency_center_id,omitempty"`
}

// TokenIssuer signs access tokens for authenticated employees.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer, ttl: ttl}
}

// Issue returns a signed token for the principal.
func (t *TokenIssuer) Issue(p *Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.EmployeeID.String(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role: p.Role,
	}
	switch p.Role {
	case RoleEMS:
		claims.AmbulanceCompanyID = p.AmbulanceCompanyID.String()
	case RoleER:
		claims.HospitalID = p.HospitalID.String()
		claims.EmergencyCenterID = p.EmergencyCenterID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning the embedded principal.
func (t *TokenIssuer) Verify(tokenString string) (*Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims.principal()
}

func (c *Claims) principal() (*Principal, error) {
	employeeID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("parse subject: %w", err)
	}

	p := &Principal{EmployeeID: employeeID, Role: c.Role}
	switch c.Role {
	case RoleEMS:
		p.AmbulanceCompanyID, err = uuid.Parse(c.AmbulanceCompanyID)
		if err != nil {
			return nil, fmt.Errorf("parse ambulance_company_id: %w", err)
		}
	case RoleER:
		p.HospitalID, err = uuid.Parse(c.HospitalID)
		if err != nil {
			return nil, fmt.Errorf("parse hospital_id: %w", err)
		}
		p.EmergencyCenterID, err = uuid.Parse(c.EmergencyCenterID)
		if err != nil {
			return nil, fmt.Errorf("parse emergency_center_id: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown role %q", c.Role)
	}
	return p, nil
}

// Middleware verifies the Authorization bearer token and stashes the
// principal in the request context. Requests without a valid token get 401.
func Middleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			p, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := WithPrincipal(c.Request().Context(), p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole restricts a route group to principals with one of the given
// roles.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFromContext(c.Request().Context())
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			for _, role := range roles {
				if p.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", rolesString(roles)))
		}
	}
}

func rolesString(roles []Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, " or ")
}
