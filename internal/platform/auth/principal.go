// Package auth issues and verifies the JWTs that identify EMS and ER
// employees, and exposes the authenticated principal to handlers.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role discriminates the two caller populations. Handlers and workflows
// switch on it exhaustively instead of inspecting optional fields.
type Role string

const (
	RoleEMS Role = "ems"
	RoleER  Role = "er"
)

// Principal is the already-authenticated caller. EMS principals carry their
// ambulance company; ER principals carry their hospital and emergency center.
type Principal struct {
	EmployeeID         uuid.UUID
	Role               Role
	AmbulanceCompanyID uuid.UUID // EMS only
	HospitalID         uuid.UUID // ER only
	EmergencyCenterID  uuid.UUID // ER only
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
