package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/emslink/emslink/internal/platform/apperr"
	"github.com/emslink/emslink/internal/platform/auth"
)

type Service struct {
	emsEmployees EmsEmployeeRepository
	erEmployees  ErEmployeeRepository
	issuer       *auth.TokenIssuer
}

func NewService(emsEmployees EmsEmployeeRepository, erEmployees ErEmployeeRepository, issuer *auth.TokenIssuer) *Service {
	return &Service{emsEmployees: emsEmployees, erEmployees: erEmployees, issuer: issuer}
}

// LoginEMS authenticates an EMS employee and returns a signed access token.
// A missing account and a wrong password produce the same error.
func (s *Service) LoginEMS(ctx context.Context, loginID, password string) (string, error) {
	employee, err := s.emsEmployees.GetByLoginID(ctx, loginID)
	if err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}

	return s.issuer.Issue(&auth.Principal{
		EmployeeID:         employee.ID,
		Role:               auth.RoleEMS,
		AmbulanceCompanyID: employee.AmbulanceCompanyID,
	})
}

// LoginER authenticates an ER employee and returns a signed access token.
func (s *Service) LoginER(ctx context.Context, loginID, password string) (string, error) {
	employee, err := s.erEmployees.GetByLoginID(ctx, loginID)
	if err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}

	return s.issuer.Issue(&auth.Principal{
		EmployeeID:        employee.ID,
		Role:              auth.RoleER,
		HospitalID:        employee.HospitalID,
		EmergencyCenterID: employee.EmergencyCenterID,
	})
}

// HashPassword produces the bcrypt hash stored for an employee.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
