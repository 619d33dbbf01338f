package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/platform/apperr"
	"github.com/emslink/emslink/internal/platform/auth"
)

// -- Mock Repositories --

type mockEmsEmployeeRepo struct {
	byLogin map[string]*EmsEmployee
}

func (m *mockEmsEmployeeRepo) GetByLoginID(_ context.Context, loginID string) (*EmsEmployee, error) {
	e, ok := m.byLogin[loginID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return e, nil
}

func (m *mockEmsEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*EmsEmployee, error) {
	for _, e := range m.byLogin {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("no rows")
}

type mockErEmployeeRepo struct {
	byLogin map[string]*ErEmployee
}

func (m *mockErEmployeeRepo) GetByLoginID(_ context.Context, loginID string) (*ErEmployee, error) {
	e, ok := m.byLogin[loginID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return e, nil
}

func (m *mockErEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*ErEmployee, error) {
	for _, e := range m.byLogin {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("no rows")
}

func newTestService(t *testing.T) (*Service, *auth.TokenIssuer, *mockEmsEmployeeRepo, *mockErEmployeeRepo) {
	t.Helper()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), "emslink-test", time.Hour)
	emsRepo := &mockEmsEmployeeRepo{byLogin: make(map[string]*EmsEmployee)}
	erRepo := &mockErEmployeeRepo{byLogin: make(map[string]*ErEmployee)}
	return NewService(emsRepo, erRepo, issuer), issuer, emsRepo, erRepo
}

func TestLoginEMS_Success(t *testing.T) {
	svc, issuer, emsRepo, _ := newTestService(t)

	hash, err := HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	employee := &EmsEmployee{
		ID:                 uuid.New(),
		AmbulanceCompanyID: uuid.New(),
		LoginID:            "medic01",
		PasswordHash:       hash,
		Name:               "Kim",
	}
	emsRepo.byLogin["medic01"] = employee

	token, err := svc.LoginEMS(context.Background(), "medic01", "secret-pass")
	if err != nil {
		t.Fatalf("LoginEMS error: %v", err)
	}

	p, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("token verify error: %v", err)
	}
	if p.Role != auth.RoleEMS {
		t.Errorf("role = %v, want ems", p.Role)
	}
	if p.EmployeeID != employee.ID {
		t.Errorf("employee id = %v, want %v", p.EmployeeID, employee.ID)
	}
	if p.AmbulanceCompanyID != employee.AmbulanceCompanyID {
		t.Errorf("company id = %v, want %v", p.AmbulanceCompanyID, employee.AmbulanceCompanyID)
	}
}

func TestLoginEMS_WrongPassword(t *testing.T) {
	svc, _, emsRepo, _ := newTestService(t)

	hash, _ := HashPassword("right-pass")
	emsRepo.byLogin["medic01"] = &EmsEmployee{ID: uuid.New(), LoginID: "medic01", PasswordHash: hash}

	_, err := svc.LoginEMS(context.Background(), "medic01", "wrong-pass")
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginEMS_UnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.LoginEMS(context.Background(), "nobody", "whatever")
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginER_Success(t *testing.T) {
	svc, issuer, _, erRepo := newTestService(t)

	hash, _ := HashPassword("er-pass")
	employee := &ErEmployee{
		ID:                uuid.New(),
		HospitalID:        uuid.New(),
		EmergencyCenterID: uuid.New(),
		LoginID:           "nurse07",
		PasswordHash:      hash,
	}
	erRepo.byLogin["nurse07"] = employee

	token, err := svc.LoginER(context.Background(), "nurse07", "er-pass")
	if err != nil {
		t.Fatalf("LoginER error: %v", err)
	}

	p, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("token verify error: %v", err)
	}
	if p.Role != auth.RoleER {
		t.Errorf("role = %v, want er", p.Role)
	}
	if p.HospitalID != employee.HospitalID {
		t.Errorf("hospital = %v, want %v", p.HospitalID, employee.HospitalID)
	}
	if p.EmergencyCenterID != employee.EmergencyCenterID {
		t.Errorf("center = %v, want %v", p.EmergencyCenterID, employee.EmergencyCenterID)
	}
}
