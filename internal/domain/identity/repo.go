package identity

import (
	"context"

	"github.com/google/uuid"
)

type EmsEmployeeRepository interface {
	GetByLoginID(ctx context.Context, loginID string) (*EmsEmployee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EmsEmployee, error)
}

type ErEmployeeRepository interface {
	GetByLoginID(ctx context.Context, loginID string) (*ErEmployee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ErEmployee, error)
}

type AmbulanceCompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AmbulanceCompany, error)
}
