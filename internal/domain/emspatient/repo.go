package emspatient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	// FindPendingByEmployee returns the employee's most recent PENDING
	// patient, or a not-found error.
	FindPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (*Patient, error)
	// UpdateStatus is a compare-and-swap: the row moves to `to` only if its
	// current status is one of `from`. Returns false if no row matched,
	// which is how concurrent workflow instances lose the race.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []Status, to Status) (bool, error)
	AddAssessment(ctx context.Context, a *Assessment) error
	ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error)
}
