package request

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateMany persists one fan-out worth of request rows. Callers group
	// it with the patient-status flip in a single transaction.
	CreateMany(ctx context.Context, reqs []*EmsToErRequest) error
	// UpsertRequestPatient writes the shared patient snapshot for a fan-out,
	// replacing any snapshot left over from an earlier, canceled fan-out.
	UpsertRequestPatient(ctx context.Context, rp *RequestPatient) error
	GetByPatientAndCenter(ctx context.Context, patientID, centerID uuid.UUID) (*EmsToErRequest, error)
	GetRequestPatient(ctx context.Context, patientID uuid.UUID) (*RequestPatient, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to Status) error
	// CompleteSiblings closes every non-terminal row for the patient except
	// the winning center's.
	CompleteSiblings(ctx context.Context, patientID, excludeCenterID uuid.UUID) error
	// MarkViewed bulk-moves REQUESTED rows to VIEWED. Rows in any other
	// status are left untouched.
	MarkViewed(ctx context.Context, ids []uuid.UUID) error
	ListByCenter(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*RequestWithPatient, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*EmsToErRequest, error)
}
