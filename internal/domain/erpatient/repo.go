package erpatient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateAdmission inserts the ER patient, guardian, narrative and
	// hospital linkage. Callers group it with the bed and status updates in
	// a single transaction.
	CreateAdmission(ctx context.Context, rec *AdmissionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*ErPatient, error)
	ListByCenter(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*ErPatient, int, error)
	ListLogs(ctx context.Context, erPatientID uuid.UUID) ([]*PatientLog, error)
}
