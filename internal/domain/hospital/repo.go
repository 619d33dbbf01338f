package hospital

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error)
	GetStaff(ctx context.Context, hospitalID, staffID uuid.UUID) (*HospitalStaff, error)
	ListStaff(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*HospitalStaff, int, error)
	GetBed(ctx context.Context, centerID, bedID uuid.UUID) (*EmergencyRoomBed, error)
	ListBeds(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*EmergencyRoomBed, int, error)
	// OccupyBed is a compare-and-swap AVAILABLE→OCCUPIED. Returns false if
	// the bed was not available, which is how a double-booking loses.
	OccupyBed(ctx context.Context, bedID, patientID uuid.UUID) (bool, error)
	AppendBedLog(ctx context.Context, log *BedLog) error
}
