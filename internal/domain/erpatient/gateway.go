package erpatient

import (
	"context"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/domain/emspatient"
	"github.com/emslink/emslink/internal/domain/hospital"
	"github.com/emslink/emslink/internal/domain/request"
)

// The admission workflow spans three other domains. Rather than calling
// their services directly it consumes these gateways, which the services
// satisfy structurally; the coupling stays visible and mockable here.

// RequestGateway gates admission on the accepted routing request and closes
// it afterwards. request.Service satisfies it.
type RequestGateway interface {
	FindAccepted(ctx context.Context, patientID, centerID uuid.UUID) (*request.EmsToErRequest, error)
	Complete(ctx context.Context, requestID uuid.UUID) error
}

// EmsRecordGateway loads the EMS clinical record being admitted and closes
// it once the ER record exists. emspatient.Service satisfies it.
type EmsRecordGateway interface {
	GetPatientDetail(ctx context.Context, id uuid.UUID) (*emspatient.Patient, []*emspatient.Assessment, error)
	Complete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BedStateGateway owns bed lookup and the AVAILABLE→OCCUPIED transition.
// hospital.Service satisfies it.
type BedStateGateway interface {
	GetBed(ctx context.Context, centerID, bedID uuid.UUID) (*hospital.EmergencyRoomBed, error)
	OccupyBed(ctx context.Context, bedID, patientID uuid.UUID) error
}

// StaffDirectory validates the staff taking the admission. hospital.Service
// satisfies it.
type StaffDirectory interface {
	ValidateDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error
	ValidateNurse(ctx context.Context, hospitalID, nurseID uuid.UUID) error
}
