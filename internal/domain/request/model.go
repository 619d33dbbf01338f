package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/domain/emspatient"
)

// Status is the lifecycle of one (patient, center) request row.
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusViewed    Status = "VIEWED"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether the row accepts no further response. REJECTED is
// deliberately non-terminal: a center may revise a reject while the patient
// is still unassigned. ACCEPTED never flips back.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusCanceled || s == StatusCompleted
}

// EmsToErRequest maps to the ems_to_er_request table: one row per
// (patient, emergency center) pair created at fan-out time. Distance is
// computed once at creation and frozen.
type EmsToErRequest struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	EmergencyCenterID uuid.UUID `db:"emergency_center_id" json:"emergency_center_id"`
	Distance          float64   `db:"distance" json:"distance"`
	Status            Status    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// RequestPatient maps to the request_patient table: a snapshot of the EMS
// patient shared by every request row of one fan-out, so receiving centers
// see the same picture the dispatching crew sent.
type RequestPatient struct {
	PatientID            uuid.UUID           `db:"patient_id" json:"patient_id"`
	Name                 string              `db:"name" json:"name"`
	Birth                *time.Time          `db:"birth" json:"birth,omitempty"`
	Gender               emspatient.Gender   `db:"gender" json:"gender"`
	Severity             emspatient.Severity `db:"severity" json:"severity"`
	AmbulanceCompanyName string              `db:"ambulance_company_name" json:"ambulance_company_name"`
	CreatedAt            time.Time           `db:"created_at" json:"created_at"`
}

// RequestWithPatient is the ER-side list view: a request row joined with its
// shared patient snapshot.
type RequestWithPatient struct {
	EmsToErRequest
	Patient RequestPatient `json:"patient"`
}

// Candidate is one in-range emergency center returned to the dispatching
// crew after a fan-out.
type Candidate struct {
	EmergencyCenterID uuid.UUID `json:"emergency_center_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Distance          float64   `json:"distance"`
}

// CreateResult is what CreateRequest hands back to the caller.
type CreateResult struct {
	PatientID  uuid.UUID   `json:"patient_id"`
	Candidates []Candidate `json:"candidates"`
}
