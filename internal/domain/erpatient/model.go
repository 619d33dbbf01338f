package erpatient

import (
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/domain/emspatient"
)

// ErPatient maps to the er_patient table. Created only by the admission
// workflow as a transformation of the EMS record; owned by the receiving
// hospital afterwards.
type ErPatient struct {
	ID                uuid.UUID           `db:"id" json:"id"`
	HospitalID        uuid.UUID           `db:"hospital_id" json:"hospital_id"`
	EmergencyCenterID uuid.UUID           `db:"emergency_center_id" json:"emergency_center_id"`
	EmsPatientID      uuid.UUID           `db:"ems_patient_id" json:"ems_patient_id"`
	Name              string              `db:"name" json:"name"`
	Birth             *time.Time          `db:"birth" json:"birth,omitempty"`
	IdentityNumber    *string             `db:"identity_number" json:"identity_number,omitempty"`
	Gender            emspatient.Gender   `db:"gender" json:"gender"`
	Phone             *string             `db:"phone" json:"phone,omitempty"`
	Address           *string             `db:"address" json:"address,omitempty"`
	Severity          emspatient.Severity `db:"severity" json:"severity"`
	BedID             uuid.UUID           `db:"bed_id" json:"bed_id"`
	DoctorID          uuid.UUID           `db:"doctor_id" json:"doctor_id"`
	NurseID           uuid.UUID           `db:"nurse_id" json:"nurse_id"`
	AdmittedByID      uuid.UUID           `db:"admitted_by_id" json:"admitted_by_id"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at" json:"updated_at"`
}

// Guardian maps to the guardian table.
type Guardian struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ErPatientID uuid.UUID `db:"er_patient_id" json:"er_patient_id"`
	Name        string    `db:"name" json:"name"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Relation    *string   `db:"relation" json:"relation,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PatientLog maps to the patient_log table: the ordered clinical narrative
// synthesized at admission from the EMS assessments, plus whatever the ER
// appends afterwards.
type PatientLog struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ErPatientID uuid.UUID `db:"er_patient_id" json:"er_patient_id"`
	Seq         int       `db:"seq" json:"seq"`
	Category    string    `db:"category" json:"category"`
	Message     string    `db:"message" json:"message"`
	EmployeeID  uuid.UUID `db:"employee_id" json:"employee_id"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// LinkStatus is the hospital_patient linkage state.
type LinkStatus string

const (
	LinkAdmission LinkStatus = "ADMISSION"
)

// HospitalPatient maps to the hospital_patient table.
type HospitalPatient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	HospitalID  uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	ErPatientID uuid.UUID  `db:"er_patient_id" json:"er_patient_id"`
	Status      LinkStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// AdmissionRecord is everything one admission writes, built by the pure
// transformation step and committed in a single transaction.
type AdmissionRecord struct {
	Patient  *ErPatient
	Guardian *Guardian // nil when the EMS record carries none
	Logs     []*PatientLog
	Link     *HospitalPatient
}
