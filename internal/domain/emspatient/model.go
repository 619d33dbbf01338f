package emspatient

import (
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/platform/geo"
)

// Status is the EMS-side patient state machine. Transitions only move
// forward: PENDING → REQUESTED → ACCEPTED → COMPLETED. Rows are never
// deleted.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRequested Status = "REQUESTED"
	StatusAccepted  Status = "ACCEPTED"
	StatusCompleted Status = "COMPLETED"
)

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

type Severity string

const (
	SeveritySevere  Severity = "SEVERE"
	SeverityMild    Severity = "MILD"
	SeverityNone    Severity = "NONE"
	SeverityUnknown Severity = "UNKNOWN"
)

// Patient maps to the ems_patient table. Owned by the EMS employee who
// created it; status is mutated only through the request workflows.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	EmsEmployeeID      uuid.UUID  `db:"ems_employee_id" json:"ems_employee_id"`
	AmbulanceCompanyID uuid.UUID  `db:"ambulance_company_id" json:"ambulance_company_id"`
	Name               string     `db:"name" json:"name"`
	Birth              *time.Time `db:"birth" json:"birth,omitempty"`
	IdentityNumber     *string    `db:"identity_number" json:"identity_number,omitempty"`
	Gender             Gender     `db:"gender" json:"gender"`
	Phone              *string    `db:"phone" json:"phone,omitempty"`
	Address            *string    `db:"address" json:"address,omitempty"`
	Severity           Severity   `db:"severity" json:"severity"`
	Latitude           float64    `db:"latitude" json:"latitude"`
	Longitude          float64    `db:"longitude" json:"longitude"`
	Status             Status     `db:"status" json:"status"`
	GuardianName       *string    `db:"guardian_name" json:"guardian_name,omitempty"`
	GuardianPhone      *string    `db:"guardian_phone" json:"guardian_phone,omitempty"`
	GuardianRelation   *string    `db:"guardian_relation" json:"guardian_relation,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Location implements geo.Locatable; the routing workflow ranks emergency
// centers around this point.
func (p *Patient) Location() geo.Point {
	return geo.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// AssessmentType tags one clinical snapshot protocol.
type AssessmentType string

const (
	AssessmentRAPID    AssessmentType = "RAPID"
	AssessmentABCDE    AssessmentType = "ABCDE"
	AssessmentVS       AssessmentType = "VS"
	AssessmentOPQRST   AssessmentType = "OPQRST"
	AssessmentSAMPLE   AssessmentType = "SAMPLE"
	AssessmentDCAPBTLS AssessmentType = "DCAP_BTLS"
)

// AssessmentFieldOrder fixes the rendering order of each protocol's fields
// so synthesized log text is deterministic.
var AssessmentFieldOrder = map[AssessmentType][]string{
	AssessmentRAPID:    {"trauma", "consciousness", "skin"},
	AssessmentABCDE:    {"airway", "breathing", "circulation", "disability", "exposure"},
	AssessmentVS:       {"heart_rate", "blood_pressure", "temperature", "respiratory_rate", "oxygen_saturation"},
	AssessmentOPQRST:   {"onset", "provocation", "quality", "radiation", "severity", "time"},
	AssessmentSAMPLE:   {"symptoms", "allergies", "medications", "history", "last_intake"},
	AssessmentDCAPBTLS: {"deformities", "contusions", "abrasions", "punctures", "burns", "tenderness", "lacerations", "swelling"},
}

// ValidAssessmentType reports whether t names a known protocol.
func ValidAssessmentType(t AssessmentType) bool {
	_, ok := AssessmentFieldOrder[t]
	return ok
}

// Assessment maps to the ems_assessment table: one timestamped clinical
// snapshot of the given protocol type.
type Assessment struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	PatientID  uuid.UUID         `db:"patient_id" json:"patient_id"`
	Type       AssessmentType    `db:"type" json:"type"`
	Fields     map[string]string `db:"fields" json:"fields"`
	RecordedAt time.Time         `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}
