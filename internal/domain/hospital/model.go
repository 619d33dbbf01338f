package hospital

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole is the clinical role of one hospital staff member. Admission
// requires a doctor (RESIDENT or SPECIALIST) and a NURSE.
type StaffRole string

const (
	RoleResident   StaffRole = "RESIDENT"
	RoleSpecialist StaffRole = "SPECIALIST"
	RoleNurse      StaffRole = "NURSE"
)

// IsDoctor reports whether the role may take the doctor slot of an
// admission.
func (r StaffRole) IsDoctor() bool {
	return r == RoleResident || r == RoleSpecialist
}

// Hospital maps to the hospital table. Reference data.
type Hospital struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HospitalStaff maps to the hospital_staff table.
type HospitalStaff struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Name       string    `db:"name" json:"name"`
	Role       StaffRole `db:"role" json:"role"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// BedStatus is the occupancy state of one emergency room bed.
type BedStatus string

const (
	BedAvailable BedStatus = "AVAILABLE"
	BedOccupied  BedStatus = "OCCUPIED"
)

// EmergencyRoomBed maps to the emergency_room_bed table. Status moves
// AVAILABLE→OCCUPIED exactly once per admission, through a conditional
// update, with a paired BedLog row.
type EmergencyRoomBed struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	EmergencyCenterID uuid.UUID  `db:"emergency_center_id" json:"emergency_center_id"`
	RoomNumber        int        `db:"room_number" json:"room_number"`
	BedNumber         int        `db:"bed_number" json:"bed_number"`
	Status            BedStatus  `db:"status" json:"status"`
	ErPatientID       *uuid.UUID `db:"er_patient_id" json:"er_patient_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// BedLog maps to the bed_log table: append-only record of every bed status
// transition and the patient it concerned.
type BedLog struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	BedID       uuid.UUID  `db:"bed_id" json:"bed_id"`
	Status      BedStatus  `db:"status" json:"status"`
	ErPatientID *uuid.UUID `db:"er_patient_id" json:"er_patient_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
