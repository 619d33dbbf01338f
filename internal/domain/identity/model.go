package identity

import (
	"time"

	"github.com/google/uuid"
)

// EmsEmployee maps to the ems_employee table.
type EmsEmployee struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	AmbulanceCompanyID uuid.UUID `db:"ambulance_company_id" json:"ambulance_company_id"`
	LoginID            string    `db:"login_id" json:"login_id"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	Name               string    `db:"name" json:"name"`
	Phone              *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ErEmployee maps to the er_employee table.
type ErEmployee struct {
	ID                uuid.UUID `db:"id" json:"id"`
	HospitalID        uuid.UUID `db:"hospital_id" json:"hospital_id"`
	EmergencyCenterID uuid.UUID `db:"emergency_center_id" json:"emergency_center_id"`
	LoginID           string    `db:"login_id" json:"login_id"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	Name              string    `db:"name" json:"name"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// AmbulanceCompany maps to the ambulance_company table.
type AmbulanceCompany struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
