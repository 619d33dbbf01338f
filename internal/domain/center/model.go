package center

import (
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/platform/geo"
)

// Type classifies an emergency center by capability level.
type Type string

const (
	TypeRegional Type = "REGIONAL" // regional emergency medical center
	TypeLocal    Type = "LOCAL"    // local emergency medical center
	TypeFacility Type = "FACILITY" // emergency medical facility
)

// EmergencyCenter maps to the emergency_center table. Reference data: rows
// are read by the routing workflow, never written by it.
type EmergencyCenter struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Name       string    `db:"name" json:"name"`
	Type       Type      `db:"type" json:"type"`
	Address    string    `db:"address" json:"address"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Latitude   float64   `db:"latitude" json:"latitude"`
	Longitude  float64   `db:"longitude" json:"longitude"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Location implements geo.Locatable so centers can be distance-ranked.
func (c *EmergencyCenter) Location() geo.Point {
	return geo.Point{Lat: c.Latitude, Lon: c.Longitude}
}
