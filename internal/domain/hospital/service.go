// Package hospital tracks ER-side resources: staff, emergency room beds and
// their occupancy log. The admission workflow consumes it through narrow
// gateway interfaces rather than calling across domains directly.
package hospital

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emslink/emslink/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ValidateDoctor checks that the staff member exists under the hospital and
// may take the doctor slot of an admission.
func (s *Service) ValidateDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) error {
	staff, err := s.repo.GetStaff(ctx, hospitalID, doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.DoctorNotExist()
		}
		return err
	}
	if !staff.Role.IsDoctor() {
		return apperr.DoctorNotExist()
	}
	return nil
}

// ValidateNurse checks that the staff member exists under the hospital and
// is a nurse.
func (s *Service) ValidateNurse(ctx context.Context, hospitalID, nurseID uuid.UUID) error {
	staff, err := s.repo.GetStaff(ctx, hospitalID, nurseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NurseNotExist()
		}
		return err
	}
	if staff.Role != RoleNurse {
		return apperr.NurseNotExist()
	}
	return nil
}

// GetBed looks a bed up under the caller's emergency center.
func (s *Service) GetBed(ctx context.Context, centerID, bedID uuid.UUID) (*EmergencyRoomBed, error) {
	bed, err := s.repo.GetBed(ctx, centerID, bedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.EmergencyBedNotFound()
		}
		return nil, err
	}
	return bed, nil
}

// OccupyBed flips the bed AVAILABLE→OCCUPIED for the admitted patient and
// appends the bed log entry. The conditional update arbitrates concurrent
// admissions targeting the same bed: the loser gets ErBedNotAvailable. Runs
// inside the caller's transaction when one is bound to the context.
func (s *Service) OccupyBed(ctx context.Context, bedID, patientID uuid.UUID) error {
	occupied, err := s.repo.OccupyBed(ctx, bedID, patientID)
	if err != nil {
		return err
	}
	if !occupied {
		return apperr.ErBedNotAvailable()
	}
	return s.repo.AppendBedLog(ctx, &BedLog{
		BedID:       bedID,
		Status:      BedOccupied,
		ErPatientID: &patientID,
	})
}

func (s *Service) ListBeds(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*EmergencyRoomBed, int, error) {
	return s.repo.ListBeds(ctx, centerID, limit, offset)
}

func (s *Service) ListStaff(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*HospitalStaff, int, error) {
	return s.repo.ListStaff(ctx, hospitalID, limit, offset)
}
