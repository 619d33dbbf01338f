package emspatient

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// CreatePatient registers a new EMS patient record owned by the calling
// employee. New records always start PENDING.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.EmsEmployeeID == uuid.Nil {
		return fmt.Errorf("ems_employee_id is required")
	}
	if p.AmbulanceCompanyID == uuid.Nil {
		return fmt.Errorf("ambulance_company_id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Gender == "" {
		p.Gender = GenderUnknown
	}
	if p.Severity == "" {
		p.Severity = SeverityUnknown
	}
	p.Status = StatusPending
	return s.repo.Create(ctx, p)
}

// AddAssessment appends a clinical snapshot to a patient record. Only the
// employee who created the record may append to it; foreign records read as
// not found so record IDs stay unguessable.
func (s *Service) AddAssessment(ctx context.Context, a *Assessment, employeeID uuid.UUID) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !ValidAssessmentType(a.Type) {
		return fmt.Errorf("unknown assessment type %q", a.Type)
	}
	if len(a.Fields) == 0 {
		return fmt.Errorf("fields are required")
	}
	if _, err := s.getOwned(ctx, a.PatientID, employeeID); err != nil {
		return err
	}
	if a.RecordedAt.IsZero() {
		a.RecordedAt = time.Now()
	}
	return s.repo.AddAssessment(ctx, a)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// getOwned loads a patient and verifies the caller created it. Both a
// missing row and an ownership mismatch come back as PatientNotFound.
func (s *Service) getOwned(ctx context.Context, id, employeeID uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.PatientNotFound()
		}
		return nil, err
	}
	if p.EmsEmployeeID != employeeID {
		return nil, apperr.PatientNotFound()
	}
	return p, nil
}

// GetPatientDetail returns the patient together with all recorded
// assessments, ordered by recording time. Used by the admission workflow,
// which reads across crews; the HTTP surface goes through
// GetPatientDetailForEmployee instead.
func (s *Service) GetPatientDetail(ctx context.Context, id uuid.UUID) (*Patient, []*Assessment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	assessments, err := s.repo.ListAssessments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, assessments, nil
}

// GetPatientDetailForEmployee is GetPatientDetail scoped to the record
// owner. Records created by another employee read as not found.
func (s *Service) GetPatientDetailForEmployee(ctx context.Context, id, employeeID uuid.UUID) (*Patient, []*Assessment, error) {
	p, err := s.getOwned(ctx, id, employeeID)
	if err != nil {
		return nil, nil, err
	}
	assessments, err := s.repo.ListAssessments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, assessments, nil
}

func (s *Service) ListPatients(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListByEmployee(ctx, employeeID, limit, offset)
}

// Complete closes an EMS record whose patient has been admitted to an ER.
// Compare-and-swap from ACCEPTED: returns false if another admission got
// there first. Runs inside the caller's transaction when one is bound to
// the context.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.UpdateStatus(ctx, id, []Status{StatusAccepted}, StatusCompleted)
}
