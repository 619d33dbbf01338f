// Package erpatient implements the admission workflow: once an emergency
// center has accepted a routing request, it assigns a bed, doctor and nurse
// and migrates the EMS clinical record into an ER patient record.
package erpatient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emslink/emslink/internal/domain/hospital"
	"github.com/emslink/emslink/internal/platform/apperr"
	"github.com/emslink/emslink/internal/platform/auth"
	"github.com/emslink/emslink/internal/platform/db"
)

type Service struct {
	repo     Repository
	requests RequestGateway
	ems      EmsRecordGateway
	beds     BedStateGateway
	staff    StaffDirectory
	logger   zerolog.Logger

	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
	now   func() time.Time
}

func NewService(repo Repository, requests RequestGateway, ems EmsRecordGateway,
	beds BedStateGateway, staff StaffDirectory, pool *pgxpool.Pool, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		requests: requests,
		ems:      ems,
		beds:     beds,
		staff:    staff,
		logger:   logger,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		},
		now: time.Now,
	}
}

// Assign admits the EMS patient into the caller's emergency center.
// Preconditions are checked in order, short-circuiting on the first failure;
// nothing is written until all pass. The commit is one transaction: ER
// patient with guardian, narrative and hospital linkage, bed
// AVAILABLE→OCCUPIED with its log entry, EMS patient → COMPLETED, request
// row → COMPLETED.
func (s *Service) Assign(ctx context.Context, principal *auth.Principal,
	emsPatientID, bedID, doctorID, nurseID uuid.UUID) (*ErPatient, error) {

	req, err := s.requests.FindAccepted(ctx, emsPatientID, principal.EmergencyCenterID)
	if err != nil {
		return nil, err
	}
	src, assessments, err := s.ems.GetPatientDetail(ctx, emsPatientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.RequestPatientNotExist()
		}
		return nil, err
	}
	bed, err := s.beds.GetBed(ctx, principal.EmergencyCenterID, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != hospital.BedAvailable {
		return nil, apperr.ErBedNotAvailable()
	}
	if err := s.staff.ValidateDoctor(ctx, principal.HospitalID, doctorID); err != nil {
		return nil, err
	}
	if err := s.staff.ValidateNurse(ctx, principal.HospitalID, nurseID); err != nil {
		return nil, err
	}

	rec := BuildAdmissionRecord(src, assessments,
		principal.HospitalID, principal.EmergencyCenterID, principal.EmployeeID,
		bedID, doctorID, nurseID, s.now())

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateAdmission(ctx, rec); err != nil {
			return err
		}
		// The conditional update re-arbitrates the bed inside the
		// transaction; the precondition check above only fails fast.
		if err := s.beds.OccupyBed(ctx, bedID, rec.Patient.ID); err != nil {
			return err
		}
		completed, err := s.ems.Complete(ctx, emsPatientID)
		if err != nil {
			return err
		}
		if !completed {
			return apperr.RequestAlreadyProcessed()
		}
		return s.requests.Complete(ctx, req.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("er_patient_id", rec.Patient.ID.String()).
		Str("ems_patient_id", emsPatientID.String()).
		Str("bed_id", bedID.String()).
		Msg("patient admitted")
	return rec.Patient, nil
}

// GetPatientDetail returns the ER record with its full narrative, scoped to
// the caller's emergency center. Records admitted elsewhere read as not
// found.
func (s *Service) GetPatientDetail(ctx context.Context, id, centerID uuid.UUID) (*ErPatient, []*PatientLog, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.PatientNotFound()
		}
		return nil, nil, err
	}
	if p.EmergencyCenterID != centerID {
		return nil, nil, apperr.PatientNotFound()
	}
	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, logs, nil
}

func (s *Service) ListPatients(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*ErPatient, int, error) {
	return s.repo.ListByCenter(ctx, centerID, limit, offset)
}
