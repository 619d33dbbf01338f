package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emslink/emslink/internal/domain/center"
	"github.com/emslink/emslink/internal/domain/emspatient"
	"github.com/emslink/emslink/internal/domain/identity"
	"github.com/emslink/emslink/internal/platform/apperr"
	"github.com/emslink/emslink/internal/platform/db"
	"github.com/emslink/emslink/internal/platform/geo"
	"github.com/emslink/emslink/internal/platform/notify"
)

// PatientStore is the slice of the EMS patient repository the routing
// workflow needs. emspatient.Repository satisfies it.
type PatientStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*emspatient.Patient, error)
	FindPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (*emspatient.Patient, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from []emspatient.Status, to emspatient.Status) (bool, error)
}

// CenterDirectory lists the candidate emergency centers.
type CenterDirectory interface {
	ListAll(ctx context.Context) ([]*center.EmergencyCenter, error)
}

// CompanyDirectory resolves the dispatching ambulance company.
type CompanyDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.AmbulanceCompany, error)
}

type Service struct {
	repo      Repository
	patients  PatientStore
	centers   CenterDirectory
	companies CompanyDirectory
	notifier  *notify.Async
	radius    float64
	logger    zerolog.Logger

	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(repo Repository, patients PatientStore, centers CenterDirectory,
	companies CompanyDirectory, pool *pgxpool.Pool, notifier *notify.Async,
	radiusMeters float64, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		centers:   centers,
		companies: companies,
		notifier:  notifier,
		radius:    radiusMeters,
		logger:    logger,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		},
	}
}

type requestCreatedEvent struct {
	RequestID            uuid.UUID           `json:"request_id"`
	PatientID            uuid.UUID           `json:"patient_id"`
	EmergencyCenterID    uuid.UUID           `json:"emergency_center_id"`
	Distance             float64             `json:"distance"`
	PatientName          string              `json:"patient_name"`
	Severity             emspatient.Severity `json:"severity"`
	AmbulanceCompanyName string              `json:"ambulance_company_name"`
}

type requestRespondedEvent struct {
	RequestID         uuid.UUID `json:"request_id"`
	PatientID         uuid.UUID `json:"patient_id"`
	EmergencyCenterID uuid.UUID `json:"emergency_center_id"`
	Status            Status    `json:"status"`
}

// CreateRequest fans the employee's current PENDING patient out to every
// emergency center within the configured radius: one request row per
// candidate plus a shared patient snapshot, committed together with the
// patient's PENDING→REQUESTED flip. Candidate centers are notified after
// commit, fire-and-forget.
func (s *Service) CreateRequest(ctx context.Context, emsEmployeeID, companyID uuid.UUID) (*CreateResult, error) {
	patient, err := s.patients.FindPendingByEmployee(ctx, emsEmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.PendingPatientNotFound()
		}
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.AmbulanceCompanyNotFound()
		}
		return nil, err
	}

	centers, err := s.centers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	inRange := geo.FilterWithinRadius(geo.RankByDistance(patient.Location(), centers), s.radius)

	result := &CreateResult{PatientID: patient.ID, Candidates: make([]Candidate, 0, len(inRange))}
	if len(inRange) == 0 {
		// Nothing to fan out; the patient stays PENDING so the crew can
		// retry from a different location.
		return result, nil
	}

	reqs := make([]*EmsToErRequest, 0, len(inRange))
	for _, c := range inRange {
		reqs = append(reqs, &EmsToErRequest{
			PatientID:         patient.ID,
			EmergencyCenterID: c.Candidate.ID,
			Distance:          c.Distance,
			Status:            StatusRequested,
		})
		result.Candidates = append(result.Candidates, Candidate{
			EmergencyCenterID: c.Candidate.ID,
			Name:              c.Candidate.Name,
			Address:           c.Candidate.Address,
			Distance:          c.Distance,
		})
	}
	snapshot := &RequestPatient{
		PatientID:            patient.ID,
		Name:                 patient.Name,
		Birth:                patient.Birth,
		Gender:               patient.Gender,
		Severity:             patient.Severity,
		AmbulanceCompanyName: company.Name,
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpsertRequestPatient(ctx, snapshot); err != nil {
			return err
		}
		if err := s.repo.CreateMany(ctx, reqs); err != nil {
			return err
		}
		moved, err := s.patients.UpdateStatus(ctx, patient.ID,
			[]emspatient.Status{emspatient.StatusPending}, emspatient.StatusRequested)
		if err != nil {
			return err
		}
		if !moved {
			// Another instance already dispatched this patient.
			return apperr.RequestAlreadyProcessed()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, req := range reqs {
		s.notifier.Publish(notify.TopicRequestCreated, req.EmergencyCenterID.String(), requestCreatedEvent{
			RequestID:            req.ID,
			PatientID:            req.PatientID,
			EmergencyCenterID:    req.EmergencyCenterID,
			Distance:             req.Distance,
			PatientName:          patient.Name,
			Severity:             patient.Severity,
			AmbulanceCompanyName: company.Name,
		})
	}
	return result, nil
}

// Respond records an emergency center's accept or reject of its request row.
// Acceptance is arbitrated on the patient row: the conditional
// REQUESTED→ACCEPTED update commits for exactly one center, and that
// transaction also closes every sibling row as COMPLETED. A losing accept,
// or any response to a terminal row, fails with RequestAlreadyProcessed.
func (s *Service) Respond(ctx context.Context, centerID, patientID uuid.UUID, decision Status) error {
	if decision != StatusAccepted && decision != StatusRejected {
		return apperr.New(apperr.KindInternal, "decision must be ACCEPTED or REJECTED")
	}
	req, err := s.repo.GetByPatientAndCenter(ctx, patientID, centerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.RequestNotFound()
		}
		return err
	}
	if req.Status.Terminal() {
		return apperr.RequestAlreadyProcessed()
	}

	if decision == StatusRejected {
		if err := s.repo.UpdateStatus(ctx, req.ID, StatusRejected); err != nil {
			return err
		}
	} else {
		err = s.runTx(ctx, func(ctx context.Context) error {
			won, err := s.patients.UpdateStatus(ctx, patientID,
				[]emspatient.Status{emspatient.StatusRequested}, emspatient.StatusAccepted)
			if err != nil {
				return err
			}
			if !won {
				return apperr.RequestAlreadyProcessed()
			}
			if err := s.repo.UpdateStatus(ctx, req.ID, StatusAccepted); err != nil {
				return err
			}
			return s.repo.CompleteSiblings(ctx, patientID, centerID)
		})
		if err != nil {
			return err
		}
	}

	s.notifier.Publish(notify.TopicRequestResponded, patientID.String(), requestRespondedEvent{
		RequestID:         req.ID,
		PatientID:         patientID,
		EmergencyCenterID: centerID,
		Status:            decision,
	})
	return nil
}

// MarkViewed is best effort: a failure is logged, never surfaced.
func (s *Service) MarkViewed(ctx context.Context, ids []uuid.UUID) {
	if err := s.repo.MarkViewed(ctx, ids); err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("mark viewed failed")
	}
}

// ListForCenter returns the center's inbox and marks freshly delivered rows
// VIEWED, best effort.
func (s *Service) ListForCenter(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*RequestWithPatient, int, error) {
	items, total, err := s.repo.ListByCenter(ctx, centerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var fresh []uuid.UUID
	for _, item := range items {
		if item.Status == StatusRequested {
			fresh = append(fresh, item.ID)
		}
	}
	if len(fresh) > 0 {
		s.MarkViewed(ctx, fresh)
	}
	return items, total, nil
}

// ListForPatient returns the fan-out for one patient, scoped to the EMS
// employee who owns the record. Foreign patients read as not found.
func (s *Service) ListForPatient(ctx context.Context, patientID, emsEmployeeID uuid.UUID) ([]*EmsToErRequest, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.PatientNotFound()
		}
		return nil, err
	}
	if patient.EmsEmployeeID != emsEmployeeID {
		return nil, apperr.PatientNotFound()
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// FindAccepted returns the ACCEPTED request row for (patient, center), or
// RequestNotFound. The admission workflow gates on it.
func (s *Service) FindAccepted(ctx context.Context, patientID, centerID uuid.UUID) (*EmsToErRequest, error) {
	req, err := s.repo.GetByPatientAndCenter(ctx, patientID, centerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.RequestNotFound()
		}
		return nil, err
	}
	if req.Status != StatusAccepted {
		return nil, apperr.RequestNotFound()
	}
	return req, nil
}

// Complete closes a request row once its patient has been admitted. Runs
// inside the caller's transaction when one is bound to the context.
func (s *Service) Complete(ctx context.Context, requestID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, requestID, StatusCompleted)
}
