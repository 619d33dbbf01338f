package hospital

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emslink/emslink/internal/platform/apperr"
)

type mockRepo struct {
	staff map[uuid.UUID]*HospitalStaff
	beds  map[uuid.UUID]*EmergencyRoomBed
	logs  []*BedLog
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		staff: make(map[uuid.UUID]*HospitalStaff),
		beds:  make(map[uuid.UUID]*EmergencyRoomBed),
	}
}

func (m *mockRepo) GetHospital(_ context.Context, _ uuid.UUID) (*Hospital, error) {
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) GetStaff(_ context.Context, hospitalID, staffID uuid.UUID) (*HospitalStaff, error) {
	s, ok := m.staff[staffID]
	if !ok || s.HospitalID != hospitalID {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockRepo) ListStaff(_ context.Context, hospitalID uuid.UUID, _, _ int) ([]*HospitalStaff, int, error) {
	var items []*HospitalStaff
	for _, s := range m.staff {
		if s.HospitalID == hospitalID {
			items = append(items, s)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) GetBed(_ context.Context, centerID, bedID uuid.UUID) (*EmergencyRoomBed, error) {
	b, ok := m.beds[bedID]
	if !ok || b.EmergencyCenterID != centerID {
		return nil, pgx.ErrNoRows
	}
	return b, nil
}

func (m *mockRepo) ListBeds(_ context.Context, centerID uuid.UUID, _, _ int) ([]*EmergencyRoomBed, int, error) {
	var items []*EmergencyRoomBed
	for _, b := range m.beds {
		if b.EmergencyCenterID == centerID {
			items = append(items, b)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) OccupyBed(_ context.Context, bedID, patientID uuid.UUID) (bool, error) {
	b, ok := m.beds[bedID]
	if !ok || b.Status != BedAvailable {
		return false, nil
	}
	b.Status = BedOccupied
	b.ErPatientID = &patientID
	return true, nil
}

func (m *mockRepo) AppendBedLog(_ context.Context, log *BedLog) error {
	log.ID = uuid.New()
	m.logs = append(m.logs, log)
	return nil
}

func TestValidateDoctor(t *testing.T) {
	repo := newMockRepo()
	hospitalID := uuid.New()
	resident := &HospitalStaff{ID: uuid.New(), HospitalID: hospitalID, Name: "Park", Role: RoleResident}
	nurse := &HospitalStaff{ID: uuid.New(), HospitalID: hospitalID, Name: "Choi", Role: RoleNurse}
	repo.staff[resident.ID] = resident
	repo.staff[nurse.ID] = nurse

	svc := NewService(repo)
	if err := svc.ValidateDoctor(context.Background(), hospitalID, resident.ID); err != nil {
		t.Errorf("resident: %v", err)
	}
	if err := svc.ValidateDoctor(context.Background(), hospitalID, nurse.ID); !errors.Is(err, apperr.DoctorNotExist()) {
		t.Errorf("nurse as doctor err = %v, want DoctorNotExist", err)
	}
	if err := svc.ValidateDoctor(context.Background(), hospitalID, uuid.New()); !errors.Is(err, apperr.DoctorNotExist()) {
		t.Errorf("missing staff err = %v, want DoctorNotExist", err)
	}
	// Staff of another hospital are invisible.
	if err := svc.ValidateDoctor(context.Background(), uuid.New(), resident.ID); !errors.Is(err, apperr.DoctorNotExist()) {
		t.Errorf("foreign hospital err = %v, want DoctorNotExist", err)
	}
}

func TestValidateNurse(t *testing.T) {
	repo := newMockRepo()
	hospitalID := uuid.New()
	specialist := &HospitalStaff{ID: uuid.New(), HospitalID: hospitalID, Role: RoleSpecialist}
	nurse := &HospitalStaff{ID: uuid.New(), HospitalID: hospitalID, Role: RoleNurse}
	repo.staff[specialist.ID] = specialist
	repo.staff[nurse.ID] = nurse

	svc := NewService(repo)
	if err := svc.ValidateNurse(context.Background(), hospitalID, nurse.ID); err != nil {
		t.Errorf("nurse: %v", err)
	}
	if err := svc.ValidateNurse(context.Background(), hospitalID, specialist.ID); !errors.Is(err, apperr.NurseNotExist()) {
		t.Errorf("specialist as nurse err = %v, want NurseNotExist", err)
	}
}

func TestOccupyBed_NoDoubleBooking(t *testing.T) {
	repo := newMockRepo()
	bed := &EmergencyRoomBed{ID: uuid.New(), EmergencyCenterID: uuid.New(), Status: BedAvailable}
	repo.beds[bed.ID] = bed
	first, second := uuid.New(), uuid.New()

	svc := NewService(repo)
	if err := svc.OccupyBed(context.Background(), bed.ID, first); err != nil {
		t.Fatalf("first occupy: %v", err)
	}
	err := svc.OccupyBed(context.Background(), bed.ID, second)
	if !errors.Is(err, apperr.ErBedNotAvailable()) {
		t.Fatalf("second occupy err = %v, want ErBedNotAvailable", err)
	}

	if bed.Status != BedOccupied || bed.ErPatientID == nil || *bed.ErPatientID != first {
		t.Errorf("bed must stay with the first patient")
	}
	if len(repo.logs) != 1 {
		t.Fatalf("bed logs = %d, want exactly 1", len(repo.logs))
	}
	if repo.logs[0].Status != BedOccupied || *repo.logs[0].ErPatientID != first {
		t.Errorf("bed log records wrong transition")
	}
}

func TestGetBed_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.GetBed(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.EmergencyBedNotFound()) {
		t.Fatalf("err = %v, want EmergencyBedNotFound", err)
	}
}
