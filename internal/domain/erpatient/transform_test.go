package erpatient

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/domain/emspatient"
)

func strPtr(s string) *string { return &s }

func TestBuildAdmissionRecord_MapsPatientAndGuardian(t *testing.T) {
	birth := time.Date(1961, 3, 2, 0, 0, 0, 0, time.UTC)
	src := &emspatient.Patient{
		ID:               uuid.New(),
		Name:             "Kim",
		Birth:            &birth,
		IdentityNumber:   strPtr("610302-1"),
		Gender:           emspatient.GenderMale,
		Phone:            strPtr("010-1234-5678"),
		Address:          strPtr("Seoul"),
		Severity:         emspatient.SeveritySevere,
		GuardianName:     strPtr("Lee"),
		GuardianPhone:    strPtr("010-8765-4321"),
		GuardianRelation: strPtr("spouse"),
	}
	hospitalID, centerID, admitter := uuid.New(), uuid.New(), uuid.New()
	bedID, doctorID, nurseID := uuid.New(), uuid.New(), uuid.New()

	rec := BuildAdmissionRecord(src, nil, hospitalID, centerID, admitter, bedID, doctorID, nurseID, time.Now())

	p := rec.Patient
	if p.Name != "Kim" || p.Gender != emspatient.GenderMale || p.Severity != emspatient.SeveritySevere {
		t.Errorf("core fields not carried over: %+v", p)
	}
	if p.EmsPatientID != src.ID {
		t.Errorf("provenance lost")
	}
	if p.HospitalID != hospitalID || p.EmergencyCenterID != centerID {
		t.Errorf("ownership fields wrong")
	}
	if p.BedID != bedID || p.DoctorID != doctorID || p.NurseID != nurseID || p.AdmittedByID != admitter {
		t.Errorf("assignment fields wrong")
	}
	if rec.Guardian == nil {
		t.Fatal("guardian missing")
	}
	if rec.Guardian.Name != "Lee" || rec.Guardian.ErPatientID != p.ID {
		t.Errorf("guardian = %+v", rec.Guardian)
	}
	if rec.Link == nil || rec.Link.Status != LinkAdmission || rec.Link.ErPatientID != p.ID {
		t.Errorf("hospital linkage = %+v", rec.Link)
	}
}

func TestBuildAdmissionRecord_NoGuardian(t *testing.T) {
	src := &emspatient.Patient{ID: uuid.New(), Name: "Kim"}
	rec := BuildAdmissionRecord(src, nil, uuid.New(), uuid.New(), uuid.New(),
		uuid.New(), uuid.New(), uuid.New(), time.Now())
	if rec.Guardian != nil {
		t.Fatalf("guardian = %+v, want nil", rec.Guardian)
	}
}

func TestBuildAdmissionRecord_NarrativeOrder(t *testing.T) {
	admittedAt := time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)
	t1 := admittedAt.Add(-30 * time.Minute)
	t2 := admittedAt.Add(-10 * time.Minute)
	src := &emspatient.Patient{ID: uuid.New(), Name: "Kim", Severity: emspatient.SeverityMild}
	admitter := uuid.New()
	assessments := []*emspatient.Assessment{
		{Type: emspatient.AssessmentRAPID, Fields: map[string]string{"trauma": "none", "skin": "pale"}, RecordedAt: t1},
		{Type: emspatient.AssessmentVS, Fields: map[string]string{"heart_rate": "110", "blood_pressure": "90/60"}, RecordedAt: t2},
	}

	rec := BuildAdmissionRecord(src, assessments, uuid.New(), uuid.New(), admitter,
		uuid.New(), uuid.New(), uuid.New(), admittedAt)

	if len(rec.Logs) != 3 {
		t.Fatalf("logs = %d, want 3", len(rec.Logs))
	}
	header := rec.Logs[0]
	if header.Seq != 1 || header.Category != "EMS" {
		t.Errorf("header = %+v", header)
	}
	if !header.RecordedAt.Equal(admittedAt) {
		t.Errorf("header stamped %v, want admission time", header.RecordedAt)
	}
	if !strings.Contains(header.Message, "MILD") {
		t.Errorf("header message %q should carry the severity", header.Message)
	}
	for i, want := range []time.Time{t1, t2} {
		entry := rec.Logs[i+1]
		if entry.Seq != i+2 {
			t.Errorf("entry %d seq = %d", i, entry.Seq)
		}
		if !entry.RecordedAt.Equal(want) {
			t.Errorf("entry %d stamped %v, want original recording time %v", i, entry.RecordedAt, want)
		}
		if entry.EmployeeID != admitter {
			t.Errorf("entry %d attributed to %s, want admitting employee", i, entry.EmployeeID)
		}
	}
	if rec.Logs[1].Category != "RAPID" || rec.Logs[2].Category != "VS" {
		t.Errorf("categories = %s, %s", rec.Logs[1].Category, rec.Logs[2].Category)
	}
}

func TestRenderAssessment_ProtocolOrder(t *testing.T) {
	a := &emspatient.Assessment{
		Type: emspatient.AssessmentVS,
		Fields: map[string]string{
			"temperature":    "38.2",
			"heart_rate":     "110",
			"blood_pressure": "90/60",
			"note":           "rechecked",
		},
	}
	got := renderAssessment(a)
	want := "heart_rate: 110, blood_pressure: 90/60, temperature: 38.2, note: rechecked"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// Map iteration order must not leak into the output.
	for i := 0; i < 10; i++ {
		if again := renderAssessment(a); again != got {
			t.Fatalf("non-deterministic rendering: %q vs %q", again, got)
		}
	}
}
