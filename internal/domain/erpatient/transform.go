package erpatient

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emslink/emslink/internal/domain/emspatient"
)

// logCategoryEMS tags the admission header entry of the narrative.
const logCategoryEMS = "EMS"

// BuildAdmissionRecord maps the EMS record onto everything one admission
// writes: the ER patient, the guardian if the EMS record carries one, and
// the synthesized clinical narrative. Pure, no I/O.
//
// The narrative opens with a "received from EMS" header stamped with the
// admission time, followed by one entry per assessment snapshot in
// chronological order, each stamped with the assessment's original recording
// time and attributed to the admitting employee.
func BuildAdmissionRecord(src *emspatient.Patient, assessments []*emspatient.Assessment,
	hospitalID, centerID, admittedByID, bedID, doctorID, nurseID uuid.UUID,
	admittedAt time.Time) *AdmissionRecord {

	patient := &ErPatient{
		ID:                uuid.New(),
		HospitalID:        hospitalID,
		EmergencyCenterID: centerID,
		EmsPatientID:      src.ID,
		Name:              src.Name,
		Birth:             src.Birth,
		IdentityNumber:    src.IdentityNumber,
		Gender:            src.Gender,
		Phone:             src.Phone,
		Address:           src.Address,
		Severity:          src.Severity,
		BedID:             bedID,
		DoctorID:          doctorID,
		NurseID:           nurseID,
		AdmittedByID:      admittedByID,
	}

	var guardian *Guardian
	if src.GuardianName != nil && *src.GuardianName != "" {
		guardian = &Guardian{
			ID:          uuid.New(),
			ErPatientID: patient.ID,
			Name:        *src.GuardianName,
			Phone:       src.GuardianPhone,
			Relation:    src.GuardianRelation,
		}
	}

	logs := make([]*PatientLog, 0, len(assessments)+1)
	logs = append(logs, &PatientLog{
		ID:          uuid.New(),
		ErPatientID: patient.ID,
		Seq:         1,
		Category:    logCategoryEMS,
		Message:     fmt.Sprintf("Received from EMS, severity %s", src.Severity),
		EmployeeID:  admittedByID,
		RecordedAt:  admittedAt,
	})
	for i, a := range assessments {
		logs = append(logs, &PatientLog{
			ID:          uuid.New(),
			ErPatientID: patient.ID,
			Seq:         i + 2,
			Category:    string(a.Type),
			Message:     renderAssessment(a),
			EmployeeID:  admittedByID,
			RecordedAt:  a.RecordedAt,
		})
	}

	return &AdmissionRecord{
		Patient:  patient,
		Guardian: guardian,
		Logs:     logs,
		Link: &HospitalPatient{
			ID:          uuid.New(),
			HospitalID:  hospitalID,
			ErPatientID: patient.ID,
			Status:      LinkAdmission,
		},
	}
}

// renderAssessment flattens one snapshot into a fixed-format line. Known
// fields come first in protocol order; unknown ones follow alphabetically
// so the output is deterministic.
func renderAssessment(a *emspatient.Assessment) string {
	seen := make(map[string]bool, len(a.Fields))
	parts := make([]string, 0, len(a.Fields))
	for _, field := range emspatient.AssessmentFieldOrder[a.Type] {
		if v, ok := a.Fields[field]; ok {
			parts = append(parts, field+": "+v)
			seen[field] = true
		}
	}
	var extra []string
	for field := range a.Fields {
		if !seen[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		parts = append(parts, field+": "+a.Fields[field])
	}
	return strings.Join(parts, ", ")
}
