// Package apperr defines the typed domain errors shared by the EMS/ER
// workflows. Callers branch on Kind, never on message text.
package apperr

import "net/http"

type Kind string

const (
	KindPatientNotFound          Kind = "PATIENT_NOT_FOUND"
	KindPendingPatientNotFound   Kind = "PENDING_PATIENT_NOT_FOUND"
	KindAmbulanceCompanyNotFound Kind = "AMBULANCE_COMPANY_NOT_FOUND"
	KindRequestAlreadyProcessed  Kind = "REQUEST_ALREADY_PROCESSED"
	KindRequestNotFound          Kind = "REQUEST_NOT_FOUND"
	KindRequestPatientNotExist   Kind = "REQUEST_PATIENT_NOT_EXIST"
	KindEmergencyBedNotFound     Kind = "EMERGENCY_BED_NOT_FOUND"
	KindErBedNotAvailable        Kind = "ER_BED_NOT_AVAILABLE"
	KindDoctorNotExist           Kind = "DOCTOR_NOT_EXIST"
	KindNurseNotExist            Kind = "NURSE_NOT_EXIST"
	KindUnauthorized             Kind = "UNAUTHORIZED"
	KindInternal                 Kind = "INTERNAL"
)

// Error is a domain-predictable failure with a stable machine-readable kind.
// Infrastructure faults (store unavailable, constraint violations) are not
// modeled here; they surface as plain errors and map to 5xx.
type Error struct {
	Kind    Kind   `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Message }

// Is lets errors.Is match two domain errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func PatientNotFound() *Error {
	return New(KindPatientNotFound, "patient record not found")
}

func PendingPatientNotFound() *Error {
	return New(KindPendingPatientNotFound, "no pending patient for this employee")
}

func AmbulanceCompanyNotFound() *Error {
	return New(KindAmbulanceCompanyNotFound, "ambulance company record not found")
}

func RequestAlreadyProcessed() *Error {
	return New(KindRequestAlreadyProcessed, "request has already been processed")
}

func RequestNotFound() *Error {
	return New(KindRequestNotFound, "request not found")
}

func RequestPatientNotExist() *Error {
	return New(KindRequestPatientNotExist, "requested patient record not found")
}

func EmergencyBedNotFound() *Error {
	return New(KindEmergencyBedNotFound, "emergency room bed not found")
}

func ErBedNotAvailable() *Error {
	return New(KindErBedNotAvailable, "emergency room bed is not available")
}

func DoctorNotExist() *Error {
	return New(KindDoctorNotExist, "doctor not found or role mismatch")
}

func NurseNotExist() *Error {
	return New(KindNurseNotExist, "nurse not found or role mismatch")
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// HTTPStatus maps an error kind to a response status. Domain errors are 4xx;
// anything unrecognized is treated as an infrastructure fault.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindPatientNotFound, KindPendingPatientNotFound, KindAmbulanceCompanyNotFound,
		KindRequestNotFound, KindRequestPatientNotExist,
		KindEmergencyBedNotFound, KindDoctorNotExist, KindNurseNotExist:
		return http.StatusNotFound
	case KindRequestAlreadyProcessed, KindErBedNotAvailable:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
