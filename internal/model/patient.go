package model

import "time"

// Patient status constants
const (
	PatientStatusActive   = "active"
	PatientStatusInactive = "inactive"
)

// Patient represents an admitted patient
type Patient struct {
	Base
	Name               string  `json:"name" db:"name"`
	BirthDate          Date    `json:"birth_date" db:"birth_date"`
	Unit               string  `json:"unit" db:"unit"`
	Bed                string  `json:"bed" db:"bed"`
	Diagnosis          string  `json:"diagnosis" db:"diagnosis"`
	Status             string  `json:"status" db:"status"`
	InactivationReason *string `json:"inactivation_reason,omitempty" db:"inactivation_reason"`
}

// AgeOn returns the patient's age in full years on the given day.
func (p *Patient) AgeOn(t time.Time) int {
	return AgeAt(p.BirthDate, t)
}

// PatientResponse is a patient with the derived age attached.
type PatientResponse struct {
	*Patient
	Age int `json:"age"`
}

func NewPatientResponse(p *Patient, now time.Time) *PatientResponse {
	return &PatientResponse{Patient: p, Age: p.AgeOn(now)}
}

// AdmitPatientRequest represents admission parameters
type AdmitPatientRequest struct {
	Name      string `json:"name" binding:"required"`
	BirthDate Date   `json:"birth_date" binding:"required,pastdate"`
	Unit      string `json:"unit" binding:"required"`
	Bed       string `json:"bed" binding:"required"`
	Diagnosis string `json:"diagnosis"`
}

// EditPatientRequest represents update parameters; birth date stays mandatory.
type EditPatientRequest struct {
	Name      string `json:"name" binding:"required"`
	BirthDate Date   `json:"birth_date" binding:"required,pastdate"`
	Unit      string `json:"unit" binding:"required"`
	Bed       string `json:"bed" binding:"required"`
	Diagnosis string `json:"diagnosis"`
}

// TransferPatientRequest moves a patient to another unit, optionally to a new bed.
type TransferPatientRequest struct {
	Unit string `json:"unit" binding:"required"`
	Bed  string `json:"bed"`
}

// DeactivatePatientRequest records why the patient left the service.
type DeactivatePatientRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PanelEntry is one row of the daily panel.
type PanelEntry struct {
	*Patient
	Age       int  `json:"age"`
	Morning   bool `json:"morning_done"`
	Afternoon bool `json:"afternoon_done"`
}

// UnitPanel groups panel entries for one unit, beds in order.
type UnitPanel struct {
	Unit     string        `json:"unit"`
	Patients []*PanelEntry `json:"patients"`
}
