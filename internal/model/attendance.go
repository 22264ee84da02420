package model

import "github.com/google/uuid"

// AttendanceRecord is the per-patient-per-day pair of visit-completion flags.
// Rows are created lazily on the first visit of a day, unique per (patient, date).
type AttendanceRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	VisitDate Date      `json:"visit_date" db:"visit_date"`
	Morning   bool      `json:"morning_done" db:"morning_done"`
	Afternoon bool      `json:"afternoon_done" db:"afternoon_done"`
}

// Done returns the flag for the given shift.
func (a *AttendanceRecord) Done(shift Shift) bool {
	if shift == ShiftMorning {
		return a.Morning
	}
	return a.Afternoon
}

// ToggleVisitRequest flips one shift flag on the manual panel.
type ToggleVisitRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	Date      Date      `json:"date" binding:"required"`
	Shift     Shift     `json:"shift" binding:"required,oneof=morning afternoon"`
}
