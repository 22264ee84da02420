package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressNote is a timestamped free-text clinical entry authored by staff.
type ProgressNote struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PatientID  uuid.UUID `json:"patient_id" db:"patient_id"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
	Author     string    `json:"author" db:"author"`
	Text       string    `json:"text" db:"text"`
}

// AddNoteRequest represents note creation parameters. The shift marks which
// visit window the note closes out.
type AddNoteRequest struct {
	Text  string `json:"text" binding:"required"`
	Shift Shift  `json:"shift" binding:"required,oneof=morning afternoon"`
}
