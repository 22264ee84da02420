package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/model"
)

// UserRepository persists staff accounts. Lookups that may legitimately miss
// return (nil, nil) rather than an error.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
	EmailInUse(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

// PatientRepository persists patient records.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	// ActiveInBed returns the active patient holding (unit, bed), nil when free.
	ActiveInBed(ctx context.Context, unit, bed string) (*model.Patient, error)
	// FindByIdentity returns the patient matching (name, birth date) regardless
	// of status, nil when none exists.
	FindByIdentity(ctx context.Context, name string, birthDate model.Date) (*model.Patient, error)
	ListActive(ctx context.Context) ([]*model.Patient, error)
	SearchInactive(ctx context.Context, query string) ([]*model.Patient, error)
}

// NoteRepository persists the append-only progress note log.
type NoteRepository interface {
	// CreateWithVisit stores the note and marks the shift visit for the
	// note's day atomically.
	CreateWithVisit(ctx context.Context, note *model.ProgressNote, shift model.Shift) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressNote, error)
}

// AttendanceRepository persists the per-day visit flags.
type AttendanceRepository interface {
	Get(ctx context.Context, patientID uuid.UUID, date model.Date) (*model.AttendanceRecord, error)
	// MarkShift upserts the (patient, date) row and sets the shift flag true.
	MarkShift(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error
	// ToggleShift upserts the row with the flag true when absent, otherwise
	// flips the stored value.
	ToggleShift(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error
	ForDate(ctx context.Context, date model.Date) ([]*model.AttendanceRecord, error)
}
