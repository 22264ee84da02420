package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

type Service struct {
	notes    repository.NoteRepository
	patients repository.PatientRepository
	loc      *time.Location
}

func NewService(notes repository.NoteRepository, patients repository.PatientRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		notes:    notes,
		patients: patients,
		loc:      loc,
	}
}

// AddNote appends a progress note authored by the logged-in user; the note and
// the day's visit mark for the given shift commit together. Timestamps use the
// hospital timezone.
func (s *Service) AddNote(ctx context.Context, patientID uuid.UUID, author, text string, shift model.Shift) (*model.ProgressNote, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("note text is required")
	}
	if !shift.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown shift %q", shift))
	}

	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient", nil)
	}

	note := &model.ProgressNote{
		ID:         uuid.New(),
		PatientID:  patientID,
		RecordedAt: time.Now().In(s.loc),
		Author:     author,
		Text:       text,
	}
	if err := s.notes.CreateWithVisit(ctx, note, shift); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// ListNotes returns the patient's notes newest-first.
func (s *Service) ListNotes(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressNote, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient", nil)
	}

	notes, err := s.notes.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
