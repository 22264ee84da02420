package attendance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

type Service struct {
	records  repository.AttendanceRepository
	patients repository.PatientRepository
}

func NewService(records repository.AttendanceRepository, patients repository.PatientRepository) *Service {
	return &Service{
		records:  records,
		patients: patients,
	}
}

// RecordVisit sets the shift flag for (patient, date) to done. Idempotent.
func (s *Service) RecordVisit(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error {
	if !shift.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown shift %q", shift))
	}
	if err := s.records.MarkShift(ctx, patientID, date, shift); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// ToggleVisit flips the shift flag, creating the day's row with the flag set
// when none exists yet. Calling it twice restores the original value.
func (s *Service) ToggleVisit(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error {
	if !shift.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown shift %q", shift))
	}

	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return apperrors.NotFound("patient", nil)
	}

	if err := s.records.ToggleShift(ctx, patientID, date, shift); err != nil {
		return fmt.Errorf("failed to toggle visit: %w", err)
	}
	return nil
}
