package patient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

type Service struct {
	patients   repository.PatientRepository
	attendance repository.AttendanceRepository
}

func NewService(patients repository.PatientRepository, attendance repository.AttendanceRepository) *Service {
	return &Service{
		patients:   patients,
		attendance: attendance,
	}
}

// Admit registers a patient into a bed. An inactive patient matching
// (name, birth date) is reactivated in place instead of duplicated.
func (s *Service) Admit(ctx context.Context, req *model.AdmitPatientRequest) (*model.Patient, error) {
	if req.BirthDate.IsZero() {
		return nil, apperrors.Validation("birth date is required")
	}

	occupant, err := s.patients.ActiveInBed(ctx, req.Unit, req.Bed)
	if err != nil {
		return nil, fmt.Errorf("failed to check bed occupancy: %w", err)
	}
	if occupant != nil {
		return nil, apperrors.BedOccupied(req.Unit, req.Bed)
	}

	existing, err := s.patients.FindByIdentity(ctx, req.Name, req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing patient: %w", err)
	}

	if existing != nil {
		if existing.Status == model.PatientStatusActive {
			return nil, apperrors.DuplicatePatient(req.Name)
		}

		// Readmission: reactivate in place, clearing the inactivation reason.
		existing.Status = model.PatientStatusActive
		existing.InactivationReason = nil
		existing.Unit = req.Unit
		existing.Bed = req.Bed
		existing.Diagnosis = req.Diagnosis
		if err := s.patients.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate patient: %w", err)
		}
		return existing, nil
	}

	patient := &model.Patient{
		Base:      model.Base{ID: uuid.New()},
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Unit:      req.Unit,
		Bed:       req.Bed,
		Diagnosis: req.Diagnosis,
		Status:    model.PatientStatusActive,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient", nil)
	}
	return patient, nil
}

// Transfer moves a patient to another unit, keeping the bed label unless a
// new one is given.
func (s *Service) Transfer(ctx context.Context, id uuid.UUID, newUnit, newBed string) (*model.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	bed := patient.Bed
	if newBed != "" {
		bed = newBed
	}
	if patient.Unit == newUnit && patient.Bed == bed {
		return patient, nil
	}

	occupant, err := s.patients.ActiveInBed(ctx, newUnit, bed)
	if err != nil {
		return nil, fmt.Errorf("failed to check bed occupancy: %w", err)
	}
	if occupant != nil && occupant.ID != patient.ID {
		return nil, apperrors.BedOccupied(newUnit, bed)
	}

	patient.Unit = newUnit
	patient.Bed = bed
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to transfer patient: %w", err)
	}
	return patient, nil
}

// Deactivate marks the patient inactive with a reason. Idempotent.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, reason string) error {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	patient.Status = model.PatientStatusInactive
	patient.InactivationReason = &reason
	if err := s.patients.Update(ctx, patient); err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}
	return nil
}

// Edit updates the record. Birth date stays mandatory; a unit or bed change
// goes through the occupancy check.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, req *model.EditPatientRequest) (*model.Patient, error) {
	if req.BirthDate.IsZero() {
		return nil, apperrors.Validation("birth date is required")
	}

	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patient.Status == model.PatientStatusActive &&
		(patient.Unit != req.Unit || patient.Bed != req.Bed) {
		occupant, err := s.patients.ActiveInBed(ctx, req.Unit, req.Bed)
		if err != nil {
			return nil, fmt.Errorf("failed to check bed occupancy: %w", err)
		}
		if occupant != nil && occupant.ID != patient.ID {
			return nil, apperrors.BedOccupied(req.Unit, req.Bed)
		}
	}

	patient.Name = req.Name
	patient.BirthDate = req.BirthDate
	patient.Unit = req.Unit
	patient.Bed = req.Bed
	patient.Diagnosis = req.Diagnosis
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// DailyPanel lists active patients grouped by unit with that day's visit
// flags. Units sort lexicographically, beds in natural order within each unit.
func (s *Service) DailyPanel(ctx context.Context, date model.Date, now time.Time) ([]*model.UnitPanel, error) {
	patients, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}

	records, err := s.attendance.ForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	byPatient := make(map[uuid.UUID]*model.AttendanceRecord, len(records))
	for _, rec := range records {
		byPatient[rec.PatientID] = rec
	}

	grouped := make(map[string][]*model.PanelEntry)
	for _, p := range patients {
		entry := &model.PanelEntry{Patient: p, Age: p.AgeOn(now)}
		if rec := byPatient[p.ID]; rec != nil {
			entry.Morning = rec.Morning
			entry.Afternoon = rec.Afternoon
		}
		grouped[p.Unit] = append(grouped[p.Unit], entry)
	}

	units := make([]string, 0, len(grouped))
	for unit := range grouped {
		units = append(units, unit)
	}
	sort.Strings(units)

	panel := make([]*model.UnitPanel, 0, len(units))
	for _, unit := range units {
		entries := grouped[unit]
		sort.Slice(entries, func(i, j int) bool { return naturalLess(entries[i].Bed, entries[j].Bed) })
		panel = append(panel, &model.UnitPanel{Unit: unit, Patients: entries})
	}
	return panel, nil
}

// naturalLess orders bed labels the way a ward board reads them: digit runs
// compare by numeric value, so bed "5" comes before bed "10".
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// SearchArchive finds inactive patients by name substring.
func (s *Service) SearchArchive(ctx context.Context, query string) ([]*model.Patient, error) {
	patients, err := s.patients.SearchInactive(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search archive: %w", err)
	}
	return patients, nil
}
