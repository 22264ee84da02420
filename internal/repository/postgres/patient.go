package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

// activeBedConstraint is the partial unique index over (unit, bed) for active
// patients. It closes the check-then-act window under concurrent admissions.
const activeBedConstraint = "patients_active_unit_bed_idx"

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, name, birth_date, unit, bed, diagnosis,
			status, inactivation_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.BirthDate,
		patient.Unit,
		patient.Bed,
		patient.Diagnosis,
		patient.Status,
		patient.InactivationReason,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activeBedConstraint) {
			return apperrors.BedOccupied(patient.Unit, patient.Bed)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			name = $1,
			birth_date = $2,
			unit = $3,
			bed = $4,
			diagnosis = $5,
			status = $6,
			inactivation_reason = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.BirthDate,
		patient.Unit,
		patient.Bed,
		patient.Diagnosis,
		patient.Status,
		patient.InactivationReason,
		time.Now(),
		patient.ID,
	)
	if err != nil {
		if isUniqueViolation(err, activeBedConstraint) {
			return apperrors.BedOccupied(patient.Unit, patient.Bed)
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) ActiveInBed(ctx context.Context, unit, bed string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE unit = $1 AND bed = $2 AND status = $3`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, unit, bed, model.PatientStatusActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check bed occupancy: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByIdentity(ctx context.Context, name string, birthDate model.Date) (*model.Patient, error) {
	// An active row wins over any archived twin with the same identity, so
	// the duplicate check upstream never reactivates past an active patient.
	query := `
		SELECT * FROM patients
		WHERE name = $1 AND birth_date = $2
		ORDER BY (status = 'active') DESC, updated_at DESC
		LIMIT 1
	`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, name, birthDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find patient by identity: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) ListActive(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE status = $1
		ORDER BY unit, bed
	`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, model.PatientStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) SearchInactive(ctx context.Context, query string) ([]*model.Patient, error) {
	stmt := `
		SELECT * FROM patients
		WHERE status = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY name
	`

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, stmt, model.PatientStatusInactive, query); err != nil {
		return nil, fmt.Errorf("failed to search inactive patients: %w", err)
	}
	return patients, nil
}
