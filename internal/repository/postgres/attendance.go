package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
)

// Shift flags map to fixed columns through an explicit switch; column names
// are never built from request input.
const (
	markMorning = `
		INSERT INTO attendance_records (id, patient_id, visit_date, morning_done, afternoon_done)
		VALUES ($1, $2, $3, TRUE, FALSE)
		ON CONFLICT (patient_id, visit_date)
		DO UPDATE SET morning_done = TRUE
	`
	markAfternoon = `
		INSERT INTO attendance_records (id, patient_id, visit_date, morning_done, afternoon_done)
		VALUES ($1, $2, $3, FALSE, TRUE)
		ON CONFLICT (patient_id, visit_date)
		DO UPDATE SET afternoon_done = TRUE
	`
	toggleMorning = `
		INSERT INTO attendance_records (id, patient_id, visit_date, morning_done, afternoon_done)
		VALUES ($1, $2, $3, TRUE, FALSE)
		ON CONFLICT (patient_id, visit_date)
		DO UPDATE SET morning_done = NOT attendance_records.morning_done
	`
	toggleAfternoon = `
		INSERT INTO attendance_records (id, patient_id, visit_date, morning_done, afternoon_done)
		VALUES ($1, $2, $3, FALSE, TRUE)
		ON CONFLICT (patient_id, visit_date)
		DO UPDATE SET afternoon_done = NOT attendance_records.afternoon_done
	`
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Get(ctx context.Context, patientID uuid.UUID, date model.Date) (*model.AttendanceRecord, error) {
	query := `SELECT * FROM attendance_records WHERE patient_id = $1 AND visit_date = $2`

	var record model.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, patientID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &record, nil
}

func (r *attendanceRepository) MarkShift(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error {
	var query string
	switch shift {
	case model.ShiftMorning:
		query = markMorning
	case model.ShiftAfternoon:
		query = markAfternoon
	default:
		return fmt.Errorf("unknown shift %q", shift)
	}

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), patientID, date); err != nil {
		return fmt.Errorf("failed to mark %s visit: %w", shift, err)
	}
	return nil
}

func (r *attendanceRepository) ToggleShift(ctx context.Context, patientID uuid.UUID, date model.Date, shift model.Shift) error {
	var query string
	switch shift {
	case model.ShiftMorning:
		query = toggleMorning
	case model.ShiftAfternoon:
		query = toggleAfternoon
	default:
		return fmt.Errorf("unknown shift %q", shift)
	}

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), patientID, date); err != nil {
		return fmt.Errorf("failed to toggle %s visit: %w", shift, err)
	}
	return nil
}

func (r *attendanceRepository) ForDate(ctx context.Context, date model.Date) ([]*model.AttendanceRecord, error) {
	query := `SELECT * FROM attendance_records WHERE visit_date = $1`

	var records []*model.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("failed to list attendance for date: %w", err)
	}
	return records, nil
}
