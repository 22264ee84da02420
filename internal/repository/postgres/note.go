package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
)

type noteRepository struct {
	BaseRepository
}

func NewNoteRepository(db *sqlx.DB) repository.NoteRepository {
	return &noteRepository{BaseRepository: NewBaseRepository(db)}
}

// CreateWithVisit inserts the note and marks the shift visit for the note's
// day in one transaction. A failed upsert never leaves a stray note behind.
func (r *noteRepository) CreateWithVisit(ctx context.Context, note *model.ProgressNote, shift model.Shift) error {
	var markQuery string
	switch shift {
	case model.ShiftMorning:
		markQuery = markMorning
	case model.ShiftAfternoon:
		markQuery = markAfternoon
	default:
		return fmt.Errorf("unknown shift %q", shift)
	}

	insert := `
		INSERT INTO progress_notes (id, patient_id, recorded_at, author, text)
		VALUES ($1, $2, $3, $4, $5)
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insert,
			note.ID,
			note.PatientID,
			note.RecordedAt,
			note.Author,
			note.Text,
		)
		if err != nil {
			return fmt.Errorf("failed to create progress note: %w", err)
		}

		if _, err := tx.ExecContext(ctx, markQuery, uuid.New(), note.PatientID, model.DateOf(note.RecordedAt)); err != nil {
			return fmt.Errorf("failed to mark %s visit: %w", shift, err)
		}
		return nil
	})
}

func (r *noteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressNote, error) {
	query := `
		SELECT * FROM progress_notes
		WHERE patient_id = $1
		ORDER BY recorded_at DESC, id DESC
	`

	var notes []*model.ProgressNote
	if err := r.db.SelectContext(ctx, &notes, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list progress notes: %w", err)
	}
	return notes, nil
}
