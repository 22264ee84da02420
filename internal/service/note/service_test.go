package note

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiotrack/ward-api/internal/model"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

type storedVisit struct {
	patientID uuid.UUID
	date      model.Date
	shift     model.Shift
}

type fakeNoteRepo struct {
	notes  []*model.ProgressNote
	visits []storedVisit
}

func (r *fakeNoteRepo) CreateWithVisit(_ context.Context, note *model.ProgressNote, shift model.Shift) error {
	r.notes = append(r.notes, note)
	r.visits = append(r.visits, storedVisit{
		patientID: note.PatientID,
		date:      model.DateOf(note.RecordedAt),
		shift:     shift,
	})
	return nil
}

func (r *fakeNoteRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.ProgressNote, error) {
	var out []*model.ProgressNote
	for _, n := range r.notes {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) add() uuid.UUID {
	id := uuid.New()
	r.patients[id] = &model.Patient{
		Base:   model.Base{ID: id},
		Name:   "Maria Lima",
		Status: model.PatientStatusActive,
	}
	return id
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) ActiveInBed(_ context.Context, _, _ string) (*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) FindByIdentity(_ context.Context, _ string, _ model.Date) (*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) ListActive(_ context.Context) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) SearchInactive(_ context.Context, _ string) ([]*model.Patient, error) {
	return nil, nil
}

func TestAddNoteStoresNoteAndVisitTogether(t *testing.T) {
	notes := &fakeNoteRepo{}
	patients := newFakePatientRepo()
	svc := NewService(notes, patients, time.UTC)
	ctx := context.Background()

	id := patients.add()

	note, err := svc.AddNote(ctx, id, "Ana Souza", "tolerou sedestacao", model.ShiftMorning)
	require.NoError(t, err)
	assert.Equal(t, id, note.PatientID)
	assert.Equal(t, "Ana Souza", note.Author)
	assert.False(t, note.RecordedAt.IsZero())

	require.Len(t, notes.visits, 1)
	assert.Equal(t, id, notes.visits[0].patientID)
	assert.Equal(t, model.ShiftMorning, notes.visits[0].shift)
	assert.Equal(t, model.DateOf(note.RecordedAt), notes.visits[0].date)
}

func TestAddNoteRejectsEmptyText(t *testing.T) {
	patients := newFakePatientRepo()
	svc := NewService(&fakeNoteRepo{}, patients, time.UTC)

	id := patients.add()

	_, err := svc.AddNote(context.Background(), id, "Ana Souza", "   ", model.ShiftMorning)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestAddNoteRejectsUnknownShift(t *testing.T) {
	patients := newFakePatientRepo()
	svc := NewService(&fakeNoteRepo{}, patients, time.UTC)

	id := patients.add()

	_, err := svc.AddNote(context.Background(), id, "Ana Souza", "tolerou sedestacao", model.Shift("night"))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestAddNoteUnknownPatient(t *testing.T) {
	svc := NewService(&fakeNoteRepo{}, newFakePatientRepo(), time.UTC)

	_, err := svc.AddNote(context.Background(), uuid.New(), "Ana Souza", "tolerou sedestacao", model.ShiftMorning)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListNotesNewestFirst(t *testing.T) {
	notes := &fakeNoteRepo{}
	patients := newFakePatientRepo()
	svc := NewService(notes, patients, time.UTC)
	ctx := context.Background()

	id := patients.add()
	base := time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		notes.notes = append(notes.notes, &model.ProgressNote{
			ID:         uuid.New(),
			PatientID:  id,
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
			Author:     "Ana Souza",
			Text:       "evolucao",
		})
	}

	listed, err := svc.ListNotes(ctx, id)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.True(t, listed[0].RecordedAt.After(listed[1].RecordedAt))
	assert.True(t, listed[1].RecordedAt.After(listed[2].RecordedAt))
}

func TestListNotesUnknownPatient(t *testing.T) {
	svc := NewService(&fakeNoteRepo{}, newFakePatientRepo(), time.UTC)

	_, err := svc.ListNotes(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
