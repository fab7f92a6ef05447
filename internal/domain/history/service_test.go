package history

import (
	"context"
	"sort"
	"testing"
	"time"

	"medication-reminder/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMeds map[string]medications.Medication

func (m testMeds) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	med, ok := m[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return med, nil
}

// testRepo une con testMeds igual que el JOIN de los adapters.
type testRepo struct {
	meds    testMeds
	entries []Entry
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByElderBetween(ctx context.Context, elderID string, from, to time.Time) ([]DayEntry, error) {
	out := []DayEntry{}
	for _, e := range r.entries {
		med, ok := r.meds[e.MedicationID]
		if !ok || med.ElderID != elderID {
			continue
		}
		if e.RecordedAt.Before(from) || !e.RecordedAt.Before(to) {
			continue
		}
		out = append(out, DayEntry{Entry: e, MedicationName: med.Name, Dosage: med.Dosage, Time: med.Time})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (r *testRepo) ListByMedication(ctx context.Context, medicationID string) ([]Entry, error) {
	out := []Entry{}
	for _, e := range r.entries {
		if e.MedicationID == medicationID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func newTestService(t *testing.T) (*Service, *testRepo) {
	meds := testMeds{
		"med-1": {ID: "med-1", ElderID: "elder-1", Name: "Losartan", Dosage: "50mg", Time: "08:00"},
		"med-2": {ID: "med-2", ElderID: "elder-2", Name: "Metformin", Dosage: "500mg", Time: "12:00"},
	}
	repo := &testRepo{meds: meds}
	return NewService(repo, meds, saoPaulo(t)), repo
}

func TestService_Record(t *testing.T) {
	svc, repo := newTestService(t)
	at := time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	e, err := svc.Record(context.Background(), "med-1", StatusLate)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, at, e.RecordedAt)
	assert.Len(t, repo.entries, 1)
}

func TestService_Record_Validation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, "", StatusOnTime)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Record(ctx, "med-1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Record(ctx, "med-1", "skipped")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Record(ctx, "ghost", StatusMissed)
	assert.ErrorIs(t, err, ErrMedicationNotFound)

	assert.Empty(t, repo.entries)
}

func TestService_ListByElderAndDate_RequiresDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListByElderAndDate(context.Background(), "elder-1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ListByElderAndDate(context.Background(), "elder-1", "01/05/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListByElderAndDate_UsesReferenceDay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 02:30 UTC del 2 de mayo sigue siendo 1 de mayo en São Paulo (UTC-3).
	stamps := []time.Time{
		time.Date(2025, 5, 1, 2, 59, 0, 0, time.UTC), // 30/04 23:59 local
		time.Date(2025, 5, 1, 3, 0, 0, 0, time.UTC),  // 01/05 00:00 local
		time.Date(2025, 5, 2, 2, 30, 0, 0, time.UTC), // 01/05 23:30 local
		time.Date(2025, 5, 2, 3, 0, 0, 0, time.UTC),  // 02/05 00:00 local
	}
	for _, at := range stamps {
		svc.now = func() time.Time { return at }
		_, err := svc.Record(ctx, "med-1", StatusOnTime)
		require.NoError(t, err)
	}
	svc.now = func() time.Time { return stamps[1] }
	_, err := svc.Record(ctx, "med-2", StatusMissed)
	require.NoError(t, err)

	items, err := svc.ListByElderAndDate(ctx, "elder-1", "2025-05-01")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].RecordedAt.Equal(stamps[2]), "newest first")
	assert.True(t, items[1].RecordedAt.Equal(stamps[1]))
	assert.Equal(t, "Losartan", items[0].MedicationName)
	assert.Equal(t, medications.TimeOfDay("08:00"), items[0].Time)

	empty, err := svc.ListByElderAndDate(ctx, "elder-1", "2024-01-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestService_ListByMedication_SurvivesDeletion(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, "med-1", StatusOnTime)
	require.NoError(t, err)

	delete(repo.meds, "med-1")

	items, err := svc.ListByMedication(ctx, "med-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	day, err := svc.ListByElderAndDate(ctx, "elder-1", time.Now().In(svc.Location()).Format(DateLayout))
	require.NoError(t, err)
	assert.Empty(t, day)
}

func TestService_DayBounds(t *testing.T) {
	svc, _ := newTestService(t)

	from, to, err := svc.DayBounds("2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 3, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}
