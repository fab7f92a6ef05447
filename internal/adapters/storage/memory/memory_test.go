package memory

import (
	"context"
	"testing"
	"time"

	"medication-reminder/internal/domain/accounts"
	"medication-reminder/internal/domain/history"
	"medication-reminder/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsRepo_ConflictWritesNothing(t *testing.T) {
	repo := NewAccountsRepo()
	ctx := context.Background()

	require.NoError(t, repo.CreateAccount(ctx,
		accounts.Caregiver{ID: "c1", Email: "a@b.c"},
		accounts.Elder{ID: "e1", LoginCode: "1234", CaregiverID: "c1"},
	))

	err := repo.CreateAccount(ctx,
		accounts.Caregiver{ID: "c2", Email: "a@b.c"},
		accounts.Elder{ID: "e2", LoginCode: "9999", CaregiverID: "c2"},
	)
	assert.ErrorIs(t, err, accounts.ErrConflict)

	_, err = repo.GetElderByLoginCode(ctx, "9999")
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	err = repo.CreateAccount(ctx,
		accounts.Caregiver{ID: "c3", Email: "other@b.c"},
		accounts.Elder{ID: "e3", LoginCode: "1234", CaregiverID: "c3"},
	)
	assert.ErrorIs(t, err, accounts.ErrConflict)
	_, err = repo.GetCaregiverByEmail(ctx, "other@b.c")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestMedicationsRepo_ListOrderedByTime(t *testing.T) {
	repo := NewMedicationsRepo()
	ctx := context.Background()

	for i, tod := range []medications.TimeOfDay{"21:00", "07:30", "12:00"} {
		require.NoError(t, repo.Create(ctx, medications.Medication{
			ID: string(rune('a' + i)), ElderID: "e1", Name: "m", Time: tod,
		}))
	}
	require.NoError(t, repo.Create(ctx, medications.Medication{ID: "x", ElderID: "e2", Time: "01:00"}))

	items, err := repo.ListByElder(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, medications.TimeOfDay("07:30"), items[0].Time)
	assert.Equal(t, medications.TimeOfDay("21:00"), items[2].Time)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), medications.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, medications.Medication{ID: "missing"}), medications.ErrNotFound)
}

func TestHistoryRepo_JoinExcludesOrphans(t *testing.T) {
	meds := NewMedicationsRepo()
	repo := NewHistoryRepo(meds)
	ctx := context.Background()

	require.NoError(t, meds.Create(ctx, medications.Medication{ID: "m1", ElderID: "e1", Name: "Losartan", Dosage: "50mg", Time: "08:00"}))
	require.NoError(t, meds.Create(ctx, medications.Medication{ID: "m2", ElderID: "e1", Name: "Aspirin", Dosage: "100mg", Time: "09:00"}))

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, history.Entry{ID: "h1", MedicationID: "m1", Status: history.StatusOnTime, RecordedAt: base}))
	require.NoError(t, repo.Create(ctx, history.Entry{ID: "h2", MedicationID: "m2", Status: history.StatusLate, RecordedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, history.Entry{ID: "h3", MedicationID: "m1", Status: history.StatusMissed, RecordedAt: base.Add(24 * time.Hour)}))

	day, err := repo.ListByElderBetween(ctx, "e1", base.Add(-time.Hour), base.Add(23*time.Hour))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "h2", day[0].ID)
	assert.Equal(t, "Aspirin", day[0].MedicationName)

	require.NoError(t, meds.Delete(ctx, "m2"))

	day, err = repo.ListByElderBetween(ctx, "e1", base.Add(-time.Hour), base.Add(23*time.Hour))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "h1", day[0].ID)

	orphans, err := repo.ListByMedication(ctx, "m2")
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
}
