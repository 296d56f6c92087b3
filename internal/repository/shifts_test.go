package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wachplan-dev/wachplan/backend/internal/config"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 10

	return NewRepository(cfg, db), mock
}

func TestInsertShiftsSkipConflicts(t *testing.T) {
	stationID := uuid.New()
	divisionID := uuid.New()

	batch := []*domain.Shift{
		{
			StationID:  stationID,
			DivisionID: divisionID,
			StartsAt:   time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC),
			Label:      domain.ShiftLabelDay,
			Status:     domain.ShiftStatusDraft,
		},
		{
			StationID:  stationID,
			DivisionID: divisionID,
			StartsAt:   time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC),
			Label:      domain.ShiftLabelNight,
			Status:     domain.ShiftStatusDraft,
		},
	}

	t.Run("counts only the rows actually written", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectExec(`INSERT INTO shifts .+ ON CONFLICT \(division_id, starts_at\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1)) // one of two rows already existed

		inserted, err := repository.InsertShiftsSkipConflicts(batch)
		require.NoError(t, err)
		assert.Equal(t, int64(1), inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		inserted, err := repository.InsertShiftsSkipConflicts(nil)
		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		wantErr := errors.New("connection reset")
		mock.ExpectExec(`INSERT INTO shifts`).WillReturnError(wantErr)

		_, err := repository.InsertShiftsSkipConflicts(batch)
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestUpsertScheduleCycle(t *testing.T) {
	repository, mock := newMockRepository(t)

	cycleID := uuid.New()
	sc := &domain.ScheduleCycle{
		StationID:        uuid.New(),
		StartDate:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		OrderDivisionIDs: []uuid.UUID{uuid.New(), uuid.New()},
		SwitchHours:      domain.DefaultSwitchHours,
	}

	mock.ExpectQuery(`INSERT INTO schedule_cycles .+ ON CONFLICT \(station_id\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cycleID.String()))

	err := repository.UpsertScheduleCycle(sc)
	require.NoError(t, err)
	assert.Equal(t, cycleID, sc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateShift_RollsBackOnAssignmentCopyFailure(t *testing.T) {
	repository, mock := newMockRepository(t)

	shiftID := uuid.New()
	editorID := uuid.New()
	newID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "station_id", "division_id", "starts_at", "ends_at", "label", "status", "created_at"}).
		AddRow(newID.String(), uuid.New().String(), uuid.New().String(),
			time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC),
			domain.ShiftLabelDay, domain.ShiftStatusPublished, time.Now())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO shifts`).WillReturnRows(rows)
	mock.ExpectExec(`INSERT INTO assignments`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repository.DuplicateShift(shiftID, editorID)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCurrentAndNextShiftsIncludesDrafts(t *testing.T) {
	repository, mock := newMockRepository(t)

	stationID := uuid.New()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "division_id", "name", "starts_at", "ends_at", "label", "status", "created_at"}).
		AddRow(uuid.New().String(), uuid.New().String(), "Wachabteilung A",
			time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC),
			domain.ShiftLabelDay, string(domain.ShiftStatusDraft), time.Now())

	// no status filter: freshly generated shifts are still DRAFT and the
	// wall display has to show them right away
	mock.ExpectQuery(`(?s)SELECT s\.id, s\.division_id, d\.name.+FROM shifts s.+WHERE s\.station_id = \$1\s+AND s\.ends_at > \$2\s+AND s\.starts_at < \$3`).
		WithArgs(stationID, at, at.Add(36*time.Hour)).
		WillReturnRows(rows)

	shifts, err := repository.GetCurrentAndNextShifts(stationID, at)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, domain.ShiftStatusDraft, shifts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
