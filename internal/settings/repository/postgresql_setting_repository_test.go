package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/utilkit/internal/database"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
	"github.com/allisson/utilkit/internal/testutil"
)

var settingColumns = []string{"id", "section", "setting_key", "setting_value", "created_at", "updated_at"}

func newMockPostgreSQLRepository(t *testing.T) (*PostgreSQLSettingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPostgreSQLSettingRepository(db, database.NewTxManager(db)), mock
}

func TestPostgreSQLSettingRepository_Get(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow(id.String(), "appSettings", "ApiKey", "cipher", now, now))

	s, err := repo.Get(ctx, settingsDomain.SectionAppSettings, "ApiKey")
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "cipher", s.Value)

	// The second read is served from the section cache.
	_, err = repo.Get(ctx, settingsDomain.SectionAppSettings, "Missing")
	assert.ErrorIs(t, err, settingsDomain.ErrSettingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Create(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(sqlmock.AnyArg(), "appSettings", "ApiKey", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := repo.Create(ctx, settingsDomain.SectionAppSettings, "ApiKey")
	require.NoError(t, err)
	assert.Equal(t, "ApiKey", s.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_CreateUniqueViolation(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)

	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectExec(`INSERT INTO settings`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), settingsDomain.SectionAppSettings, "ApiKey")
	assert.ErrorIs(t, err, settingsDomain.ErrSettingAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_SetAndSave(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM settings`).
		WithArgs("connectionStrings").
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow(uuid.Must(uuid.NewV7()).String(), "connectionStrings", "Default", "", now, now))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE settings`).
		WithArgs("cipher", sqlmock.AnyArg(), "connectionStrings", "Default").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Set(ctx, settingsDomain.SectionConnectionStrings, "Default", "cipher"))
	require.NoError(t, repo.Save(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_SaveMissingRowRollsBack(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow(uuid.Must(uuid.NewV7()).String(), "appSettings", "ApiKey", "", now, now))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE settings`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.NoError(t, repo.Set(ctx, settingsDomain.SectionAppSettings, "ApiKey", "cipher"))
	err := repo.Save(ctx)
	assert.ErrorIs(t, err, settingsDomain.ErrSettingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Reload(t *testing.T) {
	repo, mock := newMockPostgreSQLRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectQuery(`FROM settings`).
		WithArgs("appSettings").
		WillReturnRows(sqlmock.NewRows(settingColumns).
			AddRow(uuid.Must(uuid.NewV7()).String(), "appSettings", "ApiKey", "cipher", now, now))

	list, err := repo.List(ctx, settingsDomain.SectionAppSettings)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Reload(ctx, settingsDomain.SectionAppSettings))

	list, err = repo.List(ctx, settingsDomain.SectionAppSettings)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cipher", list[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Integration(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupDB(t, db)

	repo := NewPostgreSQLSettingRepository(db, database.NewTxManager(db))
	ctx := context.Background()

	_, err := repo.Create(ctx, settingsDomain.SectionAppSettings, "ApiKey")
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, settingsDomain.SectionAppSettings, "ApiKey", "cipher"))
	require.NoError(t, repo.Save(ctx))

	other := NewPostgreSQLSettingRepository(db, database.NewTxManager(db))
	s, err := other.Get(ctx, settingsDomain.SectionAppSettings, "ApiKey")
	require.NoError(t, err)
	assert.Equal(t, "cipher", s.Value)

	_, err = other.Create(ctx, settingsDomain.SectionAppSettings, "ApiKey")
	assert.ErrorIs(t, err, settingsDomain.ErrSettingAlreadyExists)
}
