package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/allisson/utilkit/internal/database"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// SQLiteSettingRepository implements the settings backend for SQLite databases, the
// embedded alternative to a settings file.
type SQLiteSettingRepository struct {
	*sqlSettingRepository
}

// NewSQLiteSettingRepository creates a new SQLite settings repository instance.
func NewSQLiteSettingRepository(db *sql.DB, txManager database.TxManager) *SQLiteSettingRepository {
	return &SQLiteSettingRepository{
		sqlSettingRepository: newSQLSettingRepository(db, txManager, sqliteRows{}),
	}
}

type sqliteRows struct{}

func (sqliteRows) selectSection(
	ctx context.Context,
	q database.Querier,
	section settingsDomain.Section,
) ([]*settingsDomain.Setting, error) {
	query := `SELECT id, section, setting_key, setting_value, created_at, updated_at
			  FROM settings
			  WHERE section = ?
			  ORDER BY setting_key`

	rows, err := q.QueryContext(ctx, query, section)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var settings []*settingsDomain.Setting
	for rows.Next() {
		var s settingsDomain.Setting
		if err := rows.Scan(&s.ID, &s.Section, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}

func (sqliteRows) insert(ctx context.Context, q database.Querier, s *settingsDomain.Setting) error {
	query := `INSERT INTO settings (id, section, setting_key, setting_value, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := q.ExecContext(ctx, query, s.ID.String(), s.Section, s.Key, s.Value, s.CreatedAt, s.UpdatedAt)
	return err
}

func (sqliteRows) update(ctx context.Context, q database.Querier, s *settingsDomain.Setting) (bool, error) {
	query := `UPDATE settings
			  SET setting_value = ?, updated_at = ?
			  WHERE section = ? AND setting_key = ?`

	result, err := q.ExecContext(ctx, query, s.Value, s.UpdatedAt, s.Section, s.Key)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (sqliteRows) isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
