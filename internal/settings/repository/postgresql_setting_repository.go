package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/allisson/utilkit/internal/database"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// PostgreSQLSettingRepository implements the settings backend for PostgreSQL databases.
type PostgreSQLSettingRepository struct {
	*sqlSettingRepository
}

// NewPostgreSQLSettingRepository creates a new PostgreSQL settings repository instance.
func NewPostgreSQLSettingRepository(db *sql.DB, txManager database.TxManager) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{
		sqlSettingRepository: newSQLSettingRepository(db, txManager, postgresqlRows{}),
	}
}

type postgresqlRows struct{}

func (postgresqlRows) selectSection(
	ctx context.Context,
	q database.Querier,
	section settingsDomain.Section,
) ([]*settingsDomain.Setting, error) {
	query := `SELECT id, section, setting_key, setting_value, created_at, updated_at
			  FROM settings
			  WHERE section = $1
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

func (postgresqlRows) insert(ctx context.Context, q database.Querier, s *settingsDomain.Setting) error {
	query := `INSERT INTO settings (id, section, setting_key, setting_value, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := q.ExecContext(ctx, query, s.ID, s.Section, s.Key, s.Value, s.CreatedAt, s.UpdatedAt)
	return err
}

func (postgresqlRows) update(ctx context.Context, q database.Querier, s *settingsDomain.Setting) (bool, error) {
	query := `UPDATE settings
			  SET setting_value = $1, updated_at = $2
			  WHERE section = $3 AND setting_key = $4`

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

func (postgresqlRows) isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
