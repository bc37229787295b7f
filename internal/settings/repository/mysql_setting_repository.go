package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/utilkit/internal/database"
	apperrors "github.com/allisson/utilkit/internal/errors"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// MySQLSettingRepository implements the settings backend for MySQL databases.
// IDs are stored as BINARY(16); the DSN must set parseTime=true.
type MySQLSettingRepository struct {
	*sqlSettingRepository
}

// NewMySQLSettingRepository creates a new MySQL settings repository instance.
func NewMySQLSettingRepository(db *sql.DB, txManager database.TxManager) *MySQLSettingRepository {
	return &MySQLSettingRepository{
		sqlSettingRepository: newSQLSettingRepository(db, txManager, mysqlRows{}),
	}
}

type mysqlRows struct{}

func (mysqlRows) selectSection(
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
		var (
			s  settingsDomain.Setting
			id []byte
		)
		if err := rows.Scan(&id, &s.Section, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if err := s.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal setting id")
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}

func (mysqlRows) insert(ctx context.Context, q database.Querier, s *settingsDomain.Setting) error {
	query := `INSERT INTO settings (id, section, setting_key, setting_value, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := s.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal setting id")
	}

	_, err = q.ExecContext(ctx, query, id, s.Section, s.Key, s.Value, s.CreatedAt, s.UpdatedAt)
	return err
}

// update checks existence separately because MySQL reports zero affected rows when the
// new values equal the stored ones.
func (mysqlRows) update(ctx context.Context, q database.Querier, s *settingsDomain.Setting) (bool, error) {
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
	if affected > 0 {
		return true, nil
	}

	var exists int
	err = q.QueryRowContext(
		ctx,
		`SELECT 1 FROM settings WHERE section = ? AND setting_key = ?`,
		s.Section,
		s.Key,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (mysqlRows) isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
