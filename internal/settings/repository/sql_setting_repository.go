package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/utilkit/internal/database"
	apperrors "github.com/allisson/utilkit/internal/errors"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// rowStore is the dialect specific SQL of a settings table.
type rowStore interface {
	selectSection(ctx context.Context, q database.Querier, section settingsDomain.Section) ([]*settingsDomain.Setting, error)
	insert(ctx context.Context, q database.Querier, s *settingsDomain.Setting) error
	// update writes value and updated_at, reporting whether the row exists.
	update(ctx context.Context, q database.Querier, s *settingsDomain.Setting) (bool, error)
	isUniqueViolation(err error) bool
}

// sqlSettingRepository implements the settings backend on top of a rowStore.
type sqlSettingRepository struct {
	db        *sql.DB
	txManager database.TxManager
	rows      rowStore

	mu    sync.Mutex
	cache *sectionCache
}

func newSQLSettingRepository(db *sql.DB, txManager database.TxManager, rows rowStore) *sqlSettingRepository {
	return &sqlSettingRepository{
		db:        db,
		txManager: txManager,
		rows:      rows,
		cache:     newSectionCache(),
	}
}

// Get returns the entry for section and key.
func (r *sqlSettingRepository) Get(
	ctx context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, section)
	if err != nil {
		return nil, err
	}

	s, ok := entries[key]
	if !ok {
		return nil, settingsDomain.ErrSettingNotFound
	}
	return cloneSetting(s), nil
}

// List returns the entries of section ordered by key.
func (r *sqlSettingRepository) List(
	ctx context.Context,
	section settingsDomain.Section,
) ([]*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, section)
	if err != nil {
		return nil, err
	}
	return sortedSettings(entries), nil
}

// Create inserts an empty entry for section and key.
func (r *sqlSettingRepository) Create(
	ctx context.Context,
	section settingsDomain.Section,
	key string,
) (*settingsDomain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, section)
	if err != nil {
		return nil, err
	}
	if _, ok := entries[key]; ok {
		return nil, settingsDomain.ErrSettingAlreadyExists
	}

	now := time.Now().UTC()
	s := &settingsDomain.Setting{
		ID:        uuid.Must(uuid.NewV7()),
		Section:   section,
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.rows.insert(ctx, database.GetTx(ctx, r.db), s); err != nil {
		if r.rows.isUniqueViolation(err) {
			return nil, settingsDomain.ErrSettingAlreadyExists
		}
		return nil, apperrors.Wrap(err, "failed to create setting")
	}

	entries[key] = s
	return cloneSetting(s), nil
}

// Set stages value for an existing entry. It is written by Save.
func (r *sqlSettingRepository) Set(
	ctx context.Context,
	section settingsDomain.Section,
	key, value string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, section)
	if err != nil {
		return err
	}

	s, ok := entries[key]
	if !ok {
		return settingsDomain.ErrSettingNotFound
	}

	s.Value = value
	s.UpdatedAt = time.Now().UTC()
	r.cache.stage(section, key)
	return nil
}

// Save writes every staged entry in one transaction.
func (r *sqlSettingRepository) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := r.cache.stagedSettings()
	if len(staged) == 0 {
		return nil
	}

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, r.db)
		for _, s := range staged {
			found, err := r.rows.update(ctx, querier, s)
			if err != nil {
				return apperrors.Wrap(err, "failed to update setting")
			}
			if !found {
				return fmt.Errorf("%w: %s/%s", settingsDomain.ErrSettingNotFound, s.Section, s.Key)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.cache.clearStaged()
	return nil
}

// Reload discards the cached and staged entries of section and reads them again.
func (r *sqlSettingRepository) Reload(ctx context.Context, section settingsDomain.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.drop(section)
	_, err := r.load(ctx, section)
	return err
}

func (r *sqlSettingRepository) load(
	ctx context.Context,
	section settingsDomain.Section,
) (map[string]*settingsDomain.Setting, error) {
	if entries, ok := r.cache.get(section); ok {
		return entries, nil
	}

	settings, err := r.rows.selectSection(ctx, database.GetTx(ctx, r.db), section)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load settings")
	}
	return r.cache.put(section, settings), nil
}
