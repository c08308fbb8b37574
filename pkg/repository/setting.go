package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/dealscope/pkg/domain"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

type settingSQL struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting, nil if it was never set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	var s settingSQL
	err := r.db.GetContext(ctx, &s, "SELECT key, value, updated_at FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageFailure{Op: "get setting", Err: err}
	}
	return &domain.Setting{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}, nil
}

// SetSetting stores a setting value and refreshes its timestamp
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) (*domain.Setting, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	err := withRetry(ctx, "set setting", func() error {
		_, err := r.db.ExecContext(ctx, query, key, value, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.Setting{Key: key, Value: value, UpdatedAt: now}, nil
}

// FlipSetting atomically switches a boolean setting, an absent one flips from def
func (r *SettingRepository) FlipSetting(ctx context.Context, key string, def bool) (*domain.Setting, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = CASE WHEN settings.value = 'true' THEN 'false' ELSE 'true' END,
			updated_at = excluded.updated_at
		RETURNING value
	`
	var value string
	err := withRetry(ctx, "flip setting", func() error {
		return r.db.GetContext(ctx, &value, query, key, strconv.FormatBool(!def), now)
	})
	if err != nil {
		return nil, err
	}
	return &domain.Setting{Key: key, Value: value, UpdatedAt: now}, nil
}
