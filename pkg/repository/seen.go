package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/dealscope/pkg/domain"
)

// PriceEpsilon is the smallest price difference treated as a change
const PriceEpsilon = 0.01

// SeenRepository stores the last announced price per identity.
// Writes are serialized per identity, reads are concurrent.
type SeenRepository struct {
	db    *sqlx.DB
	locks keyLocks
	now   func() time.Time
}

// seenSQL represents a seen item for SQL operations
type seenSQL struct {
	Identity    string    `db:"identity"`
	LastPrice   float64   `db:"last_price"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Store       string    `db:"store"`
	FirstSeenAt time.Time `db:"first_seen_at"`
	LastSeenAt  time.Time `db:"last_seen_at"`
}

// NewSeenRepository creates a new seen items repository
func NewSeenRepository(db *sqlx.DB) *SeenRepository {
	return &SeenRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Lookup returns the record for identity, nil if absent
func (r *SeenRepository) Lookup(ctx context.Context, identity string) (*domain.SeenRecord, error) {
	rec, err := lookup(ctx, r.db, identity)
	if err != nil {
		return nil, &domain.StorageFailure{Op: "lookup", Err: err}
	}
	return rec, nil
}

// IsRepublishable classifies a candidate price against the stored one
func (r *SeenRepository) IsRepublishable(ctx context.Context, identity string, price float64) (domain.RepublishState, error) {
	rec, err := r.Lookup(ctx, identity)
	if err != nil {
		return domain.RepublishState{}, err
	}
	return Classify(rec, price), nil
}

// Classify compares a stored record with a candidate price
func Classify(rec *domain.SeenRecord, price float64) domain.RepublishState {
	if rec == nil {
		return domain.RepublishState{Kind: domain.RepublishNew}
	}
	if math.Abs(rec.LastPrice-price) < PriceEpsilon {
		return domain.RepublishState{Kind: domain.RepublishUnchanged}
	}
	return domain.RepublishState{Kind: domain.RepublishPriceDropped, OldPrice: rec.LastPrice}
}

// Record upserts the listing price, keeping first_seen_at. It returns the previous
// record, nil if there was none, so the caller can undo with Restore.
func (r *SeenRepository) Record(ctx context.Context, l domain.Listing) (prev *domain.SeenRecord, err error) {
	if l.Identity == "" {
		return nil, &domain.StorageFailure{Op: "record", Err: errors.New("empty identity")}
	}
	unlock := r.locks.lock(l.Identity)
	defer unlock()

	now := r.now()
	err = withRetry(ctx, "record", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if prev, err = lookup(ctx, tx, l.Identity); err != nil {
			return err
		}

		query := `
			INSERT INTO seen_items (identity, last_price, title, url, store, first_seen_at, last_seen_at)
			VALUES (:identity, :last_price, :title, :url, :store, :first_seen_at, :last_seen_at)
			ON CONFLICT(identity) DO UPDATE SET
				last_price = excluded.last_price,
				title = excluded.title,
				url = excluded.url,
				store = excluded.store,
				last_seen_at = excluded.last_seen_at
		`
		row := seenSQL{Identity: l.Identity, LastPrice: l.Price, Title: l.Title, URL: l.URL, Store: l.Store,
			FirstSeenAt: now, LastSeenAt: now}
		if _, err = tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("upsert seen item: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return prev, nil
}

// Restore undoes a Record: deletes the identity when prev is nil, otherwise writes prev back
func (r *SeenRepository) Restore(ctx context.Context, identity string, prev *domain.SeenRecord) error {
	unlock := r.locks.lock(identity)
	defer unlock()

	return withRetry(ctx, "restore", func() error {
		if prev == nil {
			_, err := r.db.ExecContext(ctx, "DELETE FROM seen_items WHERE identity = ?", identity)
			return err
		}
		query := `
			INSERT OR REPLACE INTO seen_items (identity, last_price, title, url, store, first_seen_at, last_seen_at)
			VALUES (:identity, :last_price, :title, :url, :store, :first_seen_at, :last_seen_at)
		`
		_, err := r.db.NamedExecContext(ctx, query, seenSQL{Identity: identity, LastPrice: prev.LastPrice,
			Title: prev.Title, URL: prev.URL, Store: prev.Store, FirstSeenAt: prev.FirstSeenAt, LastSeenAt: prev.LastSeenAt})
		return err
	})
}

// Purge deletes records not seen since olderThan and returns how many were removed
func (r *SeenRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	var purged int64
	err := withRetry(ctx, "purge", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM seen_items WHERE last_seen_at < ?", olderThan.UTC())
		if err != nil {
			return err
		}
		purged, err = res.RowsAffected()
		return err
	})
	return purged, err
}

// Count returns the number of stored identities
func (r *SeenRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM seen_items"); err != nil {
		return 0, &domain.StorageFailure{Op: "count", Err: err}
	}
	return count, nil
}

// Recent returns the most recently announced records
func (r *SeenRepository) Recent(ctx context.Context, limit int) ([]domain.SeenRecord, error) {
	var rows []seenSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM seen_items ORDER BY last_seen_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, &domain.StorageFailure{Op: "recent", Err: err}
	}
	res := make([]domain.SeenRecord, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

func lookup(ctx context.Context, q sqlx.QueryerContext, identity string) (*domain.SeenRecord, error) {
	var row seenSQL
	err := sqlx.GetContext(ctx, q, &row, "SELECT * FROM seen_items WHERE identity = ?", identity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get seen item: %w", err)
	}
	rec := row.toDomain()
	return &rec, nil
}

func (s seenSQL) toDomain() domain.SeenRecord {
	return domain.SeenRecord{Identity: s.Identity, LastPrice: s.LastPrice, Title: s.Title, URL: s.URL,
		Store: s.Store, FirstSeenAt: s.FirstSeenAt, LastSeenAt: s.LastSeenAt}
}
