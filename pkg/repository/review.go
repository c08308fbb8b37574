package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/dealscope/pkg/domain"
)

// ReviewRepository stores deals waiting for a human decision
type ReviewRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// ReviewFilter selects reviews for List, zero values mean no filter
type ReviewFilter struct {
	Status   domain.ReviewStatus
	Identity string
	Limit    uint64
}

// reviewSQL represents a review for SQL operations
type reviewSQL struct {
	Ref        string     `db:"ref"`
	Identity   string     `db:"identity"`
	Price      float64    `db:"price"`
	Listing    listingSQL `db:"listing"`
	Reason     string     `db:"reason"`
	OldPrice   float64    `db:"old_price"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	ResolvedAt *time.Time `db:"resolved_at"`
}

// listingSQL is a scored listing stored as JSON
type listingSQL domain.ScoredListing

// Value implements driver.Valuer for database storage
func (l listingSQL) Value() (driver.Value, error) {
	data, err := json.Marshal(domain.ScoredListing(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *listingSQL) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = listingSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected listing type %T", value)
	}
	var res domain.ScoredListing
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal listing: %w", err)
	}
	*l = listingSQL(res)
	return nil
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Enqueue stores a pending review, assigning Ref and CreatedAt when empty
func (r *ReviewRepository) Enqueue(ctx context.Context, rv *domain.Review) error {
	if rv.Ref == "" {
		rv.Ref = uuid.NewString()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = r.now()
	}
	rv.Status = domain.ReviewPending
	rv.ResolvedAt = nil

	query, args, err := sq.Insert("reviews").
		Columns("ref", "identity", "price", "listing", "reason", "old_price", "status", "created_at").
		Values(rv.Ref, rv.Listing.Identity, rv.Listing.Price, listingSQL(rv.Listing), string(rv.Reason),
			rv.OldPrice, string(rv.Status), rv.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build enqueue query: %w", err)
	}
	return withRetry(ctx, "enqueue review", func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
}

// Get returns the review by ref, nil if not found
func (r *ReviewRepository) Get(ctx context.Context, ref string) (*domain.Review, error) {
	query, args, err := sq.Select("*").From("reviews").Where(sq.Eq{"ref": ref}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}
	var row reviewSQL
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageFailure{Op: "get review", Err: err}
	}
	rv := row.toDomain()
	return &rv, nil
}

// List returns reviews matching the filter, newest first
func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter) ([]domain.Review, error) {
	qb := sq.Select("*").From("reviews").OrderBy("created_at DESC", "ref")
	if f.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.Identity != "" {
		qb = qb.Where(sq.Eq{"identity": f.Identity})
	}
	if f.Limit > 0 {
		qb = qb.Limit(f.Limit)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []reviewSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, &domain.StorageFailure{Op: "list reviews", Err: err}
	}
	res := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// Suppressed reports if a pending or rejected review exists for identity at the same price.
// Such a listing must not be queued again until its price changes.
func (r *ReviewRepository) Suppressed(ctx context.Context, identity string, price float64) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").From("reviews").
		Where(sq.Eq{"identity": identity, "status": []string{string(domain.ReviewPending), string(domain.ReviewRejected)}}).
		Where(sq.Expr("ABS(price - ?) < ?", price, PriceEpsilon)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build pending query: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, &domain.StorageFailure{Op: "suppressed review", Err: err}
	}
	return count > 0, nil
}

// CountPending returns the number of reviews waiting for a decision
func (r *ReviewRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM reviews WHERE status = ?", string(domain.ReviewPending))
	if err != nil {
		return 0, &domain.StorageFailure{Op: "count reviews", Err: err}
	}
	return count, nil
}

// Resolve moves a pending review to status. Returns false if the review was not pending,
// so resolving twice is a no-op.
func (r *ReviewRepository) Resolve(ctx context.Context, ref string, status domain.ReviewStatus) (bool, error) {
	query, args, err := sq.Update("reviews").
		Set("status", string(status)).
		Set("resolved_at", r.now()).
		Where(sq.Eq{"ref": ref, "status": string(domain.ReviewPending)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build resolve query: %w", err)
	}
	var changed bool
	err = withRetry(ctx, "resolve review", func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		changed = n > 0
		return err
	})
	return changed, err
}

// Reopen moves a resolved review back to pending
func (r *ReviewRepository) Reopen(ctx context.Context, ref string) error {
	return withRetry(ctx, "reopen review", func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE reviews SET status = ?, resolved_at = NULL WHERE ref = ?",
			string(domain.ReviewPending), ref)
		return err
	})
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, ref string) error {
	return withRetry(ctx, "delete review", func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE ref = ?", ref)
		return err
	})
}

// PurgeResolved deletes resolved reviews older than olderThan
func (r *ReviewRepository) PurgeResolved(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := sq.Delete("reviews").
		Where(sq.NotEq{"status": string(domain.ReviewPending)}).
		Where(sq.Lt{"resolved_at": olderThan.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}
	var purged int64
	err = withRetry(ctx, "purge reviews", func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		purged, err = res.RowsAffected()
		return err
	})
	return purged, err
}

func (s reviewSQL) toDomain() domain.Review {
	return domain.Review{
		Ref:        s.Ref,
		Listing:    domain.ScoredListing(s.Listing),
		Reason:     domain.Reason(s.Reason),
		OldPrice:   s.OldPrice,
		Status:     domain.ReviewStatus(s.Status),
		CreatedAt:  s.CreatedAt,
		ResolvedAt: s.ResolvedAt,
	}
}
