package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
)

func testReview(identity string, price float64) *domain.Review {
	return &domain.Review{
		Listing: domain.ScoredListing{
			Listing: domain.Listing{Identity: identity, Title: "Fone " + identity, Price: price,
				OriginalPrice: domain.Float64(price * 2), URL: "https://example.com/" + identity, Origin: domain.OriginFeed},
			Score:    55,
			Category: "electronics",
		},
		Reason: domain.ReasonManualMode,
	}
}

func TestReviewRepository_EnqueueGet(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	rv := testReview("MLB1", 50)
	require.NoError(t, repos.Review.Enqueue(ctx, rv))
	assert.NotEmpty(t, rv.Ref)
	assert.Equal(t, domain.ReviewPending, rv.Status)
	assert.False(t, rv.CreatedAt.IsZero())

	got, err := repos.Review.Get(ctx, rv.Ref)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rv.Ref, got.Ref)
	assert.Equal(t, "MLB1", got.Listing.Identity)
	assert.Equal(t, "Fone MLB1", got.Listing.Title)
	require.NotNil(t, got.Listing.OriginalPrice)
	assert.InDelta(t, 100, *got.Listing.OriginalPrice, 0.001)
	assert.InDelta(t, 55, got.Listing.Score, 0.001)
	assert.Equal(t, "electronics", got.Listing.Category)
	assert.Equal(t, domain.ReasonManualMode, got.Reason)
	assert.Nil(t, got.ResolvedAt)

	missing, err := repos.Review.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReviewRepository_Resolve(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	rv := testReview("MLB2", 70)
	require.NoError(t, repos.Review.Enqueue(ctx, rv))

	changed, err := repos.Review.Resolve(ctx, rv.Ref, domain.ReviewApproved)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repos.Review.Resolve(ctx, rv.Ref, domain.ReviewRejected)
	require.NoError(t, err)
	assert.False(t, changed, "second resolve is a no-op")

	got, err := repos.Review.Get(ctx, rv.Ref)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewApproved, got.Status)
	assert.NotNil(t, got.ResolvedAt)

	changed, err = repos.Review.Resolve(ctx, "unknown", domain.ReviewApproved)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, repos.Review.Reopen(ctx, rv.Ref))
	got, err = repos.Review.Get(ctx, rv.Ref)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewPending, got.Status)
	assert.Nil(t, got.ResolvedAt)
}

func TestReviewRepository_ListPending(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC()

	var refs []string
	for i, id := range []string{"a", "b", "c"} {
		rv := testReview(id, 10)
		rv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repos.Review.Enqueue(ctx, rv))
		refs = append(refs, rv.Ref)
	}
	_, err := repos.Review.Resolve(ctx, refs[1], domain.ReviewRejected)
	require.NoError(t, err)

	all, err := repos.Review.List(ctx, ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Listing.Identity, "newest first")

	pending, err := repos.Review.List(ctx, ReviewFilter{Status: domain.ReviewPending})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "c", pending[0].Listing.Identity)
	assert.Equal(t, "a", pending[1].Listing.Identity)

	limited, err := repos.Review.List(ctx, ReviewFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	byID, err := repos.Review.List(ctx, ReviewFilter{Identity: "b"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, domain.ReviewRejected, byID[0].Status)

	count, err := repos.Review.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReviewRepository_Suppressed(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	rv := testReview("MLB3", 99.9)
	require.NoError(t, repos.Review.Enqueue(ctx, rv))

	ok, err := repos.Review.Suppressed(ctx, "MLB3", 99.9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Review.Suppressed(ctx, "MLB3", 89.9)
	require.NoError(t, err)
	assert.False(t, ok, "different price is not suppressed")

	ok, err = repos.Review.Suppressed(ctx, "other", 99.9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repos.Review.Resolve(ctx, rv.Ref, domain.ReviewRejected)
	require.NoError(t, err)
	ok, err = repos.Review.Suppressed(ctx, "MLB3", 99.9)
	require.NoError(t, err)
	assert.True(t, ok, "rejected at the same price stays suppressed")

	approved := testReview("MLB4", 10)
	require.NoError(t, repos.Review.Enqueue(ctx, approved))
	_, err = repos.Review.Resolve(ctx, approved.Ref, domain.ReviewApproved)
	require.NoError(t, err)
	ok, err = repos.Review.Suppressed(ctx, "MLB4", 10)
	require.NoError(t, err)
	assert.False(t, ok, "approved reviews do not suppress")
}

func TestReviewRepository_DeletePurge(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	keep := testReview("keep", 1)
	require.NoError(t, repos.Review.Enqueue(ctx, keep))
	gone := testReview("gone", 1)
	require.NoError(t, repos.Review.Enqueue(ctx, gone))
	require.NoError(t, repos.Review.Delete(ctx, gone.Ref))

	got, err := repos.Review.Get(ctx, gone.Ref)
	require.NoError(t, err)
	assert.Nil(t, got)

	old := testReview("old", 1)
	require.NoError(t, repos.Review.Enqueue(ctx, old))
	repos.Review.now = func() time.Time { return time.Now().UTC().Add(-30 * 24 * time.Hour) }
	_, err = repos.Review.Resolve(ctx, old.Ref, domain.ReviewRejected)
	require.NoError(t, err)

	purged, err := repos.Review.PurgeResolved(ctx, time.Now().Add(-15*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	got, err = repos.Review.Get(ctx, keep.Ref)
	require.NoError(t, err)
	assert.NotNil(t, got, "pending reviews are never purged")
}
