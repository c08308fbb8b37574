package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
)

func TestSeenRepository_RecordLookup(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	rec, err := repos.Seen.Lookup(ctx, "MLB100")
	require.NoError(t, err)
	assert.Nil(t, rec, "absent identity")

	prev, err := repos.Seen.Record(ctx, domain.Listing{Identity: "MLB100", Price: 45, Title: "Tênis",
		URL: "https://produto.mercadolivre.com.br/MLB-100", Store: "Mercado Livre"})
	require.NoError(t, err)
	assert.Nil(t, prev)

	rec, err = repos.Seen.Lookup(ctx, "MLB100")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.InDelta(t, 45, rec.LastPrice, 0.0001, "round trip keeps the price")
	assert.Equal(t, "Tênis", rec.Title)
	assert.Equal(t, "Mercado Livre", rec.Store)
	assert.False(t, rec.FirstSeenAt.IsZero())
	firstSeen := rec.FirstSeenAt

	repos.Seen.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }
	prev, err = repos.Seen.Record(ctx, domain.Listing{Identity: "MLB100", Price: 39.9, Title: "Tênis X"})
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.InDelta(t, 45, prev.LastPrice, 0.0001)

	rec, err = repos.Seen.Lookup(ctx, "MLB100")
	require.NoError(t, err)
	assert.InDelta(t, 39.9, rec.LastPrice, 0.0001)
	assert.True(t, rec.FirstSeenAt.Equal(firstSeen), "first seen kept")
	assert.True(t, rec.LastSeenAt.After(firstSeen), "last seen refreshed")

	count, err := repos.Seen.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeenRepository_RecordEmptyIdentity(t *testing.T) {
	repos := setupTestDB(t)
	_, err := repos.Seen.Record(context.Background(), domain.Listing{Price: 1})
	var sf *domain.StorageFailure
	require.ErrorAs(t, err, &sf)
}

func TestSeenRepository_IsRepublishable(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	st, err := repos.Seen.IsRepublishable(ctx, "A1", 45)
	require.NoError(t, err)
	assert.Equal(t, domain.RepublishNew, st.Kind)

	_, err = repos.Seen.Record(ctx, domain.Listing{Identity: "A1", Price: 45})
	require.NoError(t, err)

	tests := []struct {
		name  string
		price float64
		want  domain.RepublishState
	}{
		{name: "same price", price: 45, want: domain.RepublishState{Kind: domain.RepublishUnchanged}},
		{name: "within epsilon", price: 45.009, want: domain.RepublishState{Kind: domain.RepublishUnchanged}},
		{name: "one cent lower", price: 44.98, want: domain.RepublishState{Kind: domain.RepublishPriceDropped, OldPrice: 45}},
		{name: "dropped", price: 30, want: domain.RepublishState{Kind: domain.RepublishPriceDropped, OldPrice: 45}},
		{name: "raised", price: 60, want: domain.RepublishState{Kind: domain.RepublishPriceDropped, OldPrice: 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := repos.Seen.IsRepublishable(ctx, "A1", tt.price)
			require.NoError(t, err)
			assert.Equal(t, tt.want, first)

			second, err := repos.Seen.IsRepublishable(ctx, "A1", tt.price)
			require.NoError(t, err)
			assert.Equal(t, first, second, "idempotent without record")
		})
	}
}

func TestSeenRepository_PriceDropScenario(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	_, err := repos.Seen.Record(ctx, domain.Listing{Identity: "MLB7", Price: 100})
	require.NoError(t, err)

	st, err := repos.Seen.IsRepublishable(ctx, "MLB7", 45)
	require.NoError(t, err)
	assert.Equal(t, domain.RepublishPriceDropped, st.Kind)
	assert.InDelta(t, 100, st.OldPrice, 0.0001)
}

func TestSeenRepository_Restore(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("new identity removed", func(t *testing.T) {
		prev, err := repos.Seen.Record(ctx, domain.Listing{Identity: "N1", Price: 10})
		require.NoError(t, err)
		require.NoError(t, repos.Seen.Restore(ctx, "N1", prev))
		rec, err := repos.Seen.Lookup(ctx, "N1")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("existing identity rolled back", func(t *testing.T) {
		_, err := repos.Seen.Record(ctx, domain.Listing{Identity: "E1", Price: 100, Title: "old"})
		require.NoError(t, err)
		prev, err := repos.Seen.Record(ctx, domain.Listing{Identity: "E1", Price: 80, Title: "new"})
		require.NoError(t, err)
		require.NoError(t, repos.Seen.Restore(ctx, "E1", prev))

		rec, err := repos.Seen.Lookup(ctx, "E1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.InDelta(t, 100, rec.LastPrice, 0.0001)
		assert.Equal(t, "old", rec.Title)
		assert.True(t, rec.LastSeenAt.Equal(prev.LastSeenAt))
	})
}

func TestSeenRepository_PurgeRecent(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, age := range []time.Duration{20 * 24 * time.Hour, 16 * 24 * time.Hour, time.Hour, time.Minute} {
		repos.Seen.now = func() time.Time { return now.Add(-age) }
		_, err := repos.Seen.Record(ctx, domain.Listing{Identity: fmt.Sprintf("id%d", i), Price: float64(i + 1)})
		require.NoError(t, err)
	}

	recent, err := repos.Seen.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "id3", recent[0].Identity)
	assert.Equal(t, "id2", recent[1].Identity)
	assert.Equal(t, "id1", recent[2].Identity)

	purged, err := repos.Seen.Purge(ctx, now.Add(-15*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	count, err := repos.Seen.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSeenRepository_ConcurrentRecord(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity := fmt.Sprintf("c%d", i%4)
			_, err := repos.Seen.Record(ctx, domain.Listing{Identity: identity, Price: float64(i)})
			assert.NoError(t, err)
			_, err = repos.Seen.Lookup(ctx, identity)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := repos.Seen.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.RepublishNew, Classify(nil, 10).Kind)
	assert.Equal(t, domain.RepublishUnchanged, Classify(&domain.SeenRecord{LastPrice: 10}, 10.005).Kind)
	st := Classify(&domain.SeenRecord{LastPrice: 10}, 9.98)
	assert.Equal(t, domain.RepublishPriceDropped, st.Kind)
	assert.InDelta(t, 10, st.OldPrice, 0.0001)
}
