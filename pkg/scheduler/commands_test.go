package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/scheduler/mocks"
	"github.com/umputun/dealscope/pkg/source"
)

func TestScheduler_ForceScan(t *testing.T) {
	s := newTestEnv().scheduler()
	assert.True(t, s.ForceScan())
	assert.False(t, s.ForceScan(), "second request coalesces with the pending one")
	<-s.wake
	assert.True(t, s.ForceScan())
}

func TestScheduler_Mode(t *testing.T) {
	env := newTestEnv()
	s := env.scheduler()

	state, err := s.ToggleMode(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Autonomous)

	state, err = s.SetMode(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, state.Autonomous, "setting the current value keeps it")

	state, err = s.ToggleMode(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Autonomous)

	env.mode.ToggleFunc = func(context.Context) (domain.ModeState, error) {
		return domain.ModeState{}, errors.New("read only")
	}
	_, err = s.ToggleMode(context.Background())
	require.EqualError(t, err, "toggle mode: read only")
}

func TestScheduler_AddBlacklistTerm(t *testing.T) {
	env := newTestEnv()
	s := env.scheduler()

	added, err := s.AddBlacklistTerm(context.Background(), "  vape ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "vape", env.lists.AddBlacklistTermCalls()[0].Term)

	added, err = s.AddBlacklistTerm(context.Background(), "vape")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = s.AddBlacklistTerm(context.Background(), " ")
	require.Error(t, err)
	assert.Len(t, env.lists.AddBlacklistTermCalls(), 2)
}

func TestScheduler_AddManualURL(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := newTestEnv().scheduler()
		_, err := s.AddManualURL(context.Background(), "https://www.amazon.com.br/dp/B0ABCDEFGH")
		require.ErrorIs(t, err, ErrManualDisabled)
	})

	t.Run("queued and scan requested", func(t *testing.T) {
		env := newTestEnv()
		queued := map[string]bool{}
		manual := &mocks.ManualQueueMock{
			AddFunc: func(rawURL string) (bool, error) {
				if queued[rawURL] {
					return false, nil
				}
				queued[rawURL] = true
				return true, nil
			},
		}
		p := env.params()
		p.Manual = manual
		s := NewScheduler(p)

		added, err := s.AddManualURL(context.Background(), "https://www.amazon.com.br/dp/B0ABCDEFGH")
		require.NoError(t, err)
		assert.True(t, added)
		assert.Len(t, s.wake, 1)

		<-s.wake
		added, err = s.AddManualURL(context.Background(), "https://www.amazon.com.br/dp/B0ABCDEFGH")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Empty(t, s.wake, "duplicate does not wake the loop")
	})

	t.Run("invalid url", func(t *testing.T) {
		env := newTestEnv()
		p := env.params()
		p.Manual = &mocks.ManualQueueMock{AddFunc: func(string) (bool, error) { return false, errors.New("no host") }}
		s := NewScheduler(p)
		_, err := s.AddManualURL(context.Background(), "nope")
		require.EqualError(t, err, "no host")
	})
}

// queueOne runs a manual-mode cycle with a single deal and returns its review ref
func queueOne(t *testing.T, env *testEnv, s *Scheduler, l domain.Listing) string {
	t.Helper()
	s.sources = []source.Entry{entry(staticSource("ml", l))}
	rep, err := s.RunCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, rep.Queued)
	calls := env.notifier.PublishCalls()
	return calls[len(calls)-1].N.Ref
}

func TestScheduler_Approve(t *testing.T) {
	env := newTestEnv()
	s := env.scheduler()
	ref := queueOne(t, env, s, hotDeal)

	ok, err := s.Approve(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, ok)

	calls := env.notifier.PublishCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.TargetChannel, calls[1].Target)
	assert.Equal(t, domain.Decision{Outcome: domain.OutcomePublished, Reason: domain.ReasonManualMode}, calls[1].N.Decision)
	assert.Equal(t, "https://www.example.com/MLB1?aff=1", calls[1].N.Deal.AffiliateURL)
	assert.Empty(t, env.minter.MintCalls(), "link minted during the cycle is reused")
	assert.InDelta(t, 40, env.seenPrices["MLB1"], 0.001)
	assert.Equal(t, domain.ReviewApproved, env.reviews[ref].Status)

	ok, err = s.Approve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, ok, "already approved")
	assert.Len(t, env.notifier.PublishCalls(), 2)

	ok, err = s.Approve(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Sent)
	assert.Zero(t, st.Queued)
}

func TestScheduler_ApproveMintsMissingLink(t *testing.T) {
	env := newTestEnv()
	env.minter.MintBatchFunc = func(_ context.Context, urls []string) []string { return make([]string, len(urls)) }
	s := env.scheduler()
	ref := queueOne(t, env, s, hotDeal)

	ok, err := s.Approve(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, env.minter.MintCalls(), 1)
	assert.Equal(t, "https://www.example.com/MLB1?aff=1", env.notifier.PublishCalls()[1].N.Deal.AffiliateURL)

	t.Run("mint still failing keeps the review", func(t *testing.T) {
		env := newTestEnv()
		env.minter.MintBatchFunc = func(_ context.Context, urls []string) []string { return make([]string, len(urls)) }
		env.minter.MintFunc = func(context.Context, string) (string, error) { return "", nil }
		s := env.scheduler()
		ref := queueOne(t, env, s, hotDeal)

		ok, err := s.Approve(context.Background(), ref)
		var mf *domain.MintFailure
		require.ErrorAs(t, err, &mf)
		assert.False(t, ok)
		assert.Equal(t, domain.ReviewPending, env.reviews[ref].Status, "reopened")
		assert.Empty(t, env.seen.RecordCalls())
	})
}

func TestScheduler_ApprovePublishFailure(t *testing.T) {
	env := newTestEnv()
	env.seenPrices["MLB1"] = 50
	s := env.scheduler()
	ref := queueOne(t, env, s, hotDeal) // price drop from 50

	env.notifier.PublishFunc = func(_ context.Context, _ domain.Notice, target domain.Target) error {
		return &domain.PublishFailure{Target: target, Err: errors.New("chat not found")}
	}
	ok, err := s.Approve(context.Background(), ref)
	var pf *domain.PublishFailure
	require.ErrorAs(t, err, &pf)
	assert.False(t, ok)

	assert.Equal(t, domain.ReviewPending, env.reviews[ref].Status, "review reopened")
	require.Len(t, env.seen.RestoreCalls(), 1)
	assert.InDelta(t, 50, env.seen.RestoreCalls()[0].Prev.LastPrice, 0.001)
	assert.InDelta(t, 50, env.seenPrices["MLB1"], 0.001, "previous price restored")

	// retry succeeds and carries the old price
	env.notifier.PublishFunc = func(context.Context, domain.Notice, domain.Target) error { return nil }
	ok, err = s.Approve(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, ok)
	last := env.notifier.PublishCalls()[len(env.notifier.PublishCalls())-1]
	assert.InDelta(t, 50, last.N.OldPrice, 0.001)
	assert.Equal(t, domain.ReasonPriceDrop, last.N.Decision.Reason)
}

func TestScheduler_ApproveStorageErrors(t *testing.T) {
	env := newTestEnv()
	env.queue.GetFunc = func(context.Context, string) (*domain.Review, error) { return nil, errors.New("locked") }
	s := env.scheduler()
	_, err := s.Approve(context.Background(), "ref-1")
	require.EqualError(t, err, "get review ref-1: locked")

	env = newTestEnv()
	s = env.scheduler()
	ref := queueOne(t, env, s, hotDeal)
	env.seen.RecordFunc = func(context.Context, domain.Listing) (*domain.SeenRecord, error) {
		return nil, &domain.StorageFailure{Op: "record", Err: errors.New("disk full")}
	}
	_, err = s.Approve(context.Background(), ref)
	var sf *domain.StorageFailure
	require.ErrorAs(t, err, &sf)
	assert.Equal(t, domain.ReviewPending, env.reviews[ref].Status)
	assert.Len(t, env.notifier.PublishCalls(), 1, "nothing sent to the channel")
}

func TestScheduler_Reject(t *testing.T) {
	env := newTestEnv()
	s := env.scheduler()
	ref := queueOne(t, env, s, hotDeal)

	ok, err := s.Reject(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.ReviewRejected, env.reviews[ref].Status)
	assert.Empty(t, env.seen.RecordCalls())

	ok, err = s.Reject(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Approve(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, ok, "rejected review can't be approved")

	// rejected at the same price is not queued again
	rep, err := s.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Queued)
}

func TestScheduler_StatusPartial(t *testing.T) {
	env := newTestEnv()
	env.autonomous = true
	env.seen.CountFunc = func(context.Context) (int64, error) { return 0, errors.New("locked") }
	s := env.scheduler()
	s.count(func(st *domain.Stats) { st.Sent = 7; st.TotalSeen = 3 })

	st, err := s.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.Equal(t, int64(7), st.Sent)
	assert.Equal(t, int64(3), st.TotalSeen, "failed field left as counted")
	assert.True(t, st.Autonomous)
}
