// Package scheduler runs the deal cycle loop and implements the operator commands.
//
// Each cycle gathers listings from the due sources, scores and deduplicates them, filters out
// already announced items, applies the category quotas, decides the outcome of every listing
// and delivers it to the channel or the review queue. Between cycles the loop sleeps for the
// configured interval or until ForceScan wakes it.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/decision"
	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/lists"
	"github.com/umputun/dealscope/pkg/metrics"
	"github.com/umputun/dealscope/pkg/scoring"
	"github.com/umputun/dealscope/pkg/source"
)

//go:generate moq -out mocks/seen_store.go -pkg mocks -skip-ensure -fmt goimports . SeenStore
//go:generate moq -out mocks/mode_store.go -pkg mocks -skip-ensure -fmt goimports . ModeStore
//go:generate moq -out mocks/review_queue.go -pkg mocks -skip-ensure -fmt goimports . ReviewQueue
//go:generate moq -out mocks/list_provider.go -pkg mocks -skip-ensure -fmt goimports . ListProvider
//go:generate moq -out mocks/trend_provider.go -pkg mocks -skip-ensure -fmt goimports . TrendProvider
//go:generate moq -out mocks/minter.go -pkg mocks -skip-ensure -fmt goimports . Minter
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/manual_queue.go -pkg mocks -skip-ensure -fmt goimports . ManualQueue

// SeenStore keeps the last announced price per identity
type SeenStore interface {
	IsRepublishable(ctx context.Context, identity string, price float64) (domain.RepublishState, error)
	Record(ctx context.Context, l domain.Listing) (*domain.SeenRecord, error)
	Restore(ctx context.Context, identity string, prev *domain.SeenRecord) error
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ModeStore holds the autonomous flag
type ModeStore interface {
	Get(ctx context.Context) (domain.ModeState, error)
	Set(ctx context.Context, autonomous bool) (domain.ModeState, error)
	Toggle(ctx context.Context) (domain.ModeState, error)
}

// ReviewQueue stores deals waiting for approval
type ReviewQueue interface {
	Enqueue(ctx context.Context, rv *domain.Review) error
	Get(ctx context.Context, ref string) (*domain.Review, error)
	Suppressed(ctx context.Context, identity string, price float64) (bool, error)
	CountPending(ctx context.Context) (int64, error)
	Resolve(ctx context.Context, ref string, status domain.ReviewStatus) (bool, error)
	Reopen(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	PurgeResolved(ctx context.Context, olderThan time.Time) (int64, error)
}

// ListProvider gives the current blacklist and hot terms
type ListProvider interface {
	Current() lists.Snapshot
	AddBlacklistTerm(term string) (bool, error)
}

// TrendProvider returns trending terms
type TrendProvider interface {
	CurrentTerms(ctx context.Context) ([]domain.TrendingTerm, error)
}

// Minter makes affiliate links
type Minter interface {
	Mint(ctx context.Context, rawURL string) (string, error)
	MintBatch(ctx context.Context, urls []string) []string
}

// Notifier delivers deals and status reports
type Notifier interface {
	Publish(ctx context.Context, n domain.Notice, target domain.Target) error
	PublishStatus(ctx context.Context, stats domain.Stats) error
}

// ManualQueue is the source of operator-submitted urls
type ManualQueue interface {
	Name() string
	Fetch(ctx context.Context, query string, max int) ([]domain.Listing, error)
	Add(rawURL string) (bool, error)
	Pending() int
}

// Params holds scheduler dependencies and settings
type Params struct {
	Sources  []source.Entry
	Manual   ManualQueue   // optional
	Trends   TrendProvider // optional
	Lists    ListProvider
	Seen     SeenStore
	Mode     ModeStore
	Reviews  ReviewQueue
	Minter   Minter
	Notifier Notifier
	Scorer   *scoring.Scorer
	Limiter  *scoring.Limiter
	Decider  *decision.Decider
	Metrics  *metrics.Metrics // optional

	Interval        time.Duration // pause between cycles
	Cooldown        time.Duration // pause after a failed cycle
	MaxWorkers      int           // concurrent source fetches
	PublishDelay    time.Duration // minimum gap between outbound messages
	ReportEvery     int           // status report every N cycles, 0 disables
	Retention       time.Duration // seen items and resolved reviews older than this are purged
	CleanupInterval time.Duration // how often the retention sweep runs
}

// Scheduler runs the deal cycle loop
type Scheduler struct {
	sources  []source.Entry
	manual   ManualQueue
	trends   TrendProvider
	lists    ListProvider
	seen     SeenStore
	mode     ModeStore
	reviews  ReviewQueue
	minter   Minter
	notifier Notifier
	scorer   *scoring.Scorer
	limiter  *scoring.Limiter
	decider  *decision.Decider
	metrics  *metrics.Metrics

	interval        time.Duration
	cooldown        time.Duration
	maxWorkers      int
	publishDelay    time.Duration
	reportEvery     int
	retention       time.Duration
	cleanupInterval time.Duration

	wake chan struct{}
	now  func() time.Time

	sendMu   sync.Mutex // one outbound message at a time, shared by cycle and commands
	lastSent time.Time

	statsMu     sync.Mutex
	stats       domain.Stats
	lastCleanup time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler. Zero settings get defaults.
func NewScheduler(params Params) *Scheduler {
	if params.Interval <= 0 {
		params.Interval = 30 * time.Minute
	}
	if params.Cooldown <= 0 {
		params.Cooldown = time.Minute
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	if params.PublishDelay < 0 {
		params.PublishDelay = 0
	}
	if params.Retention <= 0 {
		params.Retention = 15 * 24 * time.Hour
	}
	if params.CleanupInterval <= 0 {
		params.CleanupInterval = 24 * time.Hour
	}
	if params.Scorer == nil {
		params.Scorer = scoring.NewScorer()
	}
	if params.Limiter == nil {
		params.Limiter = scoring.NewLimiter(nil, 5)
	}
	if params.Decider == nil {
		params.Decider = decision.New(30, 60)
	}

	return &Scheduler{
		sources:         params.Sources,
		manual:          params.Manual,
		trends:          params.Trends,
		lists:           params.Lists,
		seen:            params.Seen,
		mode:            params.Mode,
		reviews:         params.Reviews,
		minter:          params.Minter,
		notifier:        params.Notifier,
		scorer:          params.Scorer,
		limiter:         params.Limiter,
		decider:         params.Decider,
		metrics:         params.Metrics,
		interval:        params.Interval,
		cooldown:        params.Cooldown,
		maxWorkers:      params.MaxWorkers,
		publishDelay:    params.PublishDelay,
		reportEvery:     params.ReportEvery,
		retention:       params.Retention,
		cleanupInterval: params.CleanupInterval,
		wake:            make(chan struct{}, 1),
		now:             time.Now,
	}
}

// Start begins the cycle loop
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if mode, err := s.mode.Get(ctx); err == nil {
		s.metrics.SetAutonomous(mode.Autonomous)
	}

	s.wg.Add(1)
	go s.loop(ctx)

	lgr.Printf("[INFO] scheduler started with %d sources, interval %v, publish delay %v",
		len(s.sources), s.interval, s.publishDelay)
}

// Stop gracefully stops the scheduler, an in-flight delivery is finished first
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// loop runs cycles until the context is canceled. A failed cycle is followed by the cooldown.
func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		wait := s.interval
		if err := s.safeCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			lgr.Printf("[ERROR] cycle failed, retry in %v: %v", s.cooldown, err)
			wait = s.cooldown
		}

		if !s.waitNext(ctx, wait) {
			return
		}
	}
}

// safeCycle runs one cycle and turns a panic into an error
func (s *Scheduler) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in cycle: %v", r)
		}
	}()
	_, err = s.RunCycle(ctx)
	return err
}

// waitNext sleeps for d or until woken, returns false when the context is done
func (s *Scheduler) waitNext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-s.wake:
		lgr.Printf("[DEBUG] scan requested, starting cycle early")
		return true
	case <-timer.C:
		return true
	}
}

// deliver sends one outbound message, keeping at least publishDelay since the previous one.
// The wait can be interrupted by ctx, the send itself is not.
func (s *Scheduler) deliver(ctx context.Context, send func(ctx context.Context) error) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if !s.lastSent.IsZero() && s.publishDelay > 0 {
		if wait := s.publishDelay - s.now().Sub(s.lastSent); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	err := send(context.WithoutCancel(ctx))
	s.lastSent = s.now()
	return err
}

// count updates stats under lock
func (s *Scheduler) count(fn func(st *domain.Stats)) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	fn(&s.stats)
}
