package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/metrics"
)

// ErrManualDisabled is returned by AddManualURL when no manual source is configured
var ErrManualDisabled = errors.New("manual urls are not enabled")

// ForceScan wakes the loop for an early cycle. Returns false if a scan is already requested.
// A running cycle is not interrupted, the wake applies to the next sleep.
func (s *Scheduler) ForceScan() bool {
	select {
	case s.wake <- struct{}{}:
		lgr.Printf("[INFO] scan requested")
		return true
	default:
		return false
	}
}

// ToggleMode flips the autonomous flag
func (s *Scheduler) ToggleMode(ctx context.Context) (domain.ModeState, error) {
	state, err := s.mode.Toggle(ctx)
	if err != nil {
		return domain.ModeState{}, fmt.Errorf("toggle mode: %w", err)
	}
	s.metrics.SetAutonomous(state.Autonomous)
	lgr.Printf("[INFO] autonomous mode toggled to %v", state.Autonomous)
	return state, nil
}

// SetMode sets the autonomous flag, setting the current value is a no-op
func (s *Scheduler) SetMode(ctx context.Context, autonomous bool) (domain.ModeState, error) {
	state, err := s.mode.Set(ctx, autonomous)
	if err != nil {
		return domain.ModeState{}, fmt.Errorf("set mode: %w", err)
	}
	s.metrics.SetAutonomous(state.Autonomous)
	lgr.Printf("[INFO] autonomous mode set to %v", state.Autonomous)
	return state, nil
}

// AddBlacklistTerm appends a term to the blacklist file, returns false if already present.
// The term applies from the next cycle.
func (s *Scheduler) AddBlacklistTerm(_ context.Context, term string) (bool, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return false, errors.New("empty blacklist term")
	}
	added, err := s.lists.AddBlacklistTerm(term)
	if err != nil {
		return false, fmt.Errorf("add blacklist term: %w", err)
	}
	if added {
		lgr.Printf("[INFO] blacklist term added: %q", term)
	}
	return added, nil
}

// AddManualURL queues a product url for the next cycle and requests an early scan.
// Returns false if the url is already queued.
func (s *Scheduler) AddManualURL(_ context.Context, rawURL string) (bool, error) {
	if s.manual == nil {
		return false, ErrManualDisabled
	}
	added, err := s.manual.Add(rawURL)
	if err != nil {
		return false, err
	}
	if added {
		lgr.Printf("[INFO] manual url queued: %s", rawURL)
		s.ForceScan()
	}
	return added, nil
}

// Approve publishes a pending review to the channel. Returns false without error when the
// review is unknown or already resolved. On failure the review is put back to pending.
func (s *Scheduler) Approve(ctx context.Context, ref string) (bool, error) {
	rv, err := s.reviews.Get(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("get review %s: %w", ref, err)
	}
	if rv == nil || rv.Status != domain.ReviewPending {
		return false, nil
	}

	// claim the review first, a concurrent approve or reject sees it resolved
	claimed, err := s.reviews.Resolve(ctx, ref, domain.ReviewApproved)
	if err != nil {
		return false, fmt.Errorf("resolve review %s: %w", ref, err)
	}
	if !claimed {
		return false, nil
	}

	if err := s.publishApproved(ctx, rv); err != nil {
		if rerr := s.reviews.Reopen(context.WithoutCancel(ctx), ref); rerr != nil {
			lgr.Printf("[ERROR] failed to reopen review %s: %v", ref, rerr)
			s.storageFailure()
		}
		return false, err
	}

	lgr.Printf("[INFO] approved %s %q, ref %s", rv.Listing.Identity, rv.Listing.Title, ref)
	return true, nil
}

// publishApproved mints the link if it is missing, records and publishes the deal
func (s *Scheduler) publishApproved(ctx context.Context, rv *domain.Review) error {
	deal := rv.Listing
	if deal.AffiliateURL == "" {
		link, err := s.minter.Mint(ctx, deal.URL)
		if err != nil || link == "" {
			s.count(func(st *domain.Stats) { st.MintFailures++ })
			s.metrics.Failure(metrics.FailureMint)
			if err == nil {
				err = &domain.MintFailure{URL: deal.URL, Err: errors.New("empty link")}
			}
			return err
		}
		deal.AffiliateURL = link
	}

	prev, err := s.seen.Record(ctx, deal.Listing)
	if err != nil {
		s.storageFailure()
		return err
	}

	dec := domain.Decision{Outcome: domain.OutcomePublished, Reason: rv.Reason}
	n := domain.Notice{Deal: deal, Decision: dec, OldPrice: rv.OldPrice}
	err = s.deliver(ctx, func(ctx context.Context) error { return s.notifier.Publish(ctx, n, domain.TargetChannel) })
	if err != nil {
		s.publishFailure()
		if rerr := s.seen.Restore(context.WithoutCancel(ctx), deal.Identity, prev); rerr != nil {
			lgr.Printf("[ERROR] failed to restore seen record of %s: %v", deal.Identity, rerr)
			s.storageFailure()
		}
		return err
	}

	s.count(func(st *domain.Stats) { st.Sent++ })
	s.metrics.Decision(string(dec.Outcome), string(dec.Reason))
	return nil
}

// Reject resolves a pending review as rejected. The listing is not recorded and stays
// suppressed until its price changes. Returns false when unknown or already resolved.
func (s *Scheduler) Reject(ctx context.Context, ref string) (bool, error) {
	ok, err := s.reviews.Resolve(ctx, ref, domain.ReviewRejected)
	if err != nil {
		return false, fmt.Errorf("resolve review %s: %w", ref, err)
	}
	if ok {
		lgr.Printf("[INFO] rejected review %s", ref)
		s.metrics.Decision(string(domain.OutcomeDiscarded), string(domain.ReviewRejected))
	}
	return ok, nil
}

// Status returns the counters with current pending, seen and mode values.
// On a storage error the counters are still returned, with the failed fields left as counted.
func (s *Scheduler) Status(ctx context.Context) (domain.Stats, error) {
	s.statsMu.Lock()
	st := s.stats
	s.statsMu.Unlock()

	var errs []error
	if pending, err := s.reviews.CountPending(ctx); err == nil {
		st.Queued = pending
	} else {
		errs = append(errs, err)
	}
	if total, err := s.seen.Count(ctx); err == nil {
		st.TotalSeen = total
	} else {
		errs = append(errs, err)
	}
	if mode, err := s.mode.Get(ctx); err == nil {
		st.Autonomous = mode.Autonomous
	} else {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return st, fmt.Errorf("status: %w", errors.Join(errs...))
	}
	return st, nil
}
