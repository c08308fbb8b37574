package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/dealscope/pkg/decision"
	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/lists"
	"github.com/umputun/dealscope/pkg/metrics"
	"github.com/umputun/dealscope/pkg/source"
)

// hotTermCategory tags hot terms merged into the trending terms
const hotTermCategory = "hot"

// CycleReport summarizes one cycle
type CycleReport struct {
	Cycle       int64
	Fetched     int // listings accepted from all sources
	Candidates  int // after in-batch dedup and the seen filter
	Selected    int // after category quotas
	Published   int
	Queued      int
	Discarded   int
	Blacklisted int
	Failures    int
	Duration    time.Duration
}

// candidate is a selected listing with its decision
type candidate struct {
	deal  domain.ScoredListing
	state domain.RepublishState
	dec   domain.Decision
}

// RunCycle runs one full cycle. It returns an error only when the cycle could not make
// progress at all: every source failed, or the seen store rejected every candidate.
func (s *Scheduler) RunCycle(ctx context.Context) (CycleReport, error) {
	started := s.now()
	s.statsMu.Lock()
	rep := CycleReport{Cycle: s.stats.Cycles}
	s.statsMu.Unlock()
	lgr.Printf("[DEBUG] cycle %d started", rep.Cycle)

	snap := s.lists.Current()
	terms := s.trendingTerms(ctx, snap)

	results := s.gather(ctx, rep.Cycle, snap.HotTerms)
	var listings []domain.Listing
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			lgr.Printf("[WARN] %v", r.Err)
			s.count(func(st *domain.Stats) { st.SourceFailures++ })
			s.metrics.Failure(metrics.FailureSource)
		}
		s.metrics.Fetched(r.Source, len(r.Listings))
		listings = append(listings, r.Listings...)
	}
	rep.Fetched = len(listings)
	rep.Failures += failed
	s.count(func(st *domain.Stats) { st.Fetched += int64(len(listings)) })
	if ctx.Err() != nil {
		return rep, ctx.Err()
	}
	if failed > 0 && failed == len(results) && len(listings) == 0 {
		s.finishCycle(ctx, &rep, started)
		return rep, fmt.Errorf("all %d sources failed", failed)
	}

	scored := dedupBatch(s.scorer.Annotate(listings, terms))
	fresh, states, storageFailed := s.filterSeen(ctx, scored, &rep)
	rep.Candidates = len(fresh)

	// operator-submitted listings skip the quotas
	var regular, manual []domain.ScoredListing
	for _, l := range fresh {
		if l.Origin == domain.OriginManual {
			l.Category = s.limiter.Categorize(l.Title)
			manual = append(manual, l)
			continue
		}
		regular = append(regular, l)
	}
	selected := append(s.limiter.Limit(regular), manual...)
	rep.Selected = len(selected)

	cands := s.decide(ctx, selected, states, snap)
	s.mint(ctx, cands, &rep)
	s.deliverAll(ctx, cands, &rep)

	s.finishCycle(ctx, &rep, started)
	lgr.Printf("[INFO] cycle %d done in %v: fetched %d, candidates %d, selected %d, published %d, queued %d, discarded %d",
		rep.Cycle, rep.Duration.Round(time.Millisecond), rep.Fetched, rep.Candidates, rep.Selected,
		rep.Published, rep.Queued, rep.Discarded)

	if ctx.Err() != nil {
		return rep, ctx.Err()
	}
	if storageFailed > 0 && storageFailed == len(scored) {
		return rep, fmt.Errorf("seen store failed for all %d candidates", storageFailed)
	}
	return rep, nil
}

// trendingTerms returns provider terms followed by hot terms not already present
func (s *Scheduler) trendingTerms(ctx context.Context, snap lists.Snapshot) []domain.TrendingTerm {
	var terms []domain.TrendingTerm
	if s.trends != nil {
		t, err := s.trends.CurrentTerms(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to get trending terms: %v", err)
		}
		terms = append(terms, t...)
	}

	known := make(map[string]bool, len(terms))
	for _, t := range terms {
		known[strings.ToLower(t.Term)] = true
	}
	for _, h := range snap.HotTerms {
		if known[strings.ToLower(h)] {
			continue
		}
		known[strings.ToLower(h)] = true
		terms = append(terms, domain.TrendingTerm{Term: h, Rank: len(terms) + 1, Category: hotTermCategory})
	}
	return terms
}

// gather runs all due sources concurrently, bounded by maxWorkers. Results keep source order.
func (s *Scheduler) gather(ctx context.Context, cycle int64, hotTerms []string) []source.Result {
	var entries []source.Entry
	for _, e := range s.sources {
		if e.Due(cycle) {
			entries = append(entries, e)
		}
	}
	if s.manual != nil {
		if n := s.manual.Pending(); n > 0 {
			entries = append(entries, source.Entry{Source: s.manual, MaxResults: n})
		}
	}
	lgr.Printf("[DEBUG] cycle %d: %d of %d sources due", cycle, len(entries), len(s.sources))

	results := make([]source.Result, len(entries))
	g := errgroup.Group{}
	g.SetLimit(s.maxWorkers)
	now := s.now()
	for i, e := range entries {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = source.Result{Source: e.Source.Name(),
						Err: &domain.SourceFailure{Source: e.Source.Name(), Err: fmt.Errorf("panic: %v", r)}}
				}
			}()
			results[i] = e.Run(ctx, cycle, hotTerms, now)
			return nil // a failed source must not cancel the others
		})
	}
	_ = g.Wait()
	return results
}

// dedupBatch keeps one listing per identity: higher score, then higher best discount,
// then the earlier one. The kept listing takes the position of the first occurrence.
func dedupBatch(items []domain.ScoredListing) []domain.ScoredListing {
	pos := make(map[string]int, len(items))
	res := make([]domain.ScoredListing, 0, len(items))
	for _, it := range items {
		i, ok := pos[it.Identity]
		if !ok {
			pos[it.Identity] = len(res)
			res = append(res, it)
			continue
		}
		cur := res[i]
		if it.Score > cur.Score || (it.Score == cur.Score && it.BestDiscountPct() > cur.BestDiscountPct()) {
			res[i] = it
		}
	}
	return res
}

// filterSeen drops unchanged listings and those the store could not classify
func (s *Scheduler) filterSeen(ctx context.Context, items []domain.ScoredListing, rep *CycleReport) (
	fresh []domain.ScoredListing, states map[string]domain.RepublishState, failed int) {
	states = make(map[string]domain.RepublishState, len(items))
	for _, it := range items {
		state, err := s.seen.IsRepublishable(ctx, it.Identity, it.Price)
		if err != nil {
			failed++
			rep.Failures++
			lgr.Printf("[WARN] skip %s, seen store check failed: %v", it.Identity, err)
			s.storageFailure()
			continue
		}
		if state.Kind == domain.RepublishUnchanged {
			lgr.Printf("[DEBUG] skip %s, already announced at R$ %.2f", it.Identity, it.Price)
			rep.Discarded++
			s.discarded(domain.ReasonUnchanged)
			continue
		}
		states[it.Identity] = state
		fresh = append(fresh, it)
	}
	return fresh, states, failed
}

// decide evaluates every selected listing, the mode is read per decision
func (s *Scheduler) decide(ctx context.Context, items []domain.ScoredListing, states map[string]domain.RepublishState,
	snap lists.Snapshot) []candidate {
	res := make([]candidate, 0, len(items))
	for _, it := range items {
		autonomous := false
		mode, err := s.mode.Get(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to read mode, treating as manual: %v", err)
			s.storageFailure()
		} else {
			autonomous = mode.Autonomous
		}

		term, blacklisted := snap.Blacklisted(it.Title)
		dec := s.decider.Decide(decision.Input{Listing: it, Blacklisted: blacklisted, State: states[it.Identity],
			Autonomous: autonomous})
		if blacklisted {
			lgr.Printf("[DEBUG] discard %s, blacklisted term %q", it.Identity, term)
		}
		res = append(res, candidate{deal: it, state: states[it.Identity], dec: dec})
	}
	return res
}

// mint makes affiliate links for all non-discarded candidates in one batch and resolves
// auto-publish decisions by the result. Only a failed auto-publish counts as a mint failure,
// queued items get their link minted again on approval.
func (s *Scheduler) mint(ctx context.Context, cands []candidate, rep *CycleReport) {
	var idx []int
	var urls []string
	for i, c := range cands {
		if c.dec.Outcome == domain.OutcomeDiscarded {
			continue
		}
		idx = append(idx, i)
		urls = append(urls, c.deal.URL)
	}
	if len(urls) == 0 {
		return
	}

	links := s.minter.MintBatch(ctx, urls)
	for j, i := range idx {
		link := ""
		if j < len(links) {
			link = links[j]
		}
		if link == "" && cands[i].dec.Outcome == domain.OutcomeAutoPublish {
			rep.Failures++
			s.count(func(st *domain.Stats) { st.MintFailures++ })
			s.metrics.Failure(metrics.FailureMint)
		}
		cands[i].deal.AffiliateURL = link
		cands[i].dec = s.decider.AfterMint(cands[i].dec, link != "")
	}
}

// deliverAll publishes or queues candidates one by one. Cancellation is checked between items.
func (s *Scheduler) deliverAll(ctx context.Context, cands []candidate, rep *CycleReport) {
	for _, c := range cands {
		switch c.dec.Outcome {
		case domain.OutcomeDiscarded:
			rep.Discarded++
			if c.dec.Reason == domain.ReasonBlacklisted {
				rep.Blacklisted++
			}
			s.discarded(c.dec.Reason)
			continue
		case domain.OutcomePublished, domain.OutcomeQueued:
		default:
			lgr.Printf("[WARN] unexpected outcome %s for %s", c.dec.Outcome, c.deal.Identity)
			continue
		}

		if ctx.Err() != nil {
			lgr.Printf("[INFO] cycle %d interrupted, %s left for the next cycle", rep.Cycle, c.deal.Identity)
			return
		}

		if decision.Records(c.dec) {
			if s.publish(ctx, c) {
				rep.Published++
			} else {
				rep.Failures++
			}
			continue
		}

		queued, err := s.queue(ctx, c)
		if err != nil {
			rep.Failures++
			continue
		}
		if queued {
			rep.Queued++
		}
	}
}

// publish records the listing and sends it to the channel, the record is undone if the send fails
func (s *Scheduler) publish(ctx context.Context, c candidate) bool {
	prev, err := s.seen.Record(ctx, c.deal.Listing)
	if err != nil {
		lgr.Printf("[WARN] not publishing %s, failed to record: %v", c.deal.Identity, err)
		s.storageFailure()
		return false
	}

	n := domain.Notice{Deal: c.deal, Decision: c.dec, OldPrice: c.state.OldPrice}
	err = s.deliver(ctx, func(ctx context.Context) error { return s.notifier.Publish(ctx, n, domain.TargetChannel) })
	if err != nil {
		lgr.Printf("[WARN] failed to publish %s: %v", c.deal.Identity, err)
		s.publishFailure()
		if rerr := s.seen.Restore(context.WithoutCancel(ctx), c.deal.Identity, prev); rerr != nil {
			lgr.Printf("[ERROR] failed to restore seen record of %s: %v", c.deal.Identity, rerr)
			s.storageFailure()
		}
		return false
	}

	lgr.Printf("[INFO] published %s %q at R$ %.2f, score %.2f", c.deal.Identity, c.deal.Title, c.deal.Price, c.deal.Score)
	s.count(func(st *domain.Stats) { st.Sent++ })
	s.metrics.Decision(string(c.dec.Outcome), string(c.dec.Reason))
	return true
}

// queue stores a review and notifies the reviewer. Returns false without error when the
// listing is already pending or was rejected at the same price.
func (s *Scheduler) queue(ctx context.Context, c candidate) (bool, error) {
	suppressed, err := s.reviews.Suppressed(ctx, c.deal.Identity, c.deal.Price)
	if err != nil {
		lgr.Printf("[WARN] not queuing %s, review check failed: %v", c.deal.Identity, err)
		s.storageFailure()
		return false, err
	}
	if suppressed {
		lgr.Printf("[DEBUG] %s already reviewed at R$ %.2f", c.deal.Identity, c.deal.Price)
		return false, nil
	}

	rv := &domain.Review{Listing: c.deal, Reason: c.dec.Reason, OldPrice: c.state.OldPrice}
	if err = s.reviews.Enqueue(ctx, rv); err != nil {
		lgr.Printf("[WARN] failed to queue %s: %v", c.deal.Identity, err)
		s.storageFailure()
		return false, err
	}

	n := domain.Notice{Deal: c.deal, Decision: c.dec, Ref: rv.Ref, OldPrice: c.state.OldPrice}
	err = s.deliver(ctx, func(ctx context.Context) error { return s.notifier.Publish(ctx, n, domain.TargetReviewer) })
	if err != nil {
		lgr.Printf("[WARN] failed to send %s for review: %v", c.deal.Identity, err)
		s.publishFailure()
		// drop the review so the next cycle can queue it again
		if derr := s.reviews.Delete(context.WithoutCancel(ctx), rv.Ref); derr != nil {
			lgr.Printf("[ERROR] failed to delete review %s: %v", rv.Ref, derr)
			s.storageFailure()
		}
		return false, err
	}

	lgr.Printf("[INFO] queued %s %q for review (%s), ref %s", c.deal.Identity, c.deal.Title, c.dec.Reason, rv.Ref)
	s.count(func(st *domain.Stats) { st.Queued++ })
	s.metrics.Decision(string(c.dec.Outcome), string(c.dec.Reason))
	return true, nil
}

// finishCycle updates counters and gauges, runs the retention sweep and the status report
func (s *Scheduler) finishCycle(ctx context.Context, rep *CycleReport, started time.Time) {
	rep.Duration = s.now().Sub(started)
	var cycles int64
	s.count(func(st *domain.Stats) {
		st.Cycles++
		st.LastCycleAt = s.now()
		cycles = st.Cycles
	})
	s.metrics.CycleDone(rep.Duration)

	if ctx.Err() != nil {
		return
	}

	if pending, err := s.reviews.CountPending(ctx); err == nil {
		s.metrics.SetPendingReviews(pending)
	}
	if total, err := s.seen.Count(ctx); err == nil {
		s.metrics.SetSeenItems(total)
	}

	s.cleanup(ctx)

	if s.reportEvery > 0 && cycles%int64(s.reportEvery) == 0 {
		stats, err := s.Status(ctx)
		if err != nil {
			lgr.Printf("[WARN] status report is partial: %v", err)
		}
		if err := s.deliver(ctx, func(ctx context.Context) error { return s.notifier.PublishStatus(ctx, stats) }); err != nil {
			lgr.Printf("[WARN] failed to send status report: %v", err)
			s.publishFailure()
		}
	}
}

// cleanup purges old seen items and resolved reviews once per cleanup interval
func (s *Scheduler) cleanup(ctx context.Context) {
	now := s.now()
	s.statsMu.Lock()
	due := s.lastCleanup.IsZero() || now.Sub(s.lastCleanup) >= s.cleanupInterval
	if due {
		s.lastCleanup = now
	}
	s.statsMu.Unlock()
	if !due {
		return
	}

	cutoff := now.Add(-s.retention)
	var errs []error
	seen, err := s.seen.Purge(ctx, cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("purge seen items: %w", err))
	}
	reviews, err := s.reviews.PurgeResolved(ctx, cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("purge reviews: %w", err))
	}
	if len(errs) > 0 {
		lgr.Printf("[WARN] retention sweep failed: %v", errors.Join(errs...))
		s.storageFailure()
	}
	if seen > 0 || reviews > 0 {
		lgr.Printf("[INFO] retention sweep removed %d seen items and %d resolved reviews older than %v",
			seen, reviews, cutoff.Format(time.DateOnly))
	}
}

func (s *Scheduler) discarded(reason domain.Reason) {
	s.count(func(st *domain.Stats) {
		st.Discarded++
		if reason == domain.ReasonBlacklisted {
			st.Blacklisted++
		}
	})
	s.metrics.Decision(string(domain.OutcomeDiscarded), string(reason))
}

func (s *Scheduler) storageFailure() {
	s.count(func(st *domain.Stats) { st.StorageFailures++ })
	s.metrics.Failure(metrics.FailureStorage)
}

func (s *Scheduler) publishFailure() {
	s.count(func(st *domain.Stats) { st.PublishFailures++ })
	s.metrics.Failure(metrics.FailurePublish)
}
