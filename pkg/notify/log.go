package notify

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dealscope/pkg/domain"
)

// Log is a notifier writing deals to the log, used when telegram is not configured.
// Reviews stay in the queue and can be resolved with the http api.
type Log struct{}

// Publish logs the deal
func (Log) Publish(_ context.Context, n domain.Notice, target domain.Target) error {
	lgr.Printf("[INFO] deal for %s: %q %s at R$ %s, score %.2f, %s (%s) ref=%s", target, n.Deal.Title,
		n.Deal.Identity, FormatBRL(n.Deal.Price), n.Deal.Score, n.Decision.Outcome, n.Decision.Reason, n.Ref)
	return nil
}

// PublishStatus logs the counters
func (Log) PublishStatus(_ context.Context, s domain.Stats) error {
	lgr.Printf("[INFO] status: cycles=%d sent=%d queued=%d discarded=%d blacklisted=%d seen=%d autonomous=%v",
		s.Cycles, s.Sent, s.Queued, s.Discarded, s.Blacklisted, s.TotalSeen, s.Autonomous)
	return nil
}
