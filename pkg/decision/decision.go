// Package decision maps a ranked listing to its publication outcome.
//
// Rules are evaluated in order: blacklisted and unchanged listings are discarded,
// price drops and operator-submitted urls always go to review, new listings below
// the publish threshold are discarded. In autonomous mode listings at or above the
// autonomous threshold are published once their link is minted. Everything else is
// queued for review.
package decision

import (
	"github.com/umputun/dealscope/pkg/config"
	"github.com/umputun/dealscope/pkg/domain"
)

// Input is everything the decider needs for one listing
type Input struct {
	Listing     domain.ScoredListing
	Blacklisted bool
	State       domain.RepublishState
	Autonomous  bool
}

// Decider holds the publish thresholds. It has no side effects.
type Decider struct {
	minPublish    float64
	minAutonomous float64
}

// New makes a decider with the given thresholds
func New(minPublish, minAutonomous float64) *Decider {
	return &Decider{minPublish: minPublish, minAutonomous: minAutonomous}
}

// NewFromConfig makes a decider from the scoring section
func NewFromConfig(cfg config.ScoringConfig) *Decider {
	return New(cfg.MinPublish, cfg.MinAutonomous)
}

// Decide returns the outcome for a listing. OutcomeAutoPublish is not final,
// it must be resolved with AfterMint.
func (d *Decider) Decide(in Input) domain.Decision {
	if in.Blacklisted {
		return domain.Decision{Outcome: domain.OutcomeDiscarded, Reason: domain.ReasonBlacklisted}
	}

	switch in.State.Kind {
	case domain.RepublishUnchanged:
		return domain.Decision{Outcome: domain.OutcomeDiscarded, Reason: domain.ReasonUnchanged}
	case domain.RepublishPriceDropped:
		return domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonPriceDrop}
	}

	if in.Listing.Origin == domain.OriginManual {
		return domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonManualURL}
	}

	if in.Listing.Score < d.minPublish {
		return domain.Decision{Outcome: domain.OutcomeDiscarded, Reason: domain.ReasonLowScore}
	}

	if !in.Autonomous {
		return domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonManualMode}
	}
	if in.Listing.Score >= d.minAutonomous {
		return domain.Decision{Outcome: domain.OutcomeAutoPublish, Reason: domain.ReasonAutonomous}
	}
	return domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonBelowAutonomous}
}

// AfterMint resolves an auto-publish decision by the mint result. Other decisions pass through.
func (d *Decider) AfterMint(dec domain.Decision, minted bool) domain.Decision {
	if dec.Outcome != domain.OutcomeAutoPublish {
		return dec
	}
	if !minted {
		return domain.Decision{Outcome: domain.OutcomeQueued, Reason: domain.ReasonMintFailed}
	}
	return domain.Decision{Outcome: domain.OutcomePublished, Reason: domain.ReasonAutonomous}
}

// Records reports if the outcome must be committed to the seen store once delivered
func Records(dec domain.Decision) bool {
	return dec.Outcome == domain.OutcomePublished
}
